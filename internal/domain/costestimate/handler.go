package costestimate

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medfin/medfin/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/cost/estimate", h.Estimate)
	api.GET("/cost/services", h.ListServices)
}

func (h *Handler) Estimate(c echo.Context) error {
	var req EstimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	estimate, err := h.svc.Estimate(req)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, estimate)
}

func (h *Handler) ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"services": h.svc.Services(),
	})
}
