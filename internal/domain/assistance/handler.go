package assistance

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
	api.POST("/assistance/match", h.Match)
	api.GET("/assistance/programs", h.ListPrograms)
}

func (h *Handler) Match(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	match, err := h.svc.Match(req)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, match)
}

func (h *Handler) ListPrograms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"programs": h.svc.Programs(),
	})
}
