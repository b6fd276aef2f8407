package bills

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medfin/medfin/internal/model"
	"github.com/medfin/medfin/internal/platform/errs"
)

// AnalyzeRequest carries the bills to inspect.
type AnalyzeRequest struct {
	Bills []model.MedicalBill `json:"bills"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bills/analyze", h.Analyze)
	api.POST("/bills/itemize", h.Itemize)
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Bills) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one bill is required")
	}
	issues, err := h.svc.AnalyzeBills(req.Bills)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"issues": issues,
	})
}

func (h *Handler) Itemize(c echo.Context) error {
	var bill model.MedicalBill
	if err := c.Bind(&bill); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc, err := h.svc.ItemizationRequest(bill)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}
