package insurance

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medfin/medfin/internal/model"
	"github.com/medfin/medfin/internal/platform/errs"
)

// AnalyzeRequest is the analyze endpoint's payload. Bills are optional.
type AnalyzeRequest struct {
	Insurance model.InsuranceInfo `json:"insurance"`
	Bills     []model.MedicalBill `json:"bills,omitempty"`
}

// AnalyzeBillsRequest carries the bills for stated-field reconciliation.
type AnalyzeBillsRequest struct {
	Bills []model.MedicalBill `json:"bills"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/insurance/analyze", h.Analyze)
	api.POST("/insurance/analyze/bills", h.AnalyzeBills)
	api.GET("/insurance/types", h.ListTypes)
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	analysis, err := h.svc.AnalyzeInsurance(req.Insurance, req.Bills)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *Handler) AnalyzeBills(c echo.Context) error {
	var req AnalyzeBillsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Bills) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one bill is required")
	}
	analysis, err := h.svc.AnalyzeBills(req.Bills)
	if err != nil {
		return echo.NewHTTPError(errs.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *Handler) ListTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"insurance_types": h.svc.InsuranceTypes(),
	})
}
