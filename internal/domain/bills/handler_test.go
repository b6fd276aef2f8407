package bills

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Analyze(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{
		"bills": [{
			"provider": "Clinic",
			"service_date": "2024-04-01",
			"total_amount": 300,
			"insurance_paid": 200,
			"patient_responsibility": 100
		}]
	}`)
	if err := h.Analyze(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing_adjustment") {
		t.Errorf("expected missing_adjustment finding, got %s", rec.Body.String())
	}
}

func TestHandler_Analyze_EmptyBills(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"bills": []}`)
	err := h.Analyze(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Itemize(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{
		"provider": "General Hospital",
		"service_date": "2024-03-18",
		"line_items": [{"service_code": "", "description": "Misc", "quantity": 1, "unit_price": 75}],
		"total_amount": 75,
		"patient_responsibility": 75
	}`)
	if err := h.Itemize(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unclear_items") {
		t.Error("expected unclear_items in response")
	}
}
