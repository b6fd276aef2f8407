package errs

import (
	"fmt"
	"net/http"
	"testing"
)

func TestValidationError_Message(t *testing.T) {
	err := Validation("monthly_income", -50.0, "must be non-negative")
	want := "invalid monthly_income (-50): must be non-negative"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !IsValidation(err) {
		t.Error("expected IsValidation to be true")
	}
	if IsNotFound(err) {
		t.Error("expected IsNotFound to be false")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := NotFound("service code", "99999")
	if err.Error() != `service code "99999" not found` {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
}

func TestIs_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("estimate: %w", NotFound("service code", "00000"))
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to see through wrapping")
	}
	err = fmt.Errorf("load: %w", Configuration("federal_poverty_level.2031", "year not configured"))
	if !IsConfiguration(err) {
		t.Error("expected IsConfiguration to see through wrapping")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("household_size", 0, "must be at least 1"), http.StatusBadRequest},
		{NotFound("program", "x"), http.StatusNotFound},
		{Configuration("location_multipliers", "missing"), http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
