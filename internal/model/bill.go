package model

import "github.com/medfin/medfin/internal/platform/errs"

// LineItem is a single charge on a medical bill. ServiceDate is optional
// and falls back to the bill's service date when empty.
type LineItem struct {
	ServiceCode string  `json:"service_code"`
	Description string  `json:"description"`
	ServiceDate string  `json:"service_date,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Total returns the extended amount for the line.
func (li LineItem) Total() float64 {
	return Round2(float64(li.Quantity) * li.UnitPrice)
}

// MedicalBill is a provider bill as stated by the provider. The monetary
// fields are expected to satisfy
//
//	total_amount = insurance_adjustments + insurance_paid + patient_responsibility
//
// and total_amount to match the line-item sum, but violations are billing
// findings, not validation failures: billing data is often wrong and the
// analyzers exist to say so.
type MedicalBill struct {
	Provider              string     `json:"provider"`
	ServiceDate           string     `json:"service_date"`
	LineItems             []LineItem `json:"line_items"`
	TotalAmount           float64    `json:"total_amount"`
	InsuranceAdjustments  float64    `json:"insurance_adjustments"`
	InsurancePaid         float64    `json:"insurance_paid"`
	PatientResponsibility float64    `json:"patient_responsibility"`
}

// LineItemTotal sums the extended amounts of every line item.
func (b *MedicalBill) LineItemTotal() float64 {
	var sum float64
	for _, li := range b.LineItems {
		sum += li.Total()
	}
	return Round2(sum)
}

// StatedSplitTotal sums the three stated monetary components.
func (b *MedicalBill) StatedSplitTotal() float64 {
	return Round2(b.InsuranceAdjustments + b.InsurancePaid + b.PatientResponsibility)
}

// Validate rejects structurally broken bills. Internal monetary
// inconsistency deliberately passes validation.
func (b *MedicalBill) Validate() error {
	if b.TotalAmount < 0 {
		return errs.Validation("total_amount", b.TotalAmount, "must be non-negative")
	}
	if b.InsuranceAdjustments < 0 {
		return errs.Validation("insurance_adjustments", b.InsuranceAdjustments, "must be non-negative")
	}
	if b.InsurancePaid < 0 {
		return errs.Validation("insurance_paid", b.InsurancePaid, "must be non-negative")
	}
	if b.PatientResponsibility < 0 {
		return errs.Validation("patient_responsibility", b.PatientResponsibility, "must be non-negative")
	}
	for _, li := range b.LineItems {
		if li.Quantity < 1 {
			return errs.Validation("line_items.quantity", li.Quantity, "must be at least 1")
		}
		if li.UnitPrice < 0 {
			return errs.Validation("line_items.unit_price", li.UnitPrice, "must be non-negative")
		}
	}
	return nil
}

// FinancialHardshipLevel grades hardship from debt-to-income thresholds.
type FinancialHardshipLevel string

const (
	HardshipNone     FinancialHardshipLevel = ""
	HardshipMild     FinancialHardshipLevel = "mild"
	HardshipModerate FinancialHardshipLevel = "moderate"
	HardshipSevere   FinancialHardshipLevel = "severe"
)

// Valid reports whether the level is empty or one of the graded values.
func (h FinancialHardshipLevel) Valid() bool {
	switch h {
	case HardshipNone, HardshipMild, HardshipModerate, HardshipSevere:
		return true
	}
	return false
}
