// Package bills inspects medical bills for internal-consistency problems:
// arithmetic that does not add up, duplicated charges, prices far above
// reference, and missing insurer adjustments. Checks run independently and
// every finding is collected; a broken bill is a result, not an error.
package bills

import (
	"fmt"
	"math"

	"github.com/medfin/medfin/internal/model"
)

// PriceReference resolves a service code to its reference unit price.
// The cost estimator's registry satisfies this.
type PriceReference interface {
	ReferencePrice(code string) (float64, bool)
}

// overchargeMultiple is how far above the reference price a unit price may
// sit before it is flagged. The original thresholds were never published;
// 1.5x is documented in DESIGN.md.
const overchargeMultiple = 1.5

// Severity thresholds by dollar amount at stake.
const (
	severityMediumAt = 100.0
	severityHighAt   = 500.0
)

type Service struct {
	prices PriceReference
}

func NewService(prices PriceReference) *Service {
	return &Service{prices: prices}
}

// AnalyzeBills runs every check against every bill and returns the
// combined findings. Bills are identified by their index in the request.
func (s *Service) AnalyzeBills(billList []model.MedicalBill) ([]BillAnalysisIssue, error) {
	issues := []BillAnalysisIssue{}
	for i := range billList {
		bill := billList[i]
		if err := bill.Validate(); err != nil {
			return nil, err
		}
		issues = append(issues, s.checkMath(i, bill)...)
		issues = append(issues, s.checkDuplicates(i, bill)...)
		issues = append(issues, s.checkOvercharges(i, bill)...)
		issues = append(issues, s.checkAdjustments(i, bill)...)
	}
	return issues, nil
}

// ItemizationRequest builds the provider-facing document asking for
// clarification of every line item without a resolvable service code or a
// usable description.
func (s *Service) ItemizationRequest(bill model.MedicalBill) (ItemizationRequest, error) {
	if err := bill.Validate(); err != nil {
		return ItemizationRequest{}, err
	}
	unclear := []UnclearItem{}
	for i, li := range bill.LineItems {
		var reason string
		switch {
		case li.ServiceCode == "":
			reason = "line item carries no service code"
		case !s.knownCode(li.ServiceCode):
			reason = fmt.Sprintf("service code %s is not a recognized billing code", li.ServiceCode)
		case li.Description == "":
			reason = "line item carries no description"
		default:
			continue
		}
		unclear = append(unclear, UnclearItem{
			LineIndex:   i,
			ServiceCode: li.ServiceCode,
			Description: li.Description,
			Reason:      reason,
		})
	}
	return ItemizationRequest{
		Provider:    bill.Provider,
		ServiceDate: bill.ServiceDate,
		RequestText: fmt.Sprintf(
			"To %s: I am requesting a fully itemized statement for services dated %s, "+
				"including the CPT/HCPCS code, description, quantity and unit price of every charge. "+
				"%d line item(s) on the bill I received could not be identified and are listed below. "+
				"Please provide this within 30 days as required for billing review.",
			bill.Provider, bill.ServiceDate, len(unclear)),
		UnclearItems: unclear,
	}, nil
}

func (s *Service) knownCode(code string) bool {
	_, ok := s.prices.ReferencePrice(code)
	return ok
}

func (s *Service) checkMath(idx int, bill model.MedicalBill) []BillAnalysisIssue {
	var out []BillAnalysisIssue

	if len(bill.LineItems) > 0 {
		lineTotal := bill.LineItemTotal()
		if !model.AmountsEqual(lineTotal, bill.TotalAmount) {
			out = append(out, newIssue(idx, bill, IssueMathMismatch,
				severityFor(math.Abs(lineTotal-bill.TotalAmount)),
				fmt.Sprintf("line items sum to $%.2f but the bill states a total of $%.2f", lineTotal, bill.TotalAmount),
				&lineTotal))
		}
	}

	split := bill.StatedSplitTotal()
	if !model.AmountsEqual(split, bill.TotalAmount) {
		expected := model.Round2(bill.TotalAmount - bill.InsuranceAdjustments - bill.InsurancePaid)
		if expected < 0 {
			expected = 0
		}
		out = append(out, newIssue(idx, bill, IssueMathMismatch,
			severityFor(math.Abs(split-bill.TotalAmount)),
			fmt.Sprintf("adjustments, insurer payment and patient responsibility sum to $%.2f against a total of $%.2f", split, bill.TotalAmount),
			&expected))
	}

	if bill.PatientResponsibility > bill.TotalAmount+model.Tolerance {
		out = append(out, newIssue(idx, bill, IssueCoverageGap, SeverityHigh,
			fmt.Sprintf("stated patient responsibility $%.2f exceeds the bill total $%.2f", bill.PatientResponsibility, bill.TotalAmount),
			nil))
	}
	return out
}

func (s *Service) checkDuplicates(idx int, bill model.MedicalBill) []BillAnalysisIssue {
	type dupKey struct {
		code  string
		date  string
		price float64
	}
	seen := make(map[dupKey][]model.LineItem)
	var order []dupKey
	for _, li := range bill.LineItems {
		date := li.ServiceDate
		if date == "" {
			date = bill.ServiceDate
		}
		key := dupKey{code: li.ServiceCode, date: date, price: li.UnitPrice}
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], li)
	}

	var out []BillAnalysisIssue
	for _, key := range order {
		group := seen[key]
		if len(group) < 2 || key.code == "" {
			continue
		}
		var repeated float64
		for _, li := range group[1:] {
			repeated += li.Total()
		}
		repeated = model.Round2(repeated)
		out = append(out, newIssue(idx, bill, IssueDuplicateCharge,
			severityFor(repeated),
			fmt.Sprintf("service %s at $%.2f on %s appears %d times; $%.2f may be duplicated",
				key.code, key.price, key.date, len(group), repeated),
			&repeated))
	}
	return out
}

func (s *Service) checkOvercharges(idx int, bill model.MedicalBill) []BillAnalysisIssue {
	var out []BillAnalysisIssue
	for _, li := range bill.LineItems {
		ref, ok := s.prices.ReferencePrice(li.ServiceCode)
		if !ok {
			continue
		}
		ceiling := ref * overchargeMultiple
		if li.UnitPrice > ceiling+model.Tolerance {
			suggested := model.Round2(ref)
			out = append(out, newIssue(idx, bill, IssueOvercharge,
				severityFor(float64(li.Quantity)*(li.UnitPrice-ref)),
				fmt.Sprintf("service %s billed at $%.2f per unit against a reference price of $%.2f",
					li.ServiceCode, li.UnitPrice, ref),
				&suggested))
		}
	}
	return out
}

func (s *Service) checkAdjustments(idx int, bill model.MedicalBill) []BillAnalysisIssue {
	// An insurer that paid without any contractual adjustment usually means
	// the negotiated discount never made it onto the bill.
	if bill.InsurancePaid > 0 && bill.InsuranceAdjustments == 0 {
		return []BillAnalysisIssue{newIssue(idx, bill, IssueMissingAdjustment, SeverityMedium,
			fmt.Sprintf("insurer paid $%.2f but the bill shows no insurance adjustment", bill.InsurancePaid),
			nil)}
	}
	return nil
}

func newIssue(idx int, bill model.MedicalBill, kind IssueKind, sev Severity, desc string, suggested *float64) BillAnalysisIssue {
	return BillAnalysisIssue{
		BillIndex:           idx,
		Provider:            bill.Provider,
		ServiceDate:         bill.ServiceDate,
		Kind:                kind,
		Severity:            sev,
		Description:         desc,
		SuggestedCorrection: suggested,
	}
}

func severityFor(amount float64) Severity {
	switch {
	case amount >= severityHighAt:
		return SeverityHigh
	case amount >= severityMediumAt:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
