// Package insurance grades coverage quality and reconciles bills against a
// plan's cost-sharing rules.
package insurance

import (
	"fmt"
	"math"

	"github.com/medfin/medfin/internal/guidelines"
	"github.com/medfin/medfin/internal/model"
)

// Rubric weights; they sum to 1.0.
const (
	weightDeductible  = 0.30
	weightOOPMax      = 0.25
	weightCoinsurance = 0.25
	weightCopays      = 0.20
)

// Component scores at or above strongAt become strengths, at or below
// weakAt weaknesses.
const (
	strongAt = 0.7
	weakAt   = 0.3
)

// copayReference is the copay level treated as the worst end of the scale
// when normalizing copay amounts.
const copayReference = 100.0

type Service struct {
	table *guidelines.Table
}

func NewService(table *guidelines.Table) *Service {
	return &Service{table: table}
}

// AnalyzeInsurance scores a coverage profile on a fixed rubric and, when
// bills are supplied, computes the expected insurer/patient split for each
// bill by applying the plan's deductible, coinsurance and out-of-pocket
// rules progressively across the sequence. Stated patient responsibility
// that strays beyond the rounding tolerance becomes a coverage finding.
func (s *Service) AnalyzeInsurance(ins model.InsuranceInfo, bills []model.MedicalBill) (CoverageAnalysis, error) {
	if err := ins.Validate(); err != nil {
		return CoverageAnalysis{}, err
	}
	analysis, err := s.scoreProfile(ins)
	if err != nil {
		return CoverageAnalysis{}, err
	}

	running := ins
	for i := range bills {
		bill := bills[i]
		if err := bill.Validate(); err != nil {
			return CoverageAnalysis{}, err
		}
		sharing := running.ApplyCostSharing(bill.TotalAmount, true)
		running = running.Advance(sharing)
		analysis.BillSplits = append(analysis.BillSplits, BillSplit{
			Provider:        bill.Provider,
			ServiceDate:     bill.ServiceDate,
			TotalAmount:     bill.TotalAmount,
			ExpectedPatient: sharing.Patient,
			ExpectedInsurer: sharing.Insurer,
			StatedPatient:   bill.PatientResponsibility,
		})
		if !model.AmountsEqual(sharing.Patient, bill.PatientResponsibility) {
			analysis.Findings = append(analysis.Findings, newCoverageFinding(bill, sharing.Patient))
		}
	}
	return analysis, nil
}

// AnalyzeBills reconciles each bill's stated monetary fields without a
// coverage profile: the expected patient share is whatever remains of the
// total after the stated adjustments and insurer payment.
func (s *Service) AnalyzeBills(bills []model.MedicalBill) (BillsAnalysis, error) {
	result := BillsAnalysis{
		Splits:   []BillSplit{},
		Findings: []CoverageFinding{},
	}
	for i := range bills {
		bill := bills[i]
		if err := bill.Validate(); err != nil {
			return BillsAnalysis{}, err
		}
		expected := model.Round2(bill.TotalAmount - bill.InsuranceAdjustments - bill.InsurancePaid)
		if expected < 0 {
			expected = 0
		}
		result.Splits = append(result.Splits, BillSplit{
			Provider:        bill.Provider,
			ServiceDate:     bill.ServiceDate,
			TotalAmount:     bill.TotalAmount,
			ExpectedPatient: expected,
			ExpectedInsurer: model.Round2(bill.InsuranceAdjustments + bill.InsurancePaid),
			StatedPatient:   bill.PatientResponsibility,
		})
		if !model.AmountsEqual(expected, bill.PatientResponsibility) {
			result.Findings = append(result.Findings, newCoverageFinding(bill, expected))
		}
	}
	return result, nil
}

// InsuranceTypes lists the supported plan types for discovery.
func (s *Service) InsuranceTypes() []PlanTypeInfo {
	return []PlanTypeInfo{
		{Type: string(model.PlanHMO), Description: "Health maintenance organization: network-only care coordinated through a primary physician"},
		{Type: string(model.PlanPPO), Description: "Preferred provider organization: out-of-network care covered at a higher cost share"},
		{Type: string(model.PlanEPO), Description: "Exclusive provider organization: network-only care without referral requirements"},
		{Type: string(model.PlanPOS), Description: "Point of service: referrals required, partial out-of-network coverage"},
		{Type: string(model.PlanHDHP), Description: "High-deductible health plan, usually paired with a health savings account"},
		{Type: string(model.PlanNone), Description: "No active coverage"},
	}
}

func newCoverageFinding(bill model.MedicalBill, expected float64) CoverageFinding {
	diff := model.Round2(bill.PatientResponsibility - expected)
	return CoverageFinding{
		Provider:        bill.Provider,
		ServiceDate:     bill.ServiceDate,
		ExpectedPatient: expected,
		StatedPatient:   bill.PatientResponsibility,
		Difference:      diff,
		Description: fmt.Sprintf(
			"stated patient responsibility $%.2f differs from the expected $%.2f by $%.2f",
			bill.PatientResponsibility, expected, math.Abs(diff)),
	}
}

func (s *Service) scoreProfile(ins model.InsuranceInfo) (CoverageAnalysis, error) {
	if ins.PlanType == model.PlanNone {
		return CoverageAnalysis{
			Score:      0,
			Strengths:  []string{},
			Weaknesses: []string{"no active coverage: the patient bears the full allowed amount of every service"},
		}, nil
	}

	individualCap, err := s.table.OutOfPocketCap("private_individual")
	if err != nil {
		return CoverageAnalysis{}, err
	}

	dedScore := 1 - clamp01(ins.AnnualDeductible.Individual/individualCap)

	oopScore := 0.0 // a plan without a configured cap scores worst
	if ins.OutOfPocketMax.Individual > 0 {
		oopScore = 1 - clamp01(ins.OutOfPocketMax.Individual/individualCap)
	}

	coinsScore := 1 - clamp01(ins.CoinsuranceInNetwork)

	copayScore := 0.5 // neutral when the plan states no copays
	if len(ins.Copays) > 0 {
		var sum float64
		for _, amount := range ins.Copays {
			sum += amount
		}
		avg := sum / float64(len(ins.Copays))
		copayScore = 1 - clamp01(avg/copayReference)
	}

	total := weightDeductible*dedScore +
		weightOOPMax*oopScore +
		weightCoinsurance*coinsScore +
		weightCopays*copayScore

	analysis := CoverageAnalysis{
		Score:      int(math.Round(total * 100)),
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	grade := func(score float64, strength, weakness string) {
		switch {
		case score >= strongAt:
			analysis.Strengths = append(analysis.Strengths, strength)
		case score <= weakAt:
			analysis.Weaknesses = append(analysis.Weaknesses, weakness)
		}
	}
	grade(dedScore,
		fmt.Sprintf("low annual deductible ($%.0f individual)", ins.AnnualDeductible.Individual),
		fmt.Sprintf("high annual deductible ($%.0f individual)", ins.AnnualDeductible.Individual))
	grade(oopScore,
		fmt.Sprintf("low out-of-pocket maximum ($%.0f individual)", ins.OutOfPocketMax.Individual),
		"high or missing out-of-pocket maximum")
	grade(coinsScore,
		fmt.Sprintf("favorable in-network coinsurance (%.0f%%)", ins.CoinsuranceInNetwork*100),
		fmt.Sprintf("steep in-network coinsurance (%.0f%%)", ins.CoinsuranceInNetwork*100))
	grade(copayScore,
		"modest copays across care tiers",
		"high copays across care tiers")

	return analysis, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
