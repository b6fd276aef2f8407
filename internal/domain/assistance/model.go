package assistance

import "github.com/medfin/medfin/internal/model"

// EligibilityTier is the assistance level a household qualifies for.
type EligibilityTier string

const (
	TierFull    EligibilityTier = "full"
	TierPartial EligibilityTier = "partial"
	TierNone    EligibilityTier = "none"
)

// upgrade moves a tier one step stronger; full stays full.
func (t EligibilityTier) upgrade() EligibilityTier {
	switch t {
	case TierNone:
		return TierPartial
	case TierPartial:
		return TierFull
	default:
		return t
	}
}

// MatchRequest carries a household's financial picture.
type MatchRequest struct {
	Insurance     model.InsuranceInfo          `json:"insurance"`
	MonthlyIncome float64                      `json:"monthly_income"`
	HouseholdSize int                          `json:"household_size"`
	MedicalBills  []model.MedicalBill          `json:"medical_bills,omitempty"`
	HardshipLevel model.FinancialHardshipLevel `json:"hardship_level,omitempty"`
	Diagnoses     []string                     `json:"diagnoses,omitempty"`
	Prescriptions []string                     `json:"prescriptions,omitempty"`
}

// MatchedProgram is one program the household qualifies for.
type MatchedProgram struct {
	Name                   string  `json:"name"`
	QualifyingCriterion    string  `json:"qualifying_criterion"`
	EstimatedBenefitAmount float64 `json:"estimated_benefit_amount"`
}

// AssistanceMatch is the matcher's result: the decided tier, the income
// ratio it was decided on, and every matching program.
type AssistanceMatch struct {
	EligibilityTier  EligibilityTier  `json:"eligibility_tier"`
	IncomeToFPLRatio float64          `json:"income_to_fpl_ratio"`
	FPLYear          int              `json:"fpl_year"`
	HardshipApplied  bool             `json:"hardship_applied"`
	MatchedPrograms  []MatchedProgram `json:"matched_programs"`
}

// ProgramInfo describes a registry entry for discovery, without the
// household-specific benefit amount.
type ProgramInfo struct {
	Name                string `json:"name"`
	QualifyingCriterion string `json:"qualifying_criterion"`
}
