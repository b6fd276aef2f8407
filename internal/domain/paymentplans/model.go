package paymentplans

// PlanKind distinguishes the repayment structures the planner offers.
type PlanKind string

const (
	KindStandard   PlanKind = "standard"
	KindExtended   PlanKind = "extended"
	KindHardship   PlanKind = "hardship"
	KindSettlement PlanKind = "settlement_offer"
)

// PlanRequest describes the debt and the household's capacity to pay it.
// CreditScore is optional; when absent the planner assumes it is not a
// limiting factor. DebtToIncomeRatio may be supplied by the caller; when
// zero it is derived from the debt and the annualized income.
type PlanRequest struct {
	TotalDebt         float64 `json:"total_debt"`
	MonthlyIncome     float64 `json:"monthly_income"`
	CreditScore       *int    `json:"credit_score,omitempty"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio,omitempty"`
	Hardship          bool    `json:"hardship"`
}

// PaymentPlanOption is one way to retire the debt.
type PaymentPlanOption struct {
	PlanKind            PlanKind `json:"plan_kind"`
	MonthlyPayment      float64  `json:"monthly_payment"`
	TermMonths          int      `json:"term_months"`
	TotalInterestOrFees float64  `json:"total_interest_or_fees"`
	TotalPaid           float64  `json:"total_paid"`
	Feasible            bool     `json:"feasibility_flag"`
	Description         string   `json:"description"`
}

// Recommendation is the planner's pick plus the full option set it was
// chosen from.
type Recommendation struct {
	Recommended PaymentPlanOption   `json:"recommended"`
	Options     []PaymentPlanOption `json:"options"`
	Rationale   string              `json:"rationale"`
}
