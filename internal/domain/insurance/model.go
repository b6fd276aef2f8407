package insurance

// PlanTypeInfo describes one supported plan type for discovery endpoints.
type PlanTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// BillSplit is the expected insurer/patient division of one bill's total
// under the analyzed plan, alongside what the bill actually states.
type BillSplit struct {
	Provider        string  `json:"provider"`
	ServiceDate     string  `json:"service_date"`
	TotalAmount     float64 `json:"total_amount"`
	ExpectedPatient float64 `json:"expected_patient"`
	ExpectedInsurer float64 `json:"expected_insurer"`
	StatedPatient   float64 `json:"stated_patient"`
}

// CoverageFinding reports a bill whose stated patient responsibility
// disagrees with the computed expectation beyond the rounding tolerance.
type CoverageFinding struct {
	Provider        string  `json:"provider"`
	ServiceDate     string  `json:"service_date"`
	ExpectedPatient float64 `json:"expected_patient"`
	StatedPatient   float64 `json:"stated_patient"`
	Difference      float64 `json:"difference"`
	Description     string  `json:"description"`
}

// CoverageAnalysis is the quality report for an insurance profile: a 0-100
// score from a fixed rubric, qualitative strengths and weaknesses, and
// (when bills are supplied) the expected split per bill with any coverage
// findings.
type CoverageAnalysis struct {
	Score      int               `json:"score"`
	Strengths  []string          `json:"strengths"`
	Weaknesses []string          `json:"weaknesses"`
	BillSplits []BillSplit       `json:"bill_splits,omitempty"`
	Findings   []CoverageFinding `json:"findings,omitempty"`
}

// BillsAnalysis is the stated-field reconciliation of a set of bills.
type BillsAnalysis struct {
	Splits   []BillSplit       `json:"splits"`
	Findings []CoverageFinding `json:"findings"`
}
