package bills

// IssueKind discriminates the billing findings a bill can produce.
type IssueKind string

const (
	IssueDuplicateCharge   IssueKind = "duplicate_charge"
	IssueMathMismatch      IssueKind = "math_mismatch"
	IssueMissingAdjustment IssueKind = "missing_adjustment"
	IssueOvercharge        IssueKind = "overcharge"
	IssueCoverageGap       IssueKind = "coverage_gap"
)

// Severity grades how much money a finding puts at stake.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// BillAnalysisIssue is one finding against one bill. SuggestedCorrection,
// when set, is the amount the analyzer believes the field should hold.
type BillAnalysisIssue struct {
	BillIndex           int       `json:"bill_index"`
	Provider            string    `json:"provider"`
	ServiceDate         string    `json:"service_date"`
	Kind                IssueKind `json:"issue_kind"`
	Severity            Severity  `json:"severity"`
	Description         string    `json:"description"`
	SuggestedCorrection *float64  `json:"suggested_correction,omitempty"`
}

// UnclearItem is a line item the itemization request asks the provider to
// clarify.
type UnclearItem struct {
	LineIndex   int    `json:"line_index"`
	ServiceCode string `json:"service_code"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// ItemizationRequest is the structured document a patient can send a
// provider to request a fully itemized bill. Generation is deterministic.
type ItemizationRequest struct {
	Provider     string        `json:"provider"`
	ServiceDate  string        `json:"service_date"`
	RequestText  string        `json:"request_text"`
	UnclearItems []UnclearItem `json:"unclear_items"`
}
