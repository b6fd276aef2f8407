package costestimate

import "github.com/medfin/medfin/internal/model"

// EstimateRequest carries everything the estimator needs for one service.
// InNetwork defaults to true when omitted, matching how estimates are
// usually requested.
type EstimateRequest struct {
	ServiceCode string              `json:"service_code"`
	Insurance   model.InsuranceInfo `json:"insurance"`
	Location    string              `json:"location"`
	IsEmergency bool                `json:"is_emergency"`
	InNetwork   *bool               `json:"in_network"`
}

func (r *EstimateRequest) inNetwork() bool {
	return r.InNetwork == nil || *r.InNetwork
}

// Assumptions records the adjustments applied to the base amount so the
// caller can explain the number it shows.
type Assumptions struct {
	Location            string  `json:"location"`
	RegionMultiplier    float64 `json:"region_multiplier"`
	EmergencyMultiplier float64 `json:"emergency_multiplier,omitempty"`
	OutOfNetworkPenalty float64 `json:"out_of_network_penalty,omitempty"`
	InNetwork           bool    `json:"in_network"`
}

// CostEstimate is the estimator's result for a single service code.
type CostEstimate struct {
	ServiceCode                    string      `json:"service_code"`
	Description                    string      `json:"description"`
	EstimatedAllowedAmount         float64     `json:"estimated_allowed_amount"`
	EstimatedInsurancePayment      float64     `json:"estimated_insurance_payment"`
	EstimatedPatientResponsibility float64     `json:"estimated_patient_responsibility"`
	ConfidenceLow                  float64     `json:"confidence_low"`
	ConfidenceHigh                 float64     `json:"confidence_high"`
	Assumptions                    Assumptions `json:"assumptions"`
}
