// Package costestimate predicts out-of-pocket cost for a medical service:
// a reference allowed amount adjusted for region, emergency billing and
// network status, then split between patient and insurer by the plan's
// cost-sharing rules.
package costestimate

import (
	"github.com/medfin/medfin/internal/guidelines"
	"github.com/medfin/medfin/internal/model"
)

type Service struct {
	table *guidelines.Table
	costs ServiceCostRepository
}

func NewService(table *guidelines.Table, costs ServiceCostRepository) *Service {
	return &Service{table: table, costs: costs}
}

// Estimate computes the cost estimate for one service code. It is a pure
// function of the request and the guideline table.
//
// The allowed amount is built up in a fixed order: base reference cost,
// regional multiplier, emergency multiplier (emergency care is billed at
// in-network rates but the underlying charge is inflated, so the
// multiplier applies regardless of network status), then the
// out-of-network penalty. Deductible and coinsurance apply to the fully
// inflated amount.
func (s *Service) Estimate(req EstimateRequest) (CostEstimate, error) {
	if err := req.Insurance.Validate(); err != nil {
		return CostEstimate{}, err
	}
	sc, err := s.costs.Lookup(req.ServiceCode)
	if err != nil {
		return CostEstimate{}, err
	}

	tuning := s.table.Cost()
	regionMult := s.table.LocationMultiplier(req.Location)
	inNetwork := req.inNetwork()

	allowed := sc.BaseAmount * regionMult
	assumptions := Assumptions{
		Location:         req.Location,
		RegionMultiplier: regionMult,
		InNetwork:        inNetwork,
	}
	if req.IsEmergency {
		allowed *= tuning.EmergencyMultiplier
		assumptions.EmergencyMultiplier = tuning.EmergencyMultiplier
	}
	if !inNetwork {
		allowed *= tuning.OutOfNetworkPenalty
		assumptions.OutOfNetworkPenalty = tuning.OutOfNetworkPenalty
	}
	allowed = model.Round2(allowed)

	sharing := req.Insurance.ApplyCostSharing(allowed, inNetwork)

	return CostEstimate{
		ServiceCode:                    sc.Code,
		Description:                    sc.Description,
		EstimatedAllowedAmount:         allowed,
		EstimatedInsurancePayment:      sharing.Insurer,
		EstimatedPatientResponsibility: sharing.Patient,
		ConfidenceLow:                  model.Round2(allowed * (1 - tuning.ConfidenceInterval)),
		ConfidenceHigh:                 model.Round2(allowed * (1 + tuning.ConfidenceInterval)),
		Assumptions:                    assumptions,
	}, nil
}

// Services lists the full service-cost reference for discovery.
func (s *Service) Services() []ServiceCost {
	return s.costs.List()
}
