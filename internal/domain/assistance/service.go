// Package assistance matches a household's income picture against a registry
// of financial assistance programs. The eligibility tier follows the federal
// poverty level multiples from the guideline table; individual programs layer
// their own criteria on top of the tier.
package assistance

import (
	"math"

	"github.com/medfin/medfin/internal/guidelines"
	"github.com/medfin/medfin/internal/model"
	"github.com/medfin/medfin/internal/platform/errs"
)

type Service struct {
	table    *guidelines.Table
	programs []Program
}

func NewService(table *guidelines.Table) *Service {
	return &Service{table: table, programs: defaultPrograms()}
}

// Match decides the eligibility tier for the household and returns every
// registry program it qualifies for.
//
// Annualized income is compared against the poverty level for the household
// size in the latest guideline year. Severe financial hardship upgrades the
// tier one step; it never downgrades.
func (s *Service) Match(req MatchRequest) (AssistanceMatch, error) {
	if req.HouseholdSize < 1 {
		return AssistanceMatch{}, errs.Validation("household_size", req.HouseholdSize, "must be at least 1")
	}
	if req.MonthlyIncome < 0 {
		return AssistanceMatch{}, errs.Validation("monthly_income", req.MonthlyIncome, "must not be negative")
	}
	if !req.HardshipLevel.Valid() {
		return AssistanceMatch{}, errs.Validation("hardship_level", req.HardshipLevel, "unknown hardship level")
	}
	if err := req.Insurance.Validate(); err != nil {
		return AssistanceMatch{}, err
	}

	year := s.table.LatestFPLYear()
	fpl, err := s.table.FPL(year, req.HouseholdSize)
	if err != nil {
		return AssistanceMatch{}, err
	}

	ratio := req.MonthlyIncome * 12 / fpl
	charity := s.table.Charity()
	tier := TierNone
	switch {
	case ratio <= charity.Full:
		tier = TierFull
	case ratio <= charity.Partial:
		tier = TierPartial
	}

	hardshipApplied := false
	if req.HardshipLevel == model.HardshipSevere && tier != TierFull {
		tier = tier.upgrade()
		hardshipApplied = true
	}

	var billTotal float64
	for _, bill := range req.MedicalBills {
		if err := bill.Validate(); err != nil {
			return AssistanceMatch{}, err
		}
		billTotal += bill.TotalAmount
	}

	ctx := matchContext{
		Tier:          tier,
		PlanType:      req.Insurance.PlanType,
		Diagnoses:     req.Diagnoses,
		Prescriptions: req.Prescriptions,
		BillTotal:     billTotal,
	}
	matched := []MatchedProgram{}
	for _, p := range s.programs {
		if !p.eligible(ctx) {
			continue
		}
		matched = append(matched, MatchedProgram{
			Name:                   p.Name,
			QualifyingCriterion:    p.QualifyingCriterion,
			EstimatedBenefitAmount: model.Round2(p.benefit(ctx)),
		})
	}

	return AssistanceMatch{
		EligibilityTier:  tier,
		IncomeToFPLRatio: math.Round(ratio*1000) / 1000,
		FPLYear:          year,
		HardshipApplied:  hardshipApplied,
		MatchedPrograms:  matched,
	}, nil
}

// Programs lists the registry for discovery.
func (s *Service) Programs() []ProgramInfo {
	out := make([]ProgramInfo, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, ProgramInfo{Name: p.Name, QualifyingCriterion: p.QualifyingCriterion})
	}
	return out
}
