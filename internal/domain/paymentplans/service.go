// Package paymentplans turns a medical debt into a set of repayment
// options and a single recommendation. All terms, fee rates and the
// affordability fraction come from the guideline table.
package paymentplans

import (
	"fmt"
	"math"

	"github.com/medfin/medfin/internal/guidelines"
	"github.com/medfin/medfin/internal/model"
	"github.com/medfin/medfin/internal/platform/errs"
)

const (
	minCreditScore = 300
	maxCreditScore = 850
)

type Service struct {
	table *guidelines.Table
}

func NewService(table *guidelines.Table) *Service {
	return &Service{table: table}
}

// GeneratePlans produces every repayment option for the request.
//
// A standard and an extended plan are always sized; the extended plan is
// withheld when the credit score is below the approval threshold and a
// settlement offer takes its place. A hardship plan is added when the
// hardship flag is set or the debt-to-income ratio sits in the severe band.
// An omitted ratio is derived from the debt against annual income.
func (s *Service) GeneratePlans(req PlanRequest) ([]PaymentPlanOption, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if req.DebtToIncomeRatio == 0 && req.MonthlyIncome > 0 {
		req.DebtToIncomeRatio = req.TotalDebt / (req.MonthlyIncome * 12)
	}
	tuning := s.table.Plan()
	affordable := tuning.AffordabilityFraction * req.MonthlyIncome

	creditApproved := req.CreditScore == nil || *req.CreditScore >= tuning.MinCreditScore

	options := []PaymentPlanOption{s.standardPlan(req, tuning, affordable)}
	if creditApproved {
		options = append(options, s.extendedPlan(req, tuning, affordable))
	} else {
		options = append(options, s.settlementOffer(req, tuning, affordable))
	}
	if req.Hardship || s.table.HardshipLevel(req.DebtToIncomeRatio) == model.HardshipSevere {
		options = append(options, s.hardshipPlan(req, tuning, affordable))
	}
	return options, nil
}

// Recommend picks the feasible option with the lowest fees, breaking ties
// by shortest term. When nothing is feasible the hardship plan wins if
// present, otherwise the option with the lowest monthly payment, left
// marked non-feasible so callers can surface a warning.
func (s *Service) Recommend(req PlanRequest) (Recommendation, error) {
	options, err := s.GeneratePlans(req)
	if err != nil {
		return Recommendation{}, err
	}

	var best *PaymentPlanOption
	for i := range options {
		opt := &options[i]
		if !opt.Feasible {
			continue
		}
		if best == nil || opt.TotalInterestOrFees < best.TotalInterestOrFees ||
			(opt.TotalInterestOrFees == best.TotalInterestOrFees && opt.TermMonths < best.TermMonths) {
			best = opt
		}
	}
	if best != nil {
		return Recommendation{
			Recommended: *best,
			Options:     options,
			Rationale:   fmt.Sprintf("lowest total fees ($%.2f) among feasible plans", best.TotalInterestOrFees),
		}, nil
	}

	for i := range options {
		if options[i].PlanKind == KindHardship {
			return Recommendation{
				Recommended: options[i],
				Options:     options,
				Rationale:   "no plan fits the affordability threshold; the hardship plan is the closest option",
			}, nil
		}
	}
	fallback := options[0]
	for _, opt := range options[1:] {
		if opt.MonthlyPayment < fallback.MonthlyPayment {
			fallback = opt
		}
	}
	return Recommendation{
		Recommended: fallback,
		Options:     options,
		Rationale:   "no plan fits the affordability threshold; showing the lowest monthly payment",
	}, nil
}

func (s *Service) validate(req PlanRequest) error {
	if req.TotalDebt < 0 {
		return errs.Validation("total_debt", req.TotalDebt, "must not be negative")
	}
	if req.TotalDebt == 0 {
		return errs.Validation("total_debt", req.TotalDebt, "there is no debt to plan for")
	}
	if req.MonthlyIncome < 0 {
		return errs.Validation("monthly_income", req.MonthlyIncome, "must not be negative")
	}
	if req.CreditScore != nil && (*req.CreditScore < minCreditScore || *req.CreditScore > maxCreditScore) {
		return errs.Validation("credit_score", *req.CreditScore, "must be between 300 and 850")
	}
	if req.DebtToIncomeRatio < 0 {
		return errs.Validation("debt_to_income_ratio", req.DebtToIncomeRatio, "must not be negative")
	}
	return nil
}

func (s *Service) standardPlan(req PlanRequest, tuning guidelines.PlanTuning, affordable float64) PaymentPlanOption {
	// Round up so the schedule never repays less than the debt; the final
	// installment absorbs the difference.
	monthly := model.Ceil2(req.TotalDebt / float64(tuning.StandardTermMonths))
	return PaymentPlanOption{
		PlanKind:       KindStandard,
		MonthlyPayment: monthly,
		TermMonths:     tuning.StandardTermMonths,
		TotalPaid:      model.Round2(req.TotalDebt),
		Feasible:       monthly <= affordable+model.Tolerance,
		Description:    fmt.Sprintf("pay the balance over %d months with no fees", tuning.StandardTermMonths),
	}
}

func (s *Service) extendedPlan(req PlanRequest, tuning guidelines.PlanTuning, affordable float64) PaymentPlanOption {
	fee := model.Round2(req.TotalDebt * tuning.ExtendedFeeRate)
	total := model.Round2(req.TotalDebt + fee)
	monthly := model.Ceil2(total / float64(tuning.ExtendedTermMonths))
	return PaymentPlanOption{
		PlanKind:            KindExtended,
		MonthlyPayment:      monthly,
		TermMonths:          tuning.ExtendedTermMonths,
		TotalInterestOrFees: fee,
		TotalPaid:           total,
		Feasible:            monthly <= affordable+model.Tolerance,
		Description: fmt.Sprintf("lower payments over %d months with a %.0f%% servicing fee",
			tuning.ExtendedTermMonths, tuning.ExtendedFeeRate*100),
	}
}

func (s *Service) hardshipPlan(req PlanRequest, tuning guidelines.PlanTuning, affordable float64) PaymentPlanOption {
	term := tuning.HardshipMaxTermMonths
	if affordable > 0 {
		needed := int(math.Ceil(req.TotalDebt / affordable))
		if needed < 1 {
			needed = 1
		}
		if needed < term {
			term = needed
		}
	}
	monthly := model.Ceil2(req.TotalDebt / float64(term))
	return PaymentPlanOption{
		PlanKind:       KindHardship,
		MonthlyPayment: monthly,
		TermMonths:     term,
		TotalPaid:      model.Round2(req.TotalDebt),
		Feasible:       monthly <= affordable+model.Tolerance,
		Description:    fmt.Sprintf("fee-free hardship schedule over %d months", term),
	}
}

func (s *Service) settlementOffer(req PlanRequest, tuning guidelines.PlanTuning, affordable float64) PaymentPlanOption {
	lump := model.Round2(req.TotalDebt * tuning.SettlementRate)
	return PaymentPlanOption{
		PlanKind:       KindSettlement,
		MonthlyPayment: lump,
		TermMonths:     1,
		TotalPaid:      lump,
		Feasible:       lump <= affordable+model.Tolerance,
		Description: fmt.Sprintf("settle the balance for a single payment of $%.2f (%.0f%% of the debt)",
			lump, tuning.SettlementRate*100),
	}
}
