// Package model holds the financial value objects shared by the engines:
// insurance profiles, medical bills, and the cost-sharing arithmetic that
// both the cost estimator and the insurance analyzer apply. Every type is
// treated as immutable by the engines; computations return new values.
package model

import "github.com/medfin/medfin/internal/platform/errs"

// PlanType identifies the coverage plan category.
type PlanType string

const (
	PlanHMO  PlanType = "HMO"
	PlanPPO  PlanType = "PPO"
	PlanEPO  PlanType = "EPO"
	PlanPOS  PlanType = "POS"
	PlanHDHP PlanType = "HDHP"
	PlanNone PlanType = "none"
)

// PlanTypes lists every supported plan type, in display order.
var PlanTypes = []PlanType{PlanHMO, PlanPPO, PlanEPO, PlanPOS, PlanHDHP, PlanNone}

// Valid reports whether the plan type is one of the supported values.
func (p PlanType) Valid() bool {
	for _, t := range PlanTypes {
		if p == t {
			return true
		}
	}
	return false
}

// TierAmounts holds a dollar amount at the individual and family tier.
type TierAmounts struct {
	Individual float64 `json:"individual"`
	Family     float64 `json:"family"`
}

// InsuranceInfo describes a patient's coverage profile.
type InsuranceInfo struct {
	PlanType                PlanType           `json:"plan_type"`
	AnnualDeductible        TierAmounts        `json:"annual_deductible"`
	DeductibleMet           TierAmounts        `json:"deductible_met"`
	OutOfPocketMax          TierAmounts        `json:"out_of_pocket_max"`
	OutOfPocketMet          TierAmounts        `json:"out_of_pocket_met"`
	Copays                  map[string]float64 `json:"copays,omitempty"`
	CoinsuranceInNetwork    float64            `json:"coinsurance_in_network"`
	CoinsuranceOutOfNetwork float64            `json:"coinsurance_out_of_network"`
	Network                 string             `json:"network,omitempty"`
}

// Validate checks the profile's invariants: known plan type, non-negative
// amounts, met amounts no greater than their annual limits, and coinsurance
// rates within [0,1].
func (i *InsuranceInfo) Validate() error {
	if !i.PlanType.Valid() {
		return errs.Validation("plan_type", string(i.PlanType), "must be one of HMO, PPO, EPO, POS, HDHP, none")
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"annual_deductible.individual", i.AnnualDeductible.Individual},
		{"annual_deductible.family", i.AnnualDeductible.Family},
		{"deductible_met.individual", i.DeductibleMet.Individual},
		{"deductible_met.family", i.DeductibleMet.Family},
		{"out_of_pocket_max.individual", i.OutOfPocketMax.Individual},
		{"out_of_pocket_max.family", i.OutOfPocketMax.Family},
		{"out_of_pocket_met.individual", i.OutOfPocketMet.Individual},
		{"out_of_pocket_met.family", i.OutOfPocketMet.Family},
	}
	for _, f := range fields {
		if f.v < 0 {
			return errs.Validation(f.name, f.v, "must be non-negative")
		}
	}
	if i.DeductibleMet.Individual > i.AnnualDeductible.Individual {
		return errs.Validation("deductible_met.individual", i.DeductibleMet.Individual, "exceeds annual_deductible")
	}
	if i.DeductibleMet.Family > i.AnnualDeductible.Family {
		return errs.Validation("deductible_met.family", i.DeductibleMet.Family, "exceeds annual_deductible")
	}
	if i.CoinsuranceInNetwork < 0 || i.CoinsuranceInNetwork > 1 {
		return errs.Validation("coinsurance_in_network", i.CoinsuranceInNetwork, "must be within [0,1]")
	}
	if i.CoinsuranceOutOfNetwork < 0 || i.CoinsuranceOutOfNetwork > 1 {
		return errs.Validation("coinsurance_out_of_network", i.CoinsuranceOutOfNetwork, "must be within [0,1]")
	}
	for tier, amount := range i.Copays {
		if amount < 0 {
			return errs.Validation("copays."+tier, amount, "must be non-negative")
		}
	}
	return nil
}

// RemainingDeductible returns the individual deductible still owed this
// period, floored at zero.
func (i *InsuranceInfo) RemainingDeductible() float64 {
	rem := i.AnnualDeductible.Individual - i.DeductibleMet.Individual
	if rem < 0 {
		return 0
	}
	return rem
}

// RemainingOutOfPocket returns the individual out-of-pocket room still
// available, floored at zero. A zero out_of_pocket_max means no cap is
// configured for the plan.
func (i *InsuranceInfo) RemainingOutOfPocket() float64 {
	rem := i.OutOfPocketMax.Individual - i.OutOfPocketMet.Individual
	if rem < 0 {
		return 0
	}
	return rem
}

// CostSharing is the split of an allowed amount between patient and insurer.
type CostSharing struct {
	Allowed            float64 `json:"allowed"`
	DeductiblePortion  float64 `json:"deductible_portion"`
	CoinsurancePortion float64 `json:"coinsurance_portion"`
	Patient            float64 `json:"patient"`
	Insurer            float64 `json:"insurer"`
}

// ApplyCostSharing splits an allowed amount using the plan's rules, in
// order: remaining deductible first, then coinsurance on the remainder at
// the in- or out-of-network rate, then a cap at the plan's remaining
// out-of-pocket room. Anything over the cap shifts to the insurer.
// An uninsured profile (plan type "none") owes the full allowed amount.
func (i *InsuranceInfo) ApplyCostSharing(allowed float64, inNetwork bool) CostSharing {
	allowed = Round2(allowed)
	if i.PlanType == PlanNone {
		return CostSharing{Allowed: allowed, Patient: allowed}
	}

	ded := i.RemainingDeductible()
	if ded > allowed {
		ded = allowed
	}
	rate := i.CoinsuranceInNetwork
	if !inNetwork {
		rate = i.CoinsuranceOutOfNetwork
	}
	coins := rate * (allowed - ded)

	patient := ded + coins
	if i.OutOfPocketMax.Individual > 0 {
		if room := i.RemainingOutOfPocket(); patient > room {
			patient = room
		}
	}
	patient = Round2(patient)
	return CostSharing{
		Allowed:            allowed,
		DeductiblePortion:  Round2(ded),
		CoinsurancePortion: Round2(coins),
		Patient:            patient,
		Insurer:            Round2(allowed - patient),
	}
}

// Advance returns a copy of the profile with the deductible and
// out-of-pocket accumulators moved forward by a computed split, so a
// sequence of bills can be evaluated progressively without mutating the
// caller's profile.
func (i InsuranceInfo) Advance(cs CostSharing) InsuranceInfo {
	i.DeductibleMet.Individual = Round2(i.DeductibleMet.Individual + cs.DeductiblePortion)
	if i.DeductibleMet.Individual > i.AnnualDeductible.Individual {
		i.DeductibleMet.Individual = i.AnnualDeductible.Individual
	}
	i.OutOfPocketMet.Individual = Round2(i.OutOfPocketMet.Individual + cs.Patient)
	if i.OutOfPocketMax.Individual > 0 && i.OutOfPocketMet.Individual > i.OutOfPocketMax.Individual {
		i.OutOfPocketMet.Individual = i.OutOfPocketMax.Individual
	}
	return i
}
