package assistance

import (
	"math"
	"strings"

	"github.com/medfin/medfin/internal/model"
)

// matchContext is the decided household picture a program predicate sees.
type matchContext struct {
	Tier          EligibilityTier
	PlanType      model.PlanType
	Diagnoses     []string
	Prescriptions []string
	BillTotal     float64
}

// Program is one assistance program in the registry. Eligibility and the
// benefit estimate are plain functions over the match context so new
// programs are a data change, not a code change.
type Program struct {
	Name                string
	QualifyingCriterion string
	eligible            func(matchContext) bool
	benefit             func(matchContext) float64
}

func (ctx matchContext) hasDiagnosis(names ...string) bool {
	for _, d := range ctx.Diagnoses {
		for _, want := range names {
			if strings.Contains(strings.ToLower(d), want) {
				return true
			}
		}
	}
	return false
}

// chronicConditions are the diagnoses the relief fund covers. Matching is
// substring based so "type 2 diabetes" qualifies.
var chronicConditions = []string{"diabetes", "cancer", "kidney disease", "copd", "heart disease", "asthma"}

func defaultPrograms() []Program {
	return []Program{
		{
			Name:                "Hospital Charity Care",
			QualifyingCriterion: "household income at or below 200% of the federal poverty level",
			eligible:            func(ctx matchContext) bool { return ctx.Tier == TierFull && ctx.BillTotal > 0 },
			benefit:             func(ctx matchContext) float64 { return ctx.BillTotal },
		},
		{
			Name:                "Sliding Scale Discount",
			QualifyingCriterion: "household income at or below 400% of the federal poverty level",
			eligible:            func(ctx matchContext) bool { return ctx.Tier == TierPartial && ctx.BillTotal > 0 },
			benefit: func(ctx matchContext) float64 {
				return math.Min(ctx.BillTotal*0.5, 5000)
			},
		},
		{
			Name:                "Uninsured Care Discount",
			QualifyingCriterion: "no active health coverage",
			eligible: func(ctx matchContext) bool {
				return ctx.PlanType == model.PlanNone && ctx.Tier != TierNone && ctx.BillTotal > 0
			},
			benefit: func(ctx matchContext) float64 { return ctx.BillTotal * 0.4 },
		},
		{
			Name:                "Prescription Assistance Program",
			QualifyingCriterion: "income-qualified household with ongoing prescriptions",
			eligible: func(ctx matchContext) bool {
				return ctx.Tier != TierNone && len(ctx.Prescriptions) > 0
			},
			benefit: func(ctx matchContext) float64 { return 1200 },
		},
		{
			Name:                "Chronic Condition Relief Fund",
			QualifyingCriterion: "income-qualified household managing a covered chronic condition",
			eligible: func(ctx matchContext) bool {
				return ctx.Tier != TierNone && ctx.hasDiagnosis(chronicConditions...)
			},
			benefit: func(ctx matchContext) float64 { return 2500 },
		},
		{
			Name:                "Medical Debt Forgiveness",
			QualifyingCriterion: "charity-care eligible household with medical debt of $10,000 or more",
			eligible: func(ctx matchContext) bool {
				return ctx.Tier == TierFull && ctx.BillTotal >= 10000
			},
			benefit: func(ctx matchContext) float64 { return ctx.BillTotal * 0.8 },
		},
	}
}
