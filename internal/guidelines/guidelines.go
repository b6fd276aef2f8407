// Package guidelines holds the read-only table of financial guideline
// constants every engine reads: federal poverty levels, charity-care income
// multiples, hardship debt-to-income bands, out-of-pocket caps, regional
// cost multipliers, and tuning constants for estimation and payment
// planning. A Table is built once at process start (from compiled defaults
// or an external YAML file) and never mutated afterwards, so concurrent
// readers never race.
package guidelines

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medfin/medfin/internal/model"
	"github.com/medfin/medfin/internal/platform/errs"
)

// CharityMultiples are the income-to-FPL multiples gating charity care.
type CharityMultiples struct {
	Full    float64 `mapstructure:"full_assistance"`
	Partial float64 `mapstructure:"partial_assistance"`
}

// HardshipBands are the debt-to-income thresholds grading hardship.
type HardshipBands struct {
	Mild     float64 `mapstructure:"mild"`
	Moderate float64 `mapstructure:"moderate"`
	Severe   float64 `mapstructure:"severe"`
}

// CostTuning holds the cost-estimate tuning constants.
type CostTuning struct {
	ConfidenceInterval  float64 `mapstructure:"confidence_interval"`
	OutOfNetworkPenalty float64 `mapstructure:"out_of_network_penalty"`
	EmergencyMultiplier float64 `mapstructure:"emergency_multiplier"`
}

// PlanTuning holds the payment-plan generation constants.
type PlanTuning struct {
	StandardTermMonths    int     `mapstructure:"standard_term_months"`
	ExtendedTermMonths    int     `mapstructure:"extended_term_months"`
	ExtendedFeeRate       float64 `mapstructure:"extended_fee_rate"`
	AffordabilityFraction float64 `mapstructure:"affordability_fraction"`
	SettlementRate        float64 `mapstructure:"settlement_rate"`
	MinCreditScore        int     `mapstructure:"min_credit_score"`
	HardshipMaxTermMonths int     `mapstructure:"hardship_max_term_months"`
}

// Table is the immutable guideline set injected into every engine.
type Table struct {
	fpl       map[int]map[int]float64
	charity   CharityMultiples
	hardship  HardshipBands
	oopCaps   map[string]float64
	locations map[string]float64
	cost      CostTuning
	plan      PlanTuning
}

// FPL returns the federal poverty level for the given year and household
// size. Sizes above eight extrapolate by the published per-person
// increment (the size-8 minus size-7 delta). A year with no configured
// table is a configuration error, never a silent default.
func (t *Table) FPL(year, householdSize int) (float64, error) {
	if householdSize < 1 {
		return 0, errs.Validation("household_size", householdSize, "must be at least 1")
	}
	byYear, ok := t.fpl[year]
	if !ok {
		return 0, errs.Configuration(
			fmt.Sprintf("federal_poverty_level.%d", year),
			"no poverty-level table configured for this year")
	}
	if householdSize <= 8 {
		return byYear[householdSize], nil
	}
	increment := byYear[8] - byYear[7]
	return byYear[8] + float64(householdSize-8)*increment, nil
}

// LatestFPLYear returns the most recent year with a configured poverty
// table.
func (t *Table) LatestFPLYear() int {
	latest := 0
	for year := range t.fpl {
		if year > latest {
			latest = year
		}
	}
	return latest
}

// FPLYears returns the configured poverty-table years in ascending order.
func (t *Table) FPLYears() []int {
	years := make([]int, 0, len(t.fpl))
	for year := range t.fpl {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// LocationMultiplier returns the regional cost multiplier for a location,
// matched case-insensitively. Unknown regions fall back to the neutral 1.0.
func (t *Table) LocationMultiplier(location string) float64 {
	if m, ok := t.locations[normalizeRegion(location)]; ok {
		return m
	}
	return 1.0
}

func normalizeRegion(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// Locations returns the configured region names in ascending order.
func (t *Table) Locations() []string {
	names := make([]string, 0, len(t.locations))
	for name := range t.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HardshipLevel grades a debt-to-income ratio against the configured bands.
// Ratios below the mild threshold carry no hardship grade.
func (t *Table) HardshipLevel(debtToIncome float64) model.FinancialHardshipLevel {
	switch {
	case debtToIncome >= t.hardship.Severe:
		return model.HardshipSevere
	case debtToIncome >= t.hardship.Moderate:
		return model.HardshipModerate
	case debtToIncome >= t.hardship.Mild:
		return model.HardshipMild
	default:
		return model.HardshipNone
	}
}

// OutOfPocketCap returns the guideline out-of-pocket cap for a coverage
// type (e.g. "private_individual"). Unknown types are a configuration
// error: there is no safe cap to guess.
func (t *Table) OutOfPocketCap(coverageType string) (float64, error) {
	limit, ok := t.oopCaps[coverageType]
	if !ok {
		return 0, errs.Configuration("out_of_pocket_limits."+coverageType, "no cap configured for this coverage type")
	}
	return limit, nil
}

// Charity returns the charity-care income multiples.
func (t *Table) Charity() CharityMultiples { return t.charity }

// Hardship returns the debt-to-income hardship bands.
func (t *Table) Hardship() HardshipBands { return t.hardship }

// Cost returns the cost-estimate tuning constants.
func (t *Table) Cost() CostTuning { return t.cost }

// Plan returns the payment-plan tuning constants.
func (t *Table) Plan() PlanTuning { return t.plan }
