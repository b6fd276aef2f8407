package guidelines

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/medfin/medfin/internal/platform/errs"
)

// schema mirrors the on-disk YAML layout of a guideline file. The same
// shape backs the compiled defaults so both paths share validation.
type schema struct {
	FederalPovertyLevel  map[string]map[string]float64 `mapstructure:"federal_poverty_level"`
	CharityCare          CharityMultiples              `mapstructure:"charity_care_income_thresholds"`
	Hardship             HardshipBands                 `mapstructure:"hardship_debt_to_income_ratio"`
	OutOfPocketLimits    map[string]float64            `mapstructure:"out_of_pocket_limits"`
	LocationMultipliers  map[string]float64            `mapstructure:"location_multipliers"`
	CostEstimateDefaults CostTuning                    `mapstructure:"cost_estimate_defaults"`
	PaymentPlanDefaults  PlanTuning                    `mapstructure:"payment_plan_defaults"`
}

// Default returns the compiled-in guideline table.
func Default() *Table {
	t, err := build(defaultSchema())
	if err != nil {
		// The compiled defaults are covered by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return t
}

// Load reads a guideline table from a YAML file. Poverty levels, caps and
// multipliers are revised periodically (yearly FPL updates), so operators
// can swap the table without a code change. Missing required sections are
// configuration errors.
func Load(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read guidelines file: %w", err)
	}
	var s schema
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal guidelines file: %w", err)
	}
	return build(s)
}

func build(s schema) (*Table, error) {
	if len(s.FederalPovertyLevel) == 0 {
		return nil, errs.Configuration("federal_poverty_level", "at least one year's table is required")
	}
	fpl := make(map[int]map[int]float64, len(s.FederalPovertyLevel))
	for yearKey, bySize := range s.FederalPovertyLevel {
		year, err := strconv.Atoi(yearKey)
		if err != nil {
			return nil, errs.Configuration("federal_poverty_level."+yearKey, "year must be numeric")
		}
		table := make(map[int]float64, len(bySize))
		for sizeKey, amount := range bySize {
			size, err := strconv.Atoi(sizeKey)
			if err != nil || size < 1 {
				return nil, errs.Configuration(
					fmt.Sprintf("federal_poverty_level.%d.%s", year, sizeKey),
					"household size must be a positive integer")
			}
			if amount <= 0 {
				return nil, errs.Configuration(
					fmt.Sprintf("federal_poverty_level.%d.%d", year, size),
					"poverty level must be positive")
			}
			table[size] = amount
		}
		// The extrapolation rule for households above 8 needs the 7- and
		// 8-person entries, so a table is only usable when sizes 1..8 are
		// all present.
		for size := 1; size <= 8; size++ {
			if _, ok := table[size]; !ok {
				return nil, errs.Configuration(
					fmt.Sprintf("federal_poverty_level.%d.%d", year, size),
					"household sizes 1 through 8 are required")
			}
		}
		fpl[year] = table
	}

	if s.CharityCare.Full <= 0 || s.CharityCare.Partial <= 0 {
		return nil, errs.Configuration("charity_care_income_thresholds", "full and partial multiples are required")
	}
	if s.CharityCare.Partial < s.CharityCare.Full {
		return nil, errs.Configuration("charity_care_income_thresholds", "partial multiple must be at least the full multiple")
	}
	if s.Hardship.Mild <= 0 || s.Hardship.Moderate <= s.Hardship.Mild || s.Hardship.Severe <= s.Hardship.Moderate {
		return nil, errs.Configuration("hardship_debt_to_income_ratio", "bands must be positive and strictly increasing")
	}
	if len(s.OutOfPocketLimits) == 0 {
		return nil, errs.Configuration("out_of_pocket_limits", "at least one coverage type cap is required")
	}
	for coverageType, limit := range s.OutOfPocketLimits {
		if limit <= 0 {
			return nil, errs.Configuration("out_of_pocket_limits."+coverageType, "cap must be positive")
		}
	}
	for region, mult := range s.LocationMultipliers {
		if mult <= 0 {
			return nil, errs.Configuration("location_multipliers."+region, "multiplier must be positive")
		}
	}
	c := s.CostEstimateDefaults
	if c.ConfidenceInterval <= 0 || c.ConfidenceInterval >= 1 {
		return nil, errs.Configuration("cost_estimate_defaults.confidence_interval", "must be within (0,1)")
	}
	if c.OutOfNetworkPenalty < 1 {
		return nil, errs.Configuration("cost_estimate_defaults.out_of_network_penalty", "must be at least 1")
	}
	if c.EmergencyMultiplier < 1 {
		return nil, errs.Configuration("cost_estimate_defaults.emergency_multiplier", "must be at least 1")
	}
	p := s.PaymentPlanDefaults
	if p.StandardTermMonths < 1 || p.ExtendedTermMonths <= p.StandardTermMonths {
		return nil, errs.Configuration("payment_plan_defaults", "extended term must exceed the standard term")
	}
	if p.ExtendedFeeRate < 0 || p.ExtendedFeeRate >= 1 {
		return nil, errs.Configuration("payment_plan_defaults.extended_fee_rate", "must be within [0,1)")
	}
	if p.AffordabilityFraction <= 0 || p.AffordabilityFraction > 1 {
		return nil, errs.Configuration("payment_plan_defaults.affordability_fraction", "must be within (0,1]")
	}
	if p.SettlementRate <= 0 || p.SettlementRate >= 1 {
		return nil, errs.Configuration("payment_plan_defaults.settlement_rate", "must be within (0,1)")
	}
	if p.MinCreditScore < 300 || p.MinCreditScore > 850 {
		return nil, errs.Configuration("payment_plan_defaults.min_credit_score", "must be within [300,850]")
	}
	if p.HardshipMaxTermMonths < 1 {
		return nil, errs.Configuration("payment_plan_defaults.hardship_max_term_months", "must be at least 1")
	}

	locations := make(map[string]float64, len(s.LocationMultipliers))
	for region, mult := range s.LocationMultipliers {
		locations[normalizeRegion(region)] = mult
	}
	oop := make(map[string]float64, len(s.OutOfPocketLimits))
	for coverageType, limit := range s.OutOfPocketLimits {
		oop[coverageType] = limit
	}

	return &Table{
		fpl:       fpl,
		charity:   s.CharityCare,
		hardship:  s.Hardship,
		oopCaps:   oop,
		locations: locations,
		cost:      s.CostEstimateDefaults,
		plan:      s.PaymentPlanDefaults,
	}, nil
}

func defaultSchema() schema {
	return schema{
		FederalPovertyLevel: map[string]map[string]float64{
			"2024": {
				"1": 15180, "2": 20440, "3": 25700, "4": 30960,
				"5": 36220, "6": 41480, "7": 46740, "8": 52000,
			},
		},
		CharityCare: CharityMultiples{Full: 2.0, Partial: 4.0},
		Hardship:    HardshipBands{Mild: 0.10, Moderate: 0.20, Severe: 0.40},
		OutOfPocketLimits: map[string]float64{
			"private_individual": 9100,
			"private_family":     18200,
			"medicare":           8300,
		},
		LocationMultipliers: map[string]float64{
			"northeast": 1.25,
			"west":      1.20,
			"midwest":   0.95,
			"south":     0.90,
			"urban":     1.15,
			"rural":     0.85,
		},
		CostEstimateDefaults: CostTuning{
			ConfidenceInterval:  0.15,
			OutOfNetworkPenalty: 1.5,
			EmergencyMultiplier: 2.0,
		},
		PaymentPlanDefaults: PlanTuning{
			StandardTermMonths:    12,
			ExtendedTermMonths:    36,
			ExtendedFeeRate:       0.08,
			AffordabilityFraction: 0.20,
			SettlementRate:        0.60,
			MinCreditScore:        580,
			HardshipMaxTermMonths: 60,
		},
	}
}
