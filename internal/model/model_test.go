package model

import (
	"testing"

	"github.com/medfin/medfin/internal/platform/errs"
)

func validInsurance() InsuranceInfo {
	return InsuranceInfo{
		PlanType:                PlanPPO,
		AnnualDeductible:        TierAmounts{Individual: 1500, Family: 3000},
		DeductibleMet:           TierAmounts{Individual: 1300, Family: 1300},
		OutOfPocketMax:          TierAmounts{Individual: 6000, Family: 12000},
		OutOfPocketMet:          TierAmounts{Individual: 1300, Family: 1300},
		Copays:                  map[string]float64{"primary_care": 25, "specialist": 50},
		CoinsuranceInNetwork:    0.2,
		CoinsuranceOutOfNetwork: 0.4,
		Network:                 "BlueChoice",
	}
}

func TestInsuranceInfo_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*InsuranceInfo)
		wantErr bool
	}{
		{"valid", func(i *InsuranceInfo) {}, false},
		{"bad plan type", func(i *InsuranceInfo) { i.PlanType = "GOLD" }, true},
		{"negative deductible", func(i *InsuranceInfo) { i.AnnualDeductible.Individual = -1 }, true},
		{"met exceeds annual", func(i *InsuranceInfo) { i.DeductibleMet.Individual = 2000 }, true},
		{"coinsurance over 1", func(i *InsuranceInfo) { i.CoinsuranceInNetwork = 1.2 }, true},
		{"negative copay", func(i *InsuranceInfo) { i.Copays["specialist"] = -5 }, true},
		{"no insurance", func(i *InsuranceInfo) { i.PlanType = PlanNone }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ins := validInsurance()
			tc.mutate(&ins)
			err := ins.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && !errs.IsValidation(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

// patient = min(D, C) + r*max(C-D, 0), capped at remaining OOP room.
func TestApplyCostSharing_Formula(t *testing.T) {
	ins := validInsurance() // $200 deductible remaining, 20% in-network

	cs := ins.ApplyCostSharing(2500, true)
	if cs.DeductiblePortion != 200 {
		t.Errorf("expected deductible portion 200, got %v", cs.DeductiblePortion)
	}
	if cs.CoinsurancePortion != 460 {
		t.Errorf("expected coinsurance portion 460, got %v", cs.CoinsurancePortion)
	}
	if cs.Patient != 660 {
		t.Errorf("expected patient 660, got %v", cs.Patient)
	}
	if cs.Insurer != 1840 {
		t.Errorf("expected insurer 1840, got %v", cs.Insurer)
	}
}

func TestApplyCostSharing_AllowedBelowDeductible(t *testing.T) {
	ins := validInsurance()
	cs := ins.ApplyCostSharing(150, true)
	if cs.Patient != 150 || cs.Insurer != 0 {
		t.Errorf("small charge should be all deductible: %+v", cs)
	}
}

func TestApplyCostSharing_OutOfNetworkRate(t *testing.T) {
	ins := validInsurance()
	cs := ins.ApplyCostSharing(2500, false)
	// 200 + 0.4*2300 = 1120
	if cs.Patient != 1120 {
		t.Errorf("expected patient 1120 at OON rate, got %v", cs.Patient)
	}
}

func TestApplyCostSharing_OOPCapShiftsToInsurer(t *testing.T) {
	ins := validInsurance()
	ins.OutOfPocketMax.Individual = 1500
	ins.OutOfPocketMet.Individual = 1300 // $200 of room left
	cs := ins.ApplyCostSharing(2500, true)
	if cs.Patient != 200 {
		t.Errorf("expected patient capped at 200, got %v", cs.Patient)
	}
	if cs.Insurer != 2300 {
		t.Errorf("expected overflow to insurer, got %v", cs.Insurer)
	}
}

func TestApplyCostSharing_Uninsured(t *testing.T) {
	ins := InsuranceInfo{PlanType: PlanNone}
	cs := ins.ApplyCostSharing(830.50, true)
	if cs.Patient != 830.50 || cs.Insurer != 0 {
		t.Errorf("uninsured patient owes full allowed amount: %+v", cs)
	}
}

func TestAdvance_ProgressiveSharing(t *testing.T) {
	ins := validInsurance()
	first := ins.ApplyCostSharing(400, true)
	// 200 deductible + 0.2*200 = 240
	if first.Patient != 240 {
		t.Fatalf("expected 240 on first bill, got %v", first.Patient)
	}
	ins = ins.Advance(first)
	if ins.RemainingDeductible() != 0 {
		t.Errorf("deductible should be exhausted, remaining %v", ins.RemainingDeductible())
	}
	second := ins.ApplyCostSharing(400, true)
	if second.Patient != 80 {
		t.Errorf("expected pure coinsurance 80 on second bill, got %v", second.Patient)
	}
}

func TestAdvance_DoesNotExceedCaps(t *testing.T) {
	ins := validInsurance()
	ins.OutOfPocketMax.Individual = 1400
	ins.OutOfPocketMet.Individual = 1300
	cs := ins.ApplyCostSharing(5000, true)
	ins = ins.Advance(cs)
	if ins.OutOfPocketMet.Individual != 1400 {
		t.Errorf("out_of_pocket_met must stop at the max, got %v", ins.OutOfPocketMet.Individual)
	}
	if ins.DeductibleMet.Individual != ins.AnnualDeductible.Individual {
		t.Errorf("deductible_met must stop at the annual amount, got %v", ins.DeductibleMet.Individual)
	}
}

func TestMedicalBill_Totals(t *testing.T) {
	bill := MedicalBill{
		Provider:    "General Hospital",
		ServiceDate: "2024-03-18",
		LineItems: []LineItem{
			{ServiceCode: "99213", Description: "Office visit", Quantity: 1, UnitPrice: 150},
			{ServiceCode: "85025", Description: "CBC", Quantity: 2, UnitPrice: 29},
		},
		TotalAmount:           208,
		InsuranceAdjustments:  58,
		InsurancePaid:         100,
		PatientResponsibility: 50,
	}
	if bill.LineItemTotal() != 208 {
		t.Errorf("expected line total 208, got %v", bill.LineItemTotal())
	}
	if bill.StatedSplitTotal() != 208 {
		t.Errorf("expected stated split 208, got %v", bill.StatedSplitTotal())
	}
	if err := bill.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMedicalBill_Validate(t *testing.T) {
	bill := MedicalBill{TotalAmount: 100, PatientResponsibility: -1}
	if err := bill.Validate(); err == nil || !errs.IsValidation(err) {
		t.Error("expected validation error for negative patient_responsibility")
	}
	bill = MedicalBill{LineItems: []LineItem{{ServiceCode: "99213", Quantity: 0, UnitPrice: 10}}}
	if err := bill.Validate(); err == nil {
		t.Error("expected validation error for zero quantity")
	}
	// Inconsistent, but structurally fine: a finding, not an error.
	bill = MedicalBill{TotalAmount: 500, InsurancePaid: 100, PatientResponsibility: 100}
	if err := bill.Validate(); err != nil {
		t.Errorf("monetary inconsistency must not fail validation: %v", err)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(10.006); got != 10.01 {
		t.Errorf("expected 10.01, got %v", got)
	}
	if !AmountsEqual(10.004, 10.0) {
		t.Error("expected amounts within a cent to compare equal")
	}
	if AmountsEqual(10.02, 10.0) {
		t.Error("expected amounts two cents apart to differ")
	}
}

func TestCeil2(t *testing.T) {
	if got := Ceil2(8.3325); got != 8.34 {
		t.Errorf("expected 8.34, got %v", got)
	}
	if got := Ceil2(500); got != 500 {
		t.Errorf("expected exact amounts to pass through, got %v", got)
	}
}
