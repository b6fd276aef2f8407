package costestimate

import (
	"sort"

	"github.com/medfin/medfin/internal/platform/errs"
)

// ServiceCost is one entry in the service-cost reference: the typical
// allowed amount for a billing code before regional and plan adjustments.
type ServiceCost struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	BaseAmount  float64 `json:"base_amount"`
}

// ServiceCostRepository resolves billing codes to reference costs.
type ServiceCostRepository interface {
	Lookup(code string) (ServiceCost, error)
	List() []ServiceCost
}

// Registry is the static in-process service-cost reference. It also serves
// the bill analyzer as a price reference for overcharge checks.
type Registry struct {
	byCode map[string]ServiceCost
}

// NewStaticServiceCosts returns the built-in service-cost reference. The
// amounts are national median allowed amounts for common CPT codes; the
// regional multiplier in the guideline table localizes them.
func NewStaticServiceCosts() *Registry {
	return NewServiceCostsFrom(defaultServiceCosts)
}

// NewServiceCostsFrom builds a reference over an explicit set of entries,
// for callers that supply their own fee schedule.
func NewServiceCostsFrom(entries []ServiceCost) *Registry {
	byCode := make(map[string]ServiceCost, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}
	return &Registry{byCode: byCode}
}

func (r *Registry) Lookup(code string) (ServiceCost, error) {
	sc, ok := r.byCode[code]
	if !ok {
		return ServiceCost{}, errs.NotFound("service code", code)
	}
	return sc, nil
}

func (r *Registry) List() []ServiceCost {
	out := make([]ServiceCost, 0, len(r.byCode))
	for _, sc := range r.byCode {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ReferencePrice reports the reference unit price for a code, if known.
func (r *Registry) ReferencePrice(code string) (float64, bool) {
	sc, ok := r.byCode[code]
	if !ok {
		return 0, false
	}
	return sc.BaseAmount, true
}

var defaultServiceCosts = []ServiceCost{
	{Code: "99203", Description: "Office visit, new patient", Category: "office", BaseAmount: 225},
	{Code: "99213", Description: "Office visit, established patient", Category: "office", BaseAmount: 150},
	{Code: "99214", Description: "Office visit, established patient, moderate complexity", Category: "office", BaseAmount: 220},
	{Code: "99283", Description: "Emergency department visit, moderate severity", Category: "emergency", BaseAmount: 400},
	{Code: "99285", Description: "Emergency department visit, high severity", Category: "emergency", BaseAmount: 1250},
	{Code: "36415", Description: "Venipuncture", Category: "lab", BaseAmount: 15},
	{Code: "80053", Description: "Comprehensive metabolic panel", Category: "lab", BaseAmount: 48},
	{Code: "85025", Description: "Complete blood count with differential", Category: "lab", BaseAmount: 29},
	{Code: "71046", Description: "Chest X-ray, 2 views", Category: "imaging", BaseAmount: 110},
	{Code: "70450", Description: "CT head without contrast", Category: "imaging", BaseAmount: 825},
	{Code: "72148", Description: "MRI lumbar spine without contrast", Category: "imaging", BaseAmount: 1600},
	{Code: "76700", Description: "Abdominal ultrasound, complete", Category: "imaging", BaseAmount: 390},
	{Code: "93000", Description: "Electrocardiogram with interpretation", Category: "cardiology", BaseAmount: 85},
	{Code: "45378", Description: "Colonoscopy, diagnostic", Category: "procedure", BaseAmount: 1250},
	{Code: "29881", Description: "Knee arthroscopy with meniscectomy", Category: "procedure", BaseAmount: 3900},
}
