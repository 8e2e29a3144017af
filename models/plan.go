// models/plan.go
package models

import "math"

// PlanKey identifies one tier in the fixed plan catalog
type PlanKey string

const (
	PlanDemo     PlanKey = "demo"
	PlanBasic    PlanKey = "basic"
	PlanStandard PlanKey = "standard"
	PlanPremium  PlanKey = "premium"
)

// Plan describes one entitlement tier. The catalog is compiled in; plans
// are not stored or edited at runtime.
type Plan struct {
	Key         PlanKey `json:"key"`
	Name        string  `json:"name"`
	MaxBranches int     `json:"maxBranches"`
	TrialDays   int     `json:"trialDays,omitempty"`
	PriceAnnual float64 `json:"priceAnnual"`
}

// planOrder fixes the upgrade ordering from lowest to highest tier
var planOrder = []PlanKey{PlanDemo, PlanBasic, PlanStandard, PlanPremium}

var planCatalog = map[PlanKey]Plan{
	PlanDemo: {
		Key:         PlanDemo,
		Name:        "Demo",
		MaxBranches: 1,
		TrialDays:   14,
	},
	PlanBasic: {
		Key:         PlanBasic,
		Name:        "Basic",
		MaxBranches: 1,
		PriceAnnual: 99,
	},
	PlanStandard: {
		Key:         PlanStandard,
		Name:        "Standard",
		MaxBranches: 5,
		PriceAnnual: 249,
	},
	PlanPremium: {
		Key:         PlanPremium,
		Name:        "Premium",
		MaxBranches: 10,
		PriceAnnual: 499,
	},
}

// LookupPlan resolves a plan key against the catalog
func LookupPlan(key PlanKey) (Plan, bool) {
	plan, ok := planCatalog[key]
	return plan, ok
}

// AllPlans returns the catalog in tier order
func AllPlans() []Plan {
	plans := make([]Plan, 0, len(planOrder))
	for _, key := range planOrder {
		plans = append(plans, planCatalog[key])
	}
	return plans
}

// PlanRank returns a key's position in the tier order, or -1 for an
// unknown key
func PlanRank(key PlanKey) int {
	for i, k := range planOrder {
		if k == key {
			return i
		}
	}
	return -1
}

// BranchUsage reports quota consumption for dashboard display
type BranchUsage struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Percent int `json:"percent"`
}

// UsageForPlan computes quota usage. Percent caps at 100 even when
// grandfathered branches push the count over the limit.
func UsageForPlan(plan Plan, branchCount int) BranchUsage {
	usage := BranchUsage{Current: branchCount, Max: plan.MaxBranches}
	if plan.MaxBranches > 0 {
		pct := math.Round(float64(branchCount) / float64(plan.MaxBranches) * 100)
		usage.Percent = int(math.Min(pct, 100))
	}
	return usage
}
