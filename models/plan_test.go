package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPlan(t *testing.T) {
	plan, ok := LookupPlan(PlanStandard)
	require.True(t, ok)
	assert.Equal(t, "Standard", plan.Name)
	assert.Equal(t, 5, plan.MaxBranches)

	_, ok = LookupPlan(PlanKey("enterprise"))
	assert.False(t, ok)
}

func TestAllPlansOrder(t *testing.T) {
	plans := AllPlans()
	require.Len(t, plans, 4)

	keys := make([]PlanKey, 0, len(plans))
	for _, p := range plans {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []PlanKey{PlanDemo, PlanBasic, PlanStandard, PlanPremium}, keys)

	// limits never decrease up the tier ladder
	for i := 1; i < len(plans); i++ {
		assert.GreaterOrEqual(t, plans[i].MaxBranches, plans[i-1].MaxBranches)
	}
}

func TestPlanRank(t *testing.T) {
	assert.Equal(t, 0, PlanRank(PlanDemo))
	assert.Equal(t, 3, PlanRank(PlanPremium))
	assert.Equal(t, -1, PlanRank(PlanKey("enterprise")))
}

func TestOnlyDemoHasTrial(t *testing.T) {
	for _, plan := range AllPlans() {
		if plan.Key == PlanDemo {
			assert.Equal(t, 14, plan.TrialDays)
		} else {
			assert.Zero(t, plan.TrialDays, "plan %s", plan.Key)
		}
	}
}
