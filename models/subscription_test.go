package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTrialSubscription(t *testing.T) {
	ownerID := primitive.NewObjectID()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	sub := NewTrialSubscription(ownerID, now)

	assert.Equal(t, PlanDemo, sub.Plan)
	assert.Equal(t, SubscriptionStatusTrial, sub.Status)
	require.NotNil(t, sub.TrialEndsAt)
	assert.Equal(t, now.AddDate(0, 0, 14), *sub.TrialEndsAt)
	assert.False(t, sub.IsTrialExpired(now))
}

func TestIsTrialExpired(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sub := NewTrialSubscription(primitive.NewObjectID(), now)

	t.Run("within window", func(t *testing.T) {
		assert.False(t, sub.IsTrialExpired(now.AddDate(0, 0, 13)))
	})

	t.Run("at boundary", func(t *testing.T) {
		assert.False(t, sub.IsTrialExpired(*sub.TrialEndsAt))
	})

	t.Run("after window", func(t *testing.T) {
		assert.True(t, sub.IsTrialExpired(now.AddDate(0, 0, 15)))
	})

	t.Run("idempotent", func(t *testing.T) {
		late := now.AddDate(0, 0, 30)
		assert.True(t, sub.IsTrialExpired(late))
		assert.True(t, sub.IsTrialExpired(late))
	})

	t.Run("paid plan never expires even with stale trial date", func(t *testing.T) {
		upgraded := sub
		upgraded.Plan = PlanBasic
		upgraded.Status = SubscriptionStatusActive
		assert.False(t, upgraded.IsTrialExpired(now.AddDate(0, 0, 60)))
	})

	t.Run("nil trial date", func(t *testing.T) {
		paid := Subscription{Plan: PlanStandard, Status: SubscriptionStatusActive}
		assert.False(t, paid.IsTrialExpired(now))
	})
}

func TestCanCreateBranch(t *testing.T) {
	tests := []struct {
		plan     PlanKey
		count    int
		expected bool
	}{
		{PlanDemo, 0, true},
		{PlanDemo, 1, false},
		{PlanBasic, 0, true},
		{PlanBasic, 1, false},
		{PlanStandard, 4, true},
		{PlanStandard, 5, false},
		{PlanPremium, 9, true},
		{PlanPremium, 10, false},
		// grandfathered over-quota counts still block creation
		{PlanBasic, 3, false},
	}

	for _, tc := range tests {
		sub := Subscription{Plan: tc.plan}
		assert.Equal(t, tc.expected, sub.CanCreateBranch(tc.count),
			"plan %s with %d branches", tc.plan, tc.count)
	}
}

func TestCanCreateBranchUnknownPlan(t *testing.T) {
	sub := Subscription{Plan: PlanKey("enterprise")}
	assert.False(t, sub.CanCreateBranch(0))
}

func TestAllowedUpgradeTargets(t *testing.T) {
	tests := []struct {
		plan    PlanKey
		targets []PlanKey
	}{
		{PlanDemo, []PlanKey{PlanBasic, PlanStandard, PlanPremium}},
		{PlanBasic, []PlanKey{PlanStandard, PlanPremium}},
		{PlanStandard, []PlanKey{PlanPremium}},
		{PlanPremium, []PlanKey{}},
	}

	for _, tc := range tests {
		sub := Subscription{Plan: tc.plan}
		assert.Equal(t, tc.targets, sub.AllowedUpgradeTargets(), "plan %s", tc.plan)
	}
}

func TestCanUpgradeTo(t *testing.T) {
	sub := Subscription{Plan: PlanBasic}

	assert.True(t, sub.CanUpgradeTo(PlanStandard))
	assert.True(t, sub.CanUpgradeTo(PlanPremium))
	assert.False(t, sub.CanUpgradeTo(PlanBasic), "same tier is not an upgrade")
	assert.False(t, sub.CanUpgradeTo(PlanDemo), "downgrade is rejected")
	assert.False(t, sub.CanUpgradeTo(PlanKey("enterprise")))
}

func TestBranchUsage(t *testing.T) {
	sub := Subscription{Plan: PlanStandard}

	usage := sub.BranchUsage(3)
	assert.Equal(t, 3, usage.Current)
	assert.Equal(t, 5, usage.Max)
	assert.Equal(t, 60, usage.Percent)

	full := sub.BranchUsage(5)
	assert.Equal(t, 100, full.Percent)

	// over-quota counts cap at 100 instead of overflowing the gauge
	over := sub.BranchUsage(7)
	assert.Equal(t, 7, over.Current)
	assert.Equal(t, 100, over.Percent)
}
