// models/subscription.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription statuses
const (
	SubscriptionStatusTrial   = "trial"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Subscription records the plan tier of one salon owner. Exactly one
// subscription exists per owner; it is created at signup and only ever
// mutated by the upgrade operation or the trial-expiry recomputation.
type Subscription struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	Plan        PlanKey            `json:"plan" bson:"plan"`
	ActivatedAt time.Time          `json:"activatedAt" bson:"activatedAt"`
	TrialEndsAt *time.Time         `json:"trialEndsAt,omitempty" bson:"trialEndsAt,omitempty"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewTrialSubscription builds the default subscription created at owner
// signup: demo plan with the catalog's trial window
func NewTrialSubscription(ownerID primitive.ObjectID, now time.Time) Subscription {
	plan := planCatalog[PlanDemo]
	trialEnd := now.AddDate(0, 0, plan.TrialDays)
	return Subscription{
		OwnerID:     ownerID,
		Plan:        PlanDemo,
		ActivatedAt: now,
		TrialEndsAt: &trialEnd,
		Status:      SubscriptionStatusTrial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTrialExpired reports whether the trial window has lapsed. Only the
// trial-eligible tier can expire; upgrading out of it clears expiry
// regardless of the stored trial date.
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	if s.TrialEndsAt == nil {
		return false
	}
	plan, ok := planCatalog[s.Plan]
	if !ok || plan.TrialDays == 0 {
		return false
	}
	return now.After(*s.TrialEndsAt)
}

// BranchUsage reports quota consumption for the subscription's plan
func (s *Subscription) BranchUsage(branchCount int) BranchUsage {
	plan, ok := planCatalog[s.Plan]
	if !ok {
		return BranchUsage{Current: branchCount}
	}
	return UsageForPlan(plan, branchCount)
}

// CanCreateBranch reports whether one more branch fits under the plan's
// limit. Existing over-quota branches are grandfathered: they never block
// reads, only new creation.
func (s *Subscription) CanCreateBranch(branchCount int) bool {
	plan, ok := planCatalog[s.Plan]
	if !ok {
		return false
	}
	return branchCount < plan.MaxBranches
}

// AllowedUpgradeTargets returns every plan key strictly after the current
// plan in the fixed order. Premium gets an empty slice; downgrades are
// never offered.
func (s *Subscription) AllowedUpgradeTargets() []PlanKey {
	rank := PlanRank(s.Plan)
	if rank < 0 {
		return []PlanKey{}
	}
	targets := make([]PlanKey, 0, len(planOrder))
	for _, key := range planOrder[rank+1:] {
		targets = append(targets, key)
	}
	return targets
}

// CanUpgradeTo reports whether target is a valid upgrade from the current
// plan. Same or lower tiers are invalid transitions, never silent no-ops.
func (s *Subscription) CanUpgradeTo(target PlanKey) bool {
	targetRank := PlanRank(target)
	if targetRank < 0 {
		return false
	}
	return targetRank > PlanRank(s.Plan)
}

// UpgradePlanRequest is the body for the plan upgrade endpoint
type UpgradePlanRequest struct {
	NewPlan string `json:"newPlan" validate:"required,oneof=demo basic standard premium"`
}

// CurrentSubscriptionData is the payload returned by the current
// subscription endpoint
type CurrentSubscriptionData struct {
	Subscription       Subscription `json:"subscription"`
	CurrentBranchCount int          `json:"currentBranchCount"`
	BranchUsage        BranchUsage  `json:"branchUsage"`
	HasPlan            bool         `json:"hasPlan"`
	IsTrialExpired     bool         `json:"isTrialExpired"`
	UpgradeTargets     []PlanKey    `json:"upgradeTargets"`
}

// InvalidTransitionData carries the rejected upgrade details for client display
type InvalidTransitionData struct {
	Current   PlanKey `json:"current"`
	Requested PlanKey `json:"requested"`
}
