// models/branch.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Branch is one physical salon location belonging to an owner. Branches
// live in their own collection (not embedded in the salon document) so the
// quota check can count and insert inside one transaction.
type Branch struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   Address            `json:"address" bson:"address"`
	Status    string             `json:"status" bson:"status"` // "active", "inactive"
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BranchRequest is the body for creating or updating a branch
type BranchRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// QuotaExceededData carries the rejected creation details so the dashboard
// can prompt an upgrade
type QuotaExceededData struct {
	Current int     `json:"current"`
	Max     int     `json:"max"`
	Plan    PlanKey `json:"plan"`
}
