// models/client.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a salon customer record scoped to one branch
type Client struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID    primitive.ObjectID `json:"branchId" bson:"branchId"`
	Name        string             `json:"name" bson:"name"`
	Phone       string             `json:"phone" bson:"phone"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Gender      string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	VisitCount  int                `json:"visitCount" bson:"visitCount"`
	LastVisitAt *time.Time         `json:"lastVisitAt,omitempty" bson:"lastVisitAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ClientRequest is the body for creating or updating a client
type ClientRequest struct {
	BranchID string `json:"branchId,omitempty"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Notes    string `json:"notes,omitempty"`
}
