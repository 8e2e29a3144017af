// models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SalonService is a bookable treatment offered at a branch
type SalonService struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID         primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID        primitive.ObjectID `json:"branchId" bson:"branchId"`
	Name            string             `json:"name" bson:"name"`
	Category        string             `json:"category,omitempty" bson:"category,omitempty"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	Price           float64            `json:"price" bson:"price"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SalonServiceRequest is the body for creating or updating a service
type SalonServiceRequest struct {
	BranchID        string  `json:"branchId" validate:"required"`
	Name            string  `json:"name" validate:"required,min=2"`
	Category        string  `json:"category,omitempty"`
	DurationMinutes int     `json:"durationMinutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	IsActive        *bool   `json:"isActive,omitempty"`
}
