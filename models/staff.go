// models/staff.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff statuses
const (
	StaffStatusActive   = "active"
	StaffStatusOnLeave  = "on-leave"
	StaffStatusInactive = "inactive"
)

// Staff is an employee scoped to one branch. The phone number doubles as
// the unique login key for staff accounts.
type Staff struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID        primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID       primitive.ObjectID `json:"branchId" bson:"branchId"`
	Name           string             `json:"name" bson:"name"`
	Phone          string             `json:"phone" bson:"phone"`
	Role           string             `json:"role" bson:"role"`
	Specialization []string           `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Salary         float64            `json:"salary" bson:"salary"`
	Commission     float64            `json:"commission" bson:"commission"`
	WorkingDays    []string           `json:"workingDays" bson:"workingDays"`
	WorkingHours   WorkingHours       `json:"workingHours" bson:"workingHours"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type WorkingHours struct {
	Start string `json:"start" bson:"start"` // "09:00"
	End   string `json:"end" bson:"end"`     // "18:00"
}

// StaffRequest is the body for creating or updating a staff member
type StaffRequest struct {
	BranchID       string       `json:"branchId" validate:"required"`
	Name           string       `json:"name" validate:"required,min=2"`
	Phone          string       `json:"phone" validate:"required"`
	Password       string       `json:"password,omitempty" validate:"omitempty,min=8"`
	Role           string       `json:"role" validate:"required,oneof=stylist beautician receptionist manager"`
	Specialization []string     `json:"specialization,omitempty"`
	Salary         float64      `json:"salary" validate:"gte=0"`
	Commission     float64      `json:"commission" validate:"gte=0,lte=100"`
	WorkingDays    []string     `json:"workingDays" validate:"omitempty,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	WorkingHours   WorkingHours `json:"workingHours"`
	Status         string       `json:"status,omitempty" validate:"omitempty,oneof=active on-leave inactive"`
}
