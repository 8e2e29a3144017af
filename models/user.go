// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserTypeOwner        = "owner"
	UserTypeReceptionist = "receptionist"
	UserTypeStaff        = "staff"
	UserTypeAdmin        = "admin"
)

// User is a login account. Owners sign in with email; staff and
// receptionists sign in with the phone number of their staff record.
type User struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string              `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Password       string              `json:"-" bson:"password"`
	FullName       string              `json:"fullName" bson:"fullName"`
	UserType       string              `json:"userType" bson:"userType"`
	OwnerID        *primitive.ObjectID `json:"ownerId,omitempty" bson:"ownerId,omitempty"`
	StaffID        *primitive.ObjectID `json:"staffId,omitempty" bson:"staffId,omitempty"`
	BranchID       *primitive.ObjectID `json:"branchId,omitempty" bson:"branchId,omitempty"`
	SalonID        *primitive.ObjectID `json:"salonId,omitempty" bson:"salonId,omitempty"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	LastActivityAt time.Time           `json:"lastActivityAt" bson:"lastActivityAt"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest accepts either an owner email or a staff phone
type LoginRequest struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// ChangePasswordRequest is the body for the password change endpoint
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// Response is the uniform envelope returned by every endpoint
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
