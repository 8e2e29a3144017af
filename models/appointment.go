// models/appointment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses
const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment books a client with a staff member for one service. Price is
// snapshotted from the service at booking time so later catalog edits do
// not rewrite history; completed appointments feed the revenue report.
type Appointment struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID    primitive.ObjectID `json:"branchId" bson:"branchId"`
	ClientID    primitive.ObjectID `json:"clientId" bson:"clientId"`
	StaffID     primitive.ObjectID `json:"staffId" bson:"staffId"`
	ServiceID   primitive.ObjectID `json:"serviceId" bson:"serviceId"`
	BookingCode string             `json:"bookingCode" bson:"bookingCode"`
	StartsAt    time.Time          `json:"startsAt" bson:"startsAt"`
	Price       float64            `json:"price" bson:"price"`
	Status      string             `json:"status" bson:"status"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AppointmentRequest is the body for booking an appointment
type AppointmentRequest struct {
	ClientID  string `json:"clientId" validate:"required"`
	StaffID   string `json:"staffId" validate:"required"`
	ServiceID string `json:"serviceId" validate:"required"`
	StartsAt  string `json:"startsAt" validate:"required"` // RFC 3339
	Notes     string `json:"notes,omitempty"`
}

// AppointmentStatusRequest changes an appointment's status
type AppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// StatusTransitionData reports a rejected lifecycle change
type StatusTransitionData struct {
	Current   string `json:"current"`
	Requested string `json:"requested"`
}
