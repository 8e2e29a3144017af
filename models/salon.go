// models/salon.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Salon is the tenant profile owned by one owner account
type Salon struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID      primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	Name         string             `json:"name" bson:"name"`
	ContactInfo  ContactInfo        `json:"contactInfo" bson:"contactInfo"`
	LogoURL      string             `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ContactInfo struct {
	Phone   string  `json:"phone" bson:"phone"`
	Email   string  `json:"email,omitempty" bson:"email,omitempty"`
	Website string  `json:"website,omitempty" bson:"website,omitempty"`
	Address Address `json:"address" bson:"address"`
}

type Address struct {
	Street string  `json:"street,omitempty" bson:"street,omitempty"`
	City   string  `json:"city" bson:"city"`
	State  string  `json:"state,omitempty" bson:"state,omitempty"`
	Lat    float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng    float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

// UpdateSalonRequest is the body for salon profile updates
type UpdateSalonRequest struct {
	Name        string       `json:"name,omitempty"`
	ContactInfo *ContactInfo `json:"contactInfo,omitempty"`
}
