// models/inventory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem is a stocked product at one branch
type InventoryItem struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID           primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID          primitive.ObjectID `json:"branchId" bson:"branchId"`
	Name              string             `json:"name" bson:"name"`
	Brand             string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Unit              string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Quantity          int                `json:"quantity" bson:"quantity"`
	LowStockThreshold int                `json:"lowStockThreshold" bson:"lowStockThreshold"`
	CostPrice         float64            `json:"costPrice" bson:"costPrice"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// InventoryItemRequest is the body for creating or updating an item
type InventoryItemRequest struct {
	BranchID          string  `json:"branchId" validate:"required"`
	Name              string  `json:"name" validate:"required,min=2"`
	Brand             string  `json:"brand,omitempty"`
	Unit              string  `json:"unit,omitempty"`
	Quantity          int     `json:"quantity" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	CostPrice         float64 `json:"costPrice" validate:"gte=0"`
}

// StockAdjustRequest changes an item's quantity by a signed delta
type StockAdjustRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason,omitempty"`
}
