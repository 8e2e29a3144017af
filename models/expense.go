// models/expense.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expense is a dated outgoing for one branch
type Expense struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BranchID  primitive.ObjectID `json:"branchId" bson:"branchId"`
	Category  string             `json:"category" bson:"category"`
	Amount    float64            `json:"amount" bson:"amount"`
	Date      string             `json:"date" bson:"date"` // YYYY-MM-DD
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ExpenseRequest is the body for recording an expense
type ExpenseRequest struct {
	BranchID string  `json:"branchId" validate:"required"`
	Category string  `json:"category" validate:"required,oneof=rent salaries supplies utilities marketing other"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// RevenueReportRow is one aggregation bucket of the revenue report
type RevenueReportRow struct {
	Period   string  `json:"period" bson:"_id"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
	Expenses float64 `json:"expenses" bson:"expenses"`
	Net      float64 `json:"net" bson:"net"`
}

// RevenueReport is the payload of the revenue report endpoint
type RevenueReport struct {
	From          string             `json:"from"`
	To            string             `json:"to"`
	GroupBy       string             `json:"groupBy"`
	Rows          []RevenueReportRow `json:"rows"`
	TotalRevenue  float64            `json:"totalRevenue"`
	TotalExpenses float64            `json:"totalExpenses"`
	Net           float64            `json:"net"`
}
