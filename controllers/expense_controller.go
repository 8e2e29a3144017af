// controllers/expense_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/utils"
)

// ExpenseController records branch outgoings
type ExpenseController struct {
	DB *mongo.Client
}

// NewExpenseController creates a new expense controller
func NewExpenseController(db *mongo.Client) *ExpenseController {
	return &ExpenseController{DB: db}
}

// CreateExpense records an expense
func (ec *ExpenseController) CreateExpense(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid branch ID format",
		})
	}

	date, err := models.NormalizeAttendanceDate(req.Date, time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	now := time.Now()
	expense := models.Expense{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		BranchID:  branchID,
		Category:  req.Category,
		Amount:    req.Amount,
		Date:      date,
		Note:      utils.SanitizeInput(req.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := config.GetCollection(ec.DB, "expenses").InsertOne(ctx, expense); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record expense",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Expense recorded successfully",
		Data:    expense,
	})
}

// GetExpenses lists expenses with branch, category and date range filters
func (ec *ExpenseController) GetExpenses(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	filter := bson.M{"ownerId": ownerID}
	if branchIDHex := c.QueryParam("branchId"); branchIDHex != "" {
		branchID, err := primitive.ObjectIDFromHex(branchIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid branch ID format",
			})
		}
		filter["branchId"] = branchID
	}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}

	dateRange := bson.M{}
	if from := c.QueryParam("from"); from != "" {
		normalized, err := models.NormalizeAttendanceDate(from, time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		dateRange["$gte"] = normalized
	}
	if to := c.QueryParam("to"); to != "" {
		normalized, err := models.NormalizeAttendanceDate(to, time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		dateRange["$lte"] = normalized
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.GetCollection(ec.DB, "expenses").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve expenses",
		})
	}
	defer cursor.Close(ctx)

	expenses := []models.Expense{}
	if err = cursor.All(ctx, &expenses); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode expenses",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Expenses retrieved successfully",
		Data:    expenses,
	})
}

// DeleteExpense removes an expense record
func (ec *ExpenseController) DeleteExpense(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	expenseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid expense ID format",
		})
	}

	result, err := config.GetCollection(ec.DB, "expenses").
		DeleteOne(ctx, bson.M{"_id": expenseID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete expense",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Expense not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Expense deleted successfully",
	})
}
