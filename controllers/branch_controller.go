// controllers/branch_controller.go
package controllers

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/utils"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// BranchController handles branch management including quota enforcement
type BranchController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewBranchController creates a new branch controller
func NewBranchController(db *mongo.Client, hub *websocket.Hub) *BranchController {
	return &BranchController{DB: db, Hub: hub}
}

// CreateBranch gates branch creation on the owner's plan quota. The count
// and the insert run inside one session transaction so two concurrent
// requests cannot both pass the same under-quota count.
func (bc *BranchController) CreateBranch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.BranchRequest
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

	var subscription models.Subscription
	err = config.GetCollection(bc.DB, "subscriptions").
		FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&subscription)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Subscription not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load subscription",
		})
	}

	now := time.Now()
	branch := models.Branch{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Name:      utils.SanitizeInput(req.Name),
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}

	branchCollection := config.GetCollection(bc.DB, "branches")

	session, err := bc.DB.StartSession()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to start session",
		})
	}
	defer session.EndSession(ctx)

	var quotaData *models.QuotaExceededData
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		branchCount, countErr := branchCollection.CountDocuments(sessCtx, bson.M{"ownerId": ownerID})
		if countErr != nil {
			return nil, countErr
		}

		if !subscription.CanCreateBranch(int(branchCount)) {
			usage := subscription.BranchUsage(int(branchCount))
			quotaData = &models.QuotaExceededData{
				Current: usage.Current,
				Max:     usage.Max,
				Plan:    subscription.Plan,
			}
			return nil, nil
		}

		if _, insertErr := branchCollection.InsertOne(sessCtx, branch); insertErr != nil {
			return nil, insertErr
		}
		return nil, nil
	})
	if err != nil {
		log.Printf("Error creating branch: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create branch",
		})
	}

	if quotaData != nil {
		bc.Hub.NotifyOwner(ownerID, websocket.NotificationTypeQuotaExceeded,
			fmt.Sprintf("Branch limit reached: %d of %d on the %s plan", quotaData.Current, quotaData.Max, quotaData.Plan),
			quotaData)

		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: fmt.Sprintf("Branch limit reached (%d/%d). Upgrade your plan to add more branches.", quotaData.Current, quotaData.Max),
			Data:    quotaData,
		})
	}

	bc.Hub.NotifyOwner(ownerID, websocket.NotificationTypeBranchCreated,
		"Branch created: "+branch.Name, branch)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Branch created successfully",
		Data:    branch,
	})
}

// GetBranches lists the owner's branches
func (bc *BranchController) GetBranches(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	cursor, err := config.GetCollection(bc.DB, "branches").Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve branches",
		})
	}
	defer cursor.Close(ctx)

	branches := []models.Branch{}
	if err = cursor.All(ctx, &branches); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode branches",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Branches retrieved successfully",
		Data:    branches,
	})
}

// GetBranch retrieves a single branch scoped to the owner
func (bc *BranchController) GetBranch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, branchID, err := bc.ownerAndBranchID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var branch models.Branch
	err = config.GetCollection(bc.DB, "branches").
		FindOne(ctx, bson.M{"_id": branchID, "ownerId": ownerID}).Decode(&branch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Branch not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve branch",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Branch retrieved successfully",
		Data:    branch,
	})
}

// UpdateBranch updates a branch's details
func (bc *BranchController) UpdateBranch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, branchID, err := bc.ownerAndBranchID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var req models.BranchRequest
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

	update := bson.M{"$set": bson.M{
		"name":      utils.SanitizeInput(req.Name),
		"phone":     req.Phone,
		"address":   req.Address,
		"updatedAt": time.Now(),
	}}

	result, err := config.GetCollection(bc.DB, "branches").
		UpdateOne(ctx, bson.M{"_id": branchID, "ownerId": ownerID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update branch",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Branch not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Branch updated successfully",
	})
}

// DeleteBranch removes a branch. Attendance history and staff records are
// intentionally retained; only the branch document itself is removed.
func (bc *BranchController) DeleteBranch(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, branchID, err := bc.ownerAndBranchID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := config.GetCollection(bc.DB, "branches").
		DeleteOne(ctx, bson.M{"_id": branchID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete branch",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Branch not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Branch deleted successfully",
	})
}

// GetBranchQRCode renders a QR code PNG pointing at the branch's public
// booking page
func (bc *BranchController) GetBranchQRCode(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	branchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid branch ID format",
		})
	}

	var branch models.Branch
	err = config.GetCollection(bc.DB, "branches").
		FindOne(ctx, bson.M{"_id": branchID}).Decode(&branch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Branch not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve branch",
		})
	}

	bookingBaseURL := os.Getenv("BOOKING_BASE_URL")
	if bookingBaseURL == "" {
		bookingBaseURL = "https://book.salon.example"
	}
	bookingURL := fmt.Sprintf("%s/branches/%s", bookingBaseURL, branch.ID.Hex())

	qrCode, err := qr.Encode(bookingURL, qr.M, qr.Auto)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	qrCode, err = barcode.Scale(qrCode, 300, 300)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to scale QR code",
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrCode); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to encode QR code",
		})
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (bc *BranchController) ownerAndBranchID(c echo.Context) (primitive.ObjectID, primitive.ObjectID, error) {
	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid owner ID")
	}
	branchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid branch ID format")
	}
	return ownerID, branchID, nil
}
