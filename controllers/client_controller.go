// controllers/client_controller.go
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

// ClientController manages the customer book
type ClientController struct {
	DB *mongo.Client
}

// NewClientController creates a new client controller
func NewClientController(db *mongo.Client) *ClientController {
	return &ClientController{DB: db}
}

// resolveBranch picks the branch scope for a write: receptionists are
// pinned to their token branch, owners name one in the request body.
func resolveBranch(c echo.Context, requested string) (primitive.ObjectID, error) {
	if branchID := middleware.ExtractBranchID(c); !branchID.IsZero() {
		return branchID, nil
	}
	return primitive.ObjectIDFromHex(requested)
}

// CreateClient adds a customer record
func (cc *ClientController) CreateClient(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.ClientRequest
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

	branchID, err := resolveBranch(c, req.BranchID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "A valid branchId is required",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	now := time.Now()
	client := models.Client{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		BranchID:  branchID,
		Name:      utils.SanitizeInput(req.Name),
		Phone:     phone,
		Email:     req.Email,
		Gender:    req.Gender,
		Notes:     utils.SanitizeInput(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := config.GetCollection(cc.DB, "clients").InsertOne(ctx, client); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create client",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Client created successfully",
		Data:    client,
	})
}

// GetClients lists clients with optional search and branch filter
func (cc *ClientController) GetClients(c echo.Context) error {
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
	if branchID := middleware.ExtractBranchID(c); !branchID.IsZero() {
		filter["branchId"] = branchID
	} else if branchIDHex := c.QueryParam("branchId"); branchIDHex != "" {
		branchID, err := primitive.ObjectIDFromHex(branchIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid branch ID format",
			})
		}
		filter["branchId"] = branchID
	}

	if search := c.QueryParam("search"); search != "" {
		search = utils.SanitizeInput(search)
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"phone": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := config.GetCollection(cc.DB, "clients").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve clients",
		})
	}
	defer cursor.Close(ctx)

	clients := []models.Client{}
	if err = cursor.All(ctx, &clients); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode clients",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Clients retrieved successfully",
		Data:    clients,
	})
}

// GetClient retrieves one client
func (cc *ClientController) GetClient(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID format",
		})
	}

	var client models.Client
	err = config.GetCollection(cc.DB, "clients").
		FindOne(ctx, bson.M{"_id": clientID, "ownerId": ownerID}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Client not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve client",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client retrieved successfully",
		Data:    client,
	})
}

// UpdateClient updates a client's details
func (cc *ClientController) UpdateClient(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID format",
		})
	}

	var req models.ClientRequest
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

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	update := bson.M{"$set": bson.M{
		"name":      utils.SanitizeInput(req.Name),
		"phone":     phone,
		"email":     req.Email,
		"gender":    req.Gender,
		"notes":     utils.SanitizeInput(req.Notes),
		"updatedAt": time.Now(),
	}}

	result, err := config.GetCollection(cc.DB, "clients").
		UpdateOne(ctx, bson.M{"_id": clientID, "ownerId": ownerID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update client",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client updated successfully",
	})
}

// DeleteClient removes a client record
func (cc *ClientController) DeleteClient(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID format",
		})
	}

	result, err := config.GetCollection(cc.DB, "clients").
		DeleteOne(ctx, bson.M{"_id": clientID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete client",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Client deleted successfully",
	})
}
