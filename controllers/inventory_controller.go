// controllers/inventory_controller.go
package controllers

import (
	"context"
	"fmt"
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
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// InventoryController tracks branch stock levels
type InventoryController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewInventoryController creates a new inventory controller
func NewInventoryController(db *mongo.Client, hub *websocket.Hub) *InventoryController {
	return &InventoryController{DB: db, Hub: hub}
}

// CreateItem adds a stocked product
func (ic *InventoryController) CreateItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.InventoryItemRequest
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

	now := time.Now()
	item := models.InventoryItem{
		ID:                primitive.NewObjectID(),
		OwnerID:           ownerID,
		BranchID:          branchID,
		Name:              utils.SanitizeInput(req.Name),
		Brand:             utils.SanitizeInput(req.Brand),
		Unit:              utils.SanitizeInput(req.Unit),
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		CostPrice:         req.CostPrice,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := config.GetCollection(ic.DB, "inventory").InsertOne(ctx, item); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create inventory item",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Inventory item created successfully",
		Data:    item,
	})
}

// GetItems lists inventory, with ?branchId= and ?lowStock=true filters
func (ic *InventoryController) GetItems(c echo.Context) error {
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
	if c.QueryParam("lowStock") == "true" {
		filter["$expr"] = bson.M{"$lte": bson.A{"$quantity", "$lowStockThreshold"}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := config.GetCollection(ic.DB, "inventory").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve inventory",
		})
	}
	defer cursor.Close(ctx)

	items := []models.InventoryItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode inventory",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Inventory retrieved successfully",
		Data:    items,
	})
}

// UpdateItem updates an item's details
func (ic *InventoryController) UpdateItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid item ID format",
		})
	}

	var req models.InventoryItemRequest
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
		"name":              utils.SanitizeInput(req.Name),
		"brand":             utils.SanitizeInput(req.Brand),
		"unit":              utils.SanitizeInput(req.Unit),
		"quantity":          req.Quantity,
		"lowStockThreshold": req.LowStockThreshold,
		"costPrice":         req.CostPrice,
		"updatedAt":         time.Now(),
	}}

	result, err := config.GetCollection(ic.DB, "inventory").
		UpdateOne(ctx, bson.M{"_id": itemID, "ownerId": ownerID}, update)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update inventory item",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Inventory item not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Inventory item updated successfully",
	})
}

// AdjustStock applies a signed quantity delta. Stock cannot go negative;
// crossing the low-stock threshold pushes a notification to the owner.
func (ic *InventoryController) AdjustStock(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid item ID format",
		})
	}

	var req models.StockAdjustRequest
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

	// the quantity guard rides in the filter so concurrent decrements
	// cannot drive stock below zero
	filter := bson.M{"_id": itemID, "ownerId": ownerID}
	if req.Delta < 0 {
		filter["quantity"] = bson.M{"$gte": -req.Delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.InventoryItem
	err = config.GetCollection(ic.DB, "inventory").
		FindOneAndUpdate(ctx, filter, bson.M{
			"$inc": bson.M{"quantity": req.Delta},
			"$set": bson.M{"updatedAt": time.Now()},
		}, opts).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// distinguish a missing item from insufficient stock
			count, countErr := config.GetCollection(ic.DB, "inventory").
				CountDocuments(ctx, bson.M{"_id": itemID, "ownerId": ownerID})
			if countErr == nil && count > 0 {
				return c.JSON(http.StatusBadRequest, models.Response{
					Status:  http.StatusBadRequest,
					Message: "Insufficient stock for this adjustment",
				})
			}
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Inventory item not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to adjust stock",
		})
	}

	if item.Quantity <= item.LowStockThreshold {
		ic.Hub.NotifyOwner(ownerID, websocket.NotificationTypeLowStock,
			fmt.Sprintf("Low stock: %s (%d %s remaining)", item.Name, item.Quantity, item.Unit), item)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Stock adjusted successfully",
		Data:    item,
	})
}

// DeleteItem removes an inventory item
func (ic *InventoryController) DeleteItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid item ID format",
		})
	}

	result, err := config.GetCollection(ic.DB, "inventory").
		DeleteOne(ctx, bson.M{"_id": itemID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete inventory item",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Inventory item not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Inventory item deleted successfully",
	})
}
