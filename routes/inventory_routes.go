package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// RegisterInventoryRoutes sets up stock tracking routes
func RegisterInventoryRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	inventoryController := controllers.NewInventoryController(db, hub)

	inventory := e.Group("/api/inventory")
	inventory.Use(middleware.JWTMiddleware())
	inventory.Use(middleware.ActivityTracker(db))
	inventory.Use(middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	inventory.Use(middleware.RequireActiveSubscription(db))
	inventory.POST("", inventoryController.CreateItem)
	inventory.GET("", inventoryController.GetItems)
	inventory.PUT("/:id", inventoryController.UpdateItem)
	inventory.POST("/:id/adjust", inventoryController.AdjustStock)
	inventory.DELETE("/:id", inventoryController.DeleteItem)
}
