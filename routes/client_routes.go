package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// RegisterClientRoutes sets up customer book routes
func RegisterClientRoutes(e *echo.Echo, db *mongo.Client) {
	clientController := controllers.NewClientController(db)

	clients := e.Group("/api/clients")
	clients.Use(middleware.JWTMiddleware())
	clients.Use(middleware.ActivityTracker(db))
	clients.Use(middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	clients.Use(middleware.RequireActiveSubscription(db))
	clients.POST("", clientController.CreateClient)
	clients.GET("", clientController.GetClients)
	clients.GET("/:id", clientController.GetClient)
	clients.PUT("/:id", clientController.UpdateClient)
	clients.DELETE("/:id", clientController.DeleteClient)
}
