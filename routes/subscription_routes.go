package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// RegisterSubscriptionRoutes sets up plan catalog and subscription routes
func RegisterSubscriptionRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	subscriptionController := controllers.NewSubscriptionController(db, hub)

	// The catalog is public so the pricing page needs no login
	e.GET("/api/plans", subscriptionController.GetPlans)

	subscriptions := e.Group("/api/subscriptions")
	subscriptions.Use(middleware.JWTMiddleware())
	subscriptions.Use(middleware.ActivityTracker(db))
	subscriptions.Use(middleware.RequireUserType(models.UserTypeOwner))
	subscriptions.GET("/current", subscriptionController.GetCurrentSubscription)
	// upgrade stays reachable after trial expiry; it is the way out
	subscriptions.POST("/upgrade", subscriptionController.UpgradePlan)
}
