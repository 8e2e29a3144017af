package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// RegisterBranchRoutes sets up branch management routes
func RegisterBranchRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	branchController := controllers.NewBranchController(db, hub)

	// QR codes are scanned by walk-in clients, no login involved
	e.GET("/api/branches/:id/qrcode", branchController.GetBranchQRCode)

	branches := e.Group("/api/branches")
	branches.Use(middleware.JWTMiddleware())
	branches.Use(middleware.ActivityTracker(db))
	branches.Use(middleware.RequireUserType(models.UserTypeOwner))
	branches.Use(middleware.RequireActiveSubscription(db))
	branches.POST("", branchController.CreateBranch)
	branches.GET("", branchController.GetBranches)
	branches.GET("/:id", branchController.GetBranch)
	branches.PUT("/:id", branchController.UpdateBranch)
	branches.DELETE("/:id", branchController.DeleteBranch)
}
