package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// RegisterStaffRoutes sets up staff roster routes. Receptionists can read
// the roster; only owners change it.
func RegisterStaffRoutes(e *echo.Echo, db *mongo.Client) {
	staffController := controllers.NewStaffController(db)

	staff := e.Group("/api/staff")
	staff.Use(middleware.JWTMiddleware())
	staff.Use(middleware.ActivityTracker(db))
	staff.Use(middleware.RequireActiveSubscription(db))
	staff.GET("", staffController.GetStaff,
		middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	staff.GET("/:id", staffController.GetStaffMember,
		middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	staff.POST("", staffController.CreateStaff,
		middleware.RequireUserType(models.UserTypeOwner))
	staff.PUT("/:id", staffController.UpdateStaff,
		middleware.RequireUserType(models.UserTypeOwner))
	staff.DELETE("/:id", staffController.DeleteStaff,
		middleware.RequireUserType(models.UserTypeOwner))
}
