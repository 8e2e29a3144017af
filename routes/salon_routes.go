package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// RegisterSalonRoutes sets up tenant profile routes
func RegisterSalonRoutes(e *echo.Echo, db *mongo.Client) {
	salonController := controllers.NewSalonController(db)

	salon := e.Group("/api/salon")
	salon.Use(middleware.JWTMiddleware())
	salon.Use(middleware.ActivityTracker(db))
	salon.Use(middleware.RequireUserType(models.UserTypeOwner))
	salon.GET("", salonController.GetSalon)
	salon.PUT("", salonController.UpdateSalon)
	salon.POST("/logo", salonController.UploadLogo)
}
