package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// RegisterAppointmentRoutes sets up booking routes. Services are exposed
// here too since bookings are made against the catalog.
func RegisterAppointmentRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	appointmentController := controllers.NewAppointmentController(db, hub)
	serviceController := controllers.NewServiceController(db)

	services := e.Group("/api/services")
	services.Use(middleware.JWTMiddleware())
	services.Use(middleware.ActivityTracker(db))
	services.Use(middleware.RequireActiveSubscription(db))
	services.GET("", serviceController.GetServices,
		middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist, models.UserTypeStaff))
	services.POST("", serviceController.CreateService,
		middleware.RequireUserType(models.UserTypeOwner))
	services.PUT("/:id", serviceController.UpdateService,
		middleware.RequireUserType(models.UserTypeOwner))
	services.DELETE("/:id", serviceController.DeleteService,
		middleware.RequireUserType(models.UserTypeOwner))

	appointments := e.Group("/api/appointments")
	appointments.Use(middleware.JWTMiddleware())
	appointments.Use(middleware.ActivityTracker(db))
	appointments.Use(middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	appointments.Use(middleware.RequireActiveSubscription(db))
	appointments.POST("", appointmentController.BookAppointment)
	appointments.GET("", appointmentController.GetAppointments)
	appointments.GET("/:id", appointmentController.GetAppointment)
	appointments.PUT("/:id/status", appointmentController.UpdateAppointmentStatus)
}
