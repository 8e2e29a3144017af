package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// RegisterAttendanceRoutes sets up attendance routes. Receptionists mark
// their own branch; owners can mark and read everywhere.
func RegisterAttendanceRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	attendanceController := controllers.NewAttendanceController(db, hub)

	attendance := e.Group("/api/attendance")
	attendance.Use(middleware.JWTMiddleware())
	attendance.Use(middleware.ActivityTracker(db))
	attendance.Use(middleware.RequireUserType(models.UserTypeOwner, models.UserTypeReceptionist))
	attendance.Use(middleware.RequireActiveSubscription(db))
	attendance.GET("", attendanceController.ListAttendance)
	attendance.POST("/mark", attendanceController.MarkAttendance)
	attendance.POST("/mark-bulk", attendanceController.MarkBulk)
	attendance.GET("/history/:staffId", attendanceController.GetStaffHistory)
}
