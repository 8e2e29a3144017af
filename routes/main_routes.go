package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// SetupRoutes configures all API routes by calling individual route
// registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	RegisterAuthRoutes(e, db)
	RegisterSubscriptionRoutes(e, db, hub)
	RegisterBranchRoutes(e, db, hub)
	RegisterStaffRoutes(e, db)
	RegisterAttendanceRoutes(e, db, hub)
	RegisterSalonRoutes(e, db)
	RegisterClientRoutes(e, db)
	RegisterAppointmentRoutes(e, db, hub)
	RegisterInventoryRoutes(e, db, hub)
	RegisterFinanceRoutes(e, db)
	RegisterWebSocketRoutes(e, hub)
}

// RegisterWebSocketRoutes exposes the dashboard notification stream
func RegisterWebSocketRoutes(e *echo.Echo, hub *websocket.Hub) {
	ws := e.Group("/ws")
	ws.Use(middleware.JWTMiddleware())
	ws.GET("/notifications", func(c echo.Context) error {
		ownerID, err := middleware.ExtractOwnerID(c)
		if err != nil {
			return err
		}
		return websocket.HandleWebSocket(c, hub, ownerID)
	})
}
