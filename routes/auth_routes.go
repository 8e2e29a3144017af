package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
)

// RegisterAuthRoutes sets up authentication and account routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client) {
	authController := controllers.NewAuthController(db)

	// Public authentication routes
	e.POST("/api/auth/signup", authController.Signup)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/remember-me/get", authController.GetRememberedCredentials)
	e.POST("/api/auth/remember-me/remove", authController.RemoveRememberedCredentials)

	// Authenticated account routes
	account := e.Group("/api/auth")
	account.Use(middleware.JWTMiddleware())
	account.Use(middleware.ActivityTracker(db))
	account.POST("/logout", authController.Logout)
	account.GET("/me", authController.GetMe)
	account.POST("/change-password", authController.ChangePassword)
}
