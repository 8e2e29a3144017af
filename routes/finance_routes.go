package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/controllers"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// RegisterFinanceRoutes sets up expense tracking and revenue reporting.
// Money stays owner-only.
func RegisterFinanceRoutes(e *echo.Echo, db *mongo.Client) {
	expenseController := controllers.NewExpenseController(db)
	reportController := controllers.NewReportController(db)

	expenses := e.Group("/api/expenses")
	expenses.Use(middleware.JWTMiddleware())
	expenses.Use(middleware.ActivityTracker(db))
	expenses.Use(middleware.RequireUserType(models.UserTypeOwner))
	expenses.Use(middleware.RequireActiveSubscription(db))
	expenses.POST("", expenseController.CreateExpense)
	expenses.GET("", expenseController.GetExpenses)
	expenses.DELETE("/:id", expenseController.DeleteExpense)

	reports := e.Group("/api/reports")
	reports.Use(middleware.JWTMiddleware())
	reports.Use(middleware.ActivityTracker(db))
	reports.Use(middleware.RequireUserType(models.UserTypeOwner))
	reports.Use(middleware.RequireActiveSubscription(db))
	reports.GET("/revenue", reportController.GetRevenueReport)
}
