// controllers/report_controller.go
package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// ReportController aggregates revenue and expenses for owners
type ReportController struct {
	DB *mongo.Client
}

// NewReportController creates a new report controller
func NewReportController(db *mongo.Client) *ReportController {
	return &ReportController{DB: db}
}

type aggregateRow struct {
	Period string  `bson:"_id"`
	Total  float64 `bson:"total"`
}

// GetRevenueReport sums completed-appointment revenue against expenses
// over a date range, bucketed by day or month. Only completed
// appointments count; scheduled and cancelled bookings contribute
// nothing.
func (rc *ReportController) GetRevenueReport(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	groupBy := c.QueryParam("groupBy")
	if groupBy == "" {
		groupBy = "day"
	}
	if groupBy != "day" && groupBy != "month" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "groupBy must be day or month",
		})
	}

	now := time.Now()
	to, err := models.NormalizeAttendanceDate(c.QueryParam("to"), now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}
	from := c.QueryParam("from")
	if from == "" {
		from = now.AddDate(0, -1, 0).Format(models.AttendanceDateLayout)
	} else {
		from, err = models.NormalizeAttendanceDate(from, now)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
	}

	fromTime, _ := time.Parse(models.AttendanceDateLayout, from)
	toTime, _ := time.Parse(models.AttendanceDateLayout, to)
	toTime = toTime.AddDate(0, 0, 1) // exclusive upper bound

	matchAppointments := bson.M{
		"ownerId":     ownerID,
		"status":      models.AppointmentStatusCompleted,
		"completedAt": bson.M{"$gte": fromTime, "$lt": toTime},
	}
	matchExpenses := bson.M{
		"ownerId": ownerID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}
	if branchIDHex := c.QueryParam("branchId"); branchIDHex != "" {
		branchID, err := primitive.ObjectIDFromHex(branchIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid branch ID format",
			})
		}
		matchAppointments["branchId"] = branchID
		matchExpenses["branchId"] = branchID
	}

	dateFormat := "%Y-%m-%d"
	periodLen := 10
	if groupBy == "month" {
		dateFormat = "%Y-%m"
		periodLen = 7
	}

	revenuePipeline := mongo.Pipeline{
		{{Key: "$match", Value: matchAppointments}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": dateFormat, "date": "$completedAt"}},
			"total": bson.M{"$sum": "$price"},
		}}},
	}

	// expense dates are stored as YYYY-MM-DD strings, so the month bucket
	// falls out of a substring
	expensePipeline := mongo.Pipeline{
		{{Key: "$match", Value: matchExpenses}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$substrBytes": bson.A{"$date", 0, periodLen}},
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	revenueRows, err := rc.runAggregate(ctx, "appointments", revenuePipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to aggregate revenue",
		})
	}
	expenseRows, err := rc.runAggregate(ctx, "expenses", expensePipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to aggregate expenses",
		})
	}

	report := buildRevenueReport(from, to, groupBy, revenueRows, expenseRows)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Revenue report generated successfully",
		Data:    report,
	})
}

func (rc *ReportController) runAggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]aggregateRow, error) {
	cursor, err := config.GetCollection(rc.DB, collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []aggregateRow{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func buildRevenueReport(from, to, groupBy string, revenue, expenses []aggregateRow) models.RevenueReport {
	byPeriod := map[string]*models.RevenueReportRow{}
	periodRow := func(period string) *models.RevenueReportRow {
		row, ok := byPeriod[period]
		if !ok {
			row = &models.RevenueReportRow{Period: period}
			byPeriod[period] = row
		}
		return row
	}

	for _, r := range revenue {
		periodRow(r.Period).Revenue = r.Total
	}
	for _, e := range expenses {
		periodRow(e.Period).Expenses = e.Total
	}

	report := models.RevenueReport{
		From:    from,
		To:      to,
		GroupBy: groupBy,
		Rows:    make([]models.RevenueReportRow, 0, len(byPeriod)),
	}
	for _, row := range byPeriod {
		row.Net = row.Revenue - row.Expenses
		report.TotalRevenue += row.Revenue
		report.TotalExpenses += row.Expenses
		report.Rows = append(report.Rows, *row)
	}
	report.Net = report.TotalRevenue - report.TotalExpenses

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].Period < report.Rows[j].Period
	})
	return report
}
