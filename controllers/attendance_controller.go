// controllers/attendance_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// AttendanceController records and reads daily staff attendance. Marking
// is done by the branch receptionist; owners can read across branches.
type AttendanceController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewAttendanceController creates a new attendance controller
func NewAttendanceController(db *mongo.Client, hub *websocket.Hub) *AttendanceController {
	return &AttendanceController{DB: db, Hub: hub}
}

// ListAttendance returns the branch roster joined with the day's marks.
// Staff without a record for the date appear as "unmarked". Accepts an
// optional ?date=YYYY-MM-DD, defaulting to today. Receptionists see their
// own branch and are excluded from the list; owners pass ?branchId=.
func (ac *AttendanceController) ListAttendance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	date, err := models.NormalizeAttendanceDate(c.QueryParam("date"), time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	branchID := middleware.ExtractBranchID(c)
	callerStaffID := middleware.ExtractStaffID(c)
	if branchID.IsZero() {
		// owner: branch must be named explicitly
		branchID, err = primitive.ObjectIDFromHex(c.QueryParam("branchId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "branchId query parameter is required",
			})
		}
	}

	staffCursor, err := config.GetCollection(ac.DB, "staff").
		Find(ctx, bson.M{"ownerId": ownerID, "branchId": branchID, "status": models.StaffStatusActive})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve staff roster",
		})
	}
	defer staffCursor.Close(ctx)

	staff := []models.Staff{}
	if err = staffCursor.All(ctx, &staff); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode staff roster",
		})
	}

	recordCursor, err := config.GetCollection(ac.DB, "attendance").
		Find(ctx, bson.M{"branchId": branchID, "date": date})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve attendance records",
		})
	}
	defer recordCursor.Close(ctx)

	records := []models.AttendanceRecord{}
	if err = recordCursor.All(ctx, &records); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode attendance records",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Attendance retrieved successfully",
		Data: map[string]interface{}{
			"date":       date,
			"branchId":   branchID,
			"attendance": models.MergeAttendance(staff, records, callerStaffID),
		},
	})
}

// MarkAttendance upserts one staff member's mark for a date. Re-marking
// the same (staff, date) pair overwrites the previous status.
func (ac *AttendanceController) MarkAttendance(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.MarkAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	date, err := models.NormalizeAttendanceDate(req.Date, time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	record, status, message := ac.markOne(c, ctx, req.StaffID, date, req.Status)
	if record == nil {
		return c.JSON(status, models.Response{Status: status, Message: message})
	}

	ownerID, _ := middleware.ExtractOwnerID(c)
	ac.Hub.NotifyOwner(ownerID, websocket.NotificationTypeAttendanceMarked,
		"Attendance marked: "+record.Status+" on "+record.Date, record)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Attendance marked successfully",
		Data:    record,
	})
}

// MarkBulk applies several marks for one date. Each entry succeeds or
// fails on its own; the batch never aborts part-way.
func (ac *AttendanceController) MarkBulk(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var req models.BulkMarkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	date, err := models.NormalizeAttendanceDate(req.Date, time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	results := make([]models.BulkMarkResult, 0, len(req.Records))
	for _, entry := range req.Records {
		record, _, message := ac.markOne(c, ctx, entry.StaffID, date, entry.Status)
		if record == nil {
			results = append(results, models.BulkMarkResult{
				StaffID: entry.StaffID,
				OK:      false,
				Error:   message,
			})
			continue
		}
		results = append(results, models.BulkMarkResult{
			StaffID: entry.StaffID,
			OK:      true,
			Record:  record,
		})
	}

	ownerID, _ := middleware.ExtractOwnerID(c)
	ac.Hub.NotifyOwner(ownerID, websocket.NotificationTypeAttendanceMarked,
		"Bulk attendance marked for "+date, map[string]interface{}{"date": date, "count": len(results)})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Bulk attendance processed",
		Data: map[string]interface{}{
			"date":    date,
			"results": results,
		},
	})
}

// GetStaffHistory returns one staff member's attendance records, most
// recent first, optionally bounded by ?from= and ?to=.
func (ac *AttendanceController) GetStaffHistory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	staffID, err := primitive.ObjectIDFromHex(c.Param("staffId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid staff ID format",
		})
	}

	// scope check through the staff record
	staffCount, err := config.GetCollection(ac.DB, "staff").
		CountDocuments(ctx, bson.M{"_id": staffID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify staff member",
		})
	}
	if staffCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Staff member not found",
		})
	}

	filter := bson.M{"staffId": staffID}
	dateRange := bson.M{}
	if from := c.QueryParam("from"); from != "" {
		normalized, err := models.NormalizeAttendanceDate(from, time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		dateRange["$gte"] = normalized
	}
	if to := c.QueryParam("to"); to != "" {
		normalized, err := models.NormalizeAttendanceDate(to, time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}
		dateRange["$lte"] = normalized
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := config.GetCollection(ac.DB, "attendance").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve attendance history",
		})
	}
	defer cursor.Close(ctx)

	records := []models.AttendanceRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode attendance history",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Attendance history retrieved successfully",
		Data:    records,
	})
}

// markOne validates and upserts a single mark. On failure it returns a
// nil record plus the HTTP status and message to report.
func (ac *AttendanceController) markOne(c echo.Context, ctx context.Context, staffIDHex, date, status string) (*models.AttendanceRecord, int, string) {
	staffID, err := primitive.ObjectIDFromHex(staffIDHex)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid staff ID format"
	}

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid owner ID"
	}

	var target models.Staff
	err = config.GetCollection(ac.DB, "staff").
		FindOne(ctx, bson.M{"_id": staffID, "ownerId": ownerID}).Decode(&target)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, http.StatusNotFound, "Staff member not found"
		}
		return nil, http.StatusInternalServerError, "Failed to retrieve staff member"
	}

	callerStaffID := middleware.ExtractStaffID(c)
	callerBranchID := middleware.ExtractBranchID(c)
	// owners carry no branch scope and may mark anyone but themselves
	if !callerBranchID.IsZero() || !callerStaffID.IsZero() {
		effectiveBranch := callerBranchID
		if effectiveBranch.IsZero() {
			effectiveBranch = target.BranchID
		}
		if err := models.AttendanceMarkable(target, callerStaffID, effectiveBranch); err != nil {
			return nil, http.StatusForbidden, err.Error()
		}
	}

	markedBy := callerStaffID
	if markedBy.IsZero() {
		markedBy = ownerID
	}

	now := time.Now()
	filter := bson.M{"staffId": staffID, "date": date}
	update := bson.M{
		"$set": bson.M{
			"branchId":  target.BranchID,
			"status":    status,
			"markedBy":  markedBy,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"staffId":   staffID,
			"date":      date,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var record models.AttendanceRecord
	err = config.GetCollection(ac.DB, "attendance").
		FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err != nil {
		return nil, http.StatusInternalServerError, "Failed to mark attendance"
	}

	return &record, http.StatusOK, ""
}
