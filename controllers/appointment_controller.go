// controllers/appointment_controller.go
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
	"github.com/udaykene/salon-mangement-sys-sub001/utils"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// AppointmentController manages bookings and their lifecycle
type AppointmentController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewAppointmentController creates a new appointment controller
func NewAppointmentController(db *mongo.Client, hub *websocket.Hub) *AppointmentController {
	return &AppointmentController{DB: db, Hub: hub}
}

// BookAppointment creates a scheduled booking. The service price is
// snapshotted onto the appointment so later catalog edits do not change
// what this booking is worth.
func (ac *AppointmentController) BookAppointment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.AppointmentRequest
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

	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid client ID format",
		})
	}
	staffID, err := primitive.ObjectIDFromHex(req.StaffID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid staff ID format",
		})
	}
	serviceID, err := primitive.ObjectIDFromHex(req.ServiceID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid service ID format",
		})
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "startsAt must be an RFC 3339 timestamp",
		})
	}

	var staff models.Staff
	err = config.GetCollection(ac.DB, "staff").
		FindOne(ctx, bson.M{"_id": staffID, "ownerId": ownerID}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Staff member not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve staff member",
		})
	}

	var service models.SalonService
	err = config.GetCollection(ac.DB, "services").
		FindOne(ctx, bson.M{"_id": serviceID, "ownerId": ownerID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Service not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve service",
		})
	}
	if !service.IsActive {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Service is not currently offered",
		})
	}

	clientCount, err := config.GetCollection(ac.DB, "clients").
		CountDocuments(ctx, bson.M{"_id": clientID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify client",
		})
	}
	if clientCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Client not found",
		})
	}

	bookingCode, err := utils.GenerateBookingCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate booking code",
		})
	}

	now := time.Now()
	appointment := models.Appointment{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		BranchID:    staff.BranchID,
		ClientID:    clientID,
		StaffID:     staffID,
		ServiceID:   serviceID,
		BookingCode: bookingCode,
		StartsAt:    startsAt,
		Price:       service.Price,
		Status:      models.AppointmentStatusScheduled,
		Notes:       utils.SanitizeInput(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := config.GetCollection(ac.DB, "appointments").InsertOne(ctx, appointment); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to book appointment",
		})
	}

	ac.Hub.NotifyOwner(ownerID, websocket.NotificationTypeAppointment,
		"Appointment booked: "+appointment.BookingCode, appointment)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Appointment booked successfully",
		Data:    appointment,
	})
}

// GetAppointments lists appointments with branch, staff, status and date
// range filters
func (ac *AppointmentController) GetAppointments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	filter := bson.M{"ownerId": ownerID}
	if branchIDHex := c.QueryParam("branchId"); branchIDHex != "" {
		branchID, err := primitive.ObjectIDFromHex(branchIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid branch ID format",
			})
		}
		filter["branchId"] = branchID
	}
	if staffIDHex := c.QueryParam("staffId"); staffIDHex != "" {
		staffID, err := primitive.ObjectIDFromHex(staffIDHex)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid staff ID format",
			})
		}
		filter["staffId"] = staffID
	}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	timeRange := bson.M{}
	if from := c.QueryParam("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "from must be an RFC 3339 timestamp",
			})
		}
		timeRange["$gte"] = parsed
	}
	if to := c.QueryParam("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "to must be an RFC 3339 timestamp",
			})
		}
		timeRange["$lte"] = parsed
	}
	if len(timeRange) > 0 {
		filter["startsAt"] = timeRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}})
	cursor, err := config.GetCollection(ac.DB, "appointments").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve appointments",
		})
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err = cursor.All(ctx, &appointments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode appointments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Appointments retrieved successfully",
		Data:    appointments,
	})
}

// GetAppointment retrieves one appointment
func (ac *AppointmentController) GetAppointment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid appointment ID format",
		})
	}

	var appointment models.Appointment
	err = config.GetCollection(ac.DB, "appointments").
		FindOne(ctx, bson.M{"_id": appointmentID, "ownerId": ownerID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Appointment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve appointment",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Appointment retrieved successfully",
		Data:    appointment,
	})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
// Scheduled bookings can be completed or cancelled; completed and
// cancelled are terminal. Completion stamps completedAt and bumps the
// client's visit counter.
func (ac *AppointmentController) UpdateAppointmentStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid appointment ID format",
		})
	}

	var req models.AppointmentStatusRequest
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

	var appointment models.Appointment
	err = config.GetCollection(ac.DB, "appointments").
		FindOne(ctx, bson.M{"_id": appointmentID, "ownerId": ownerID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Appointment not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve appointment",
		})
	}

	if appointment.Status != models.AppointmentStatusScheduled || req.Status == models.AppointmentStatusScheduled {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid status transition",
			Data: models.StatusTransitionData{
				Current:   appointment.Status,
				Requested: req.Status,
			},
		})
	}

	now := time.Now()
	setFields := bson.M{
		"status":    req.Status,
		"updatedAt": now,
	}
	if req.Status == models.AppointmentStatusCompleted {
		setFields["completedAt"] = now
	}

	_, err = config.GetCollection(ac.DB, "appointments").
		UpdateOne(ctx, bson.M{"_id": appointmentID}, bson.M{"$set": setFields})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update appointment",
		})
	}

	if req.Status == models.AppointmentStatusCompleted {
		_, err = config.GetCollection(ac.DB, "clients").
			UpdateOne(ctx, bson.M{"_id": appointment.ClientID}, bson.M{
				"$inc": bson.M{"visitCount": 1},
				"$set": bson.M{"lastVisitAt": now, "updatedAt": now},
			})
		if err != nil {
			c.Logger().Errorf("failed to bump visit count for client %s: %v", appointment.ClientID.Hex(), err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Appointment status updated successfully",
	})
}
