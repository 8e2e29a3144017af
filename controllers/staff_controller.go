// controllers/staff_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/utils"
)

// StaffController manages a branch's staff roster
type StaffController struct {
	DB *mongo.Client
}

// NewStaffController creates a new staff controller
func NewStaffController(db *mongo.Client) *StaffController {
	return &StaffController{DB: db}
}

// CreateStaff adds a staff member to a branch. When a password is
// supplied, a login account is created alongside so the staff member can
// sign in with their phone number.
func (sc *StaffController) CreateStaff(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.StaffRequest
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

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid branch ID format",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if req.WorkingHours.Start != "" && !utils.ValidWorkingTime(req.WorkingHours.Start) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Working hours start must be in HH:MM format",
		})
	}
	if req.WorkingHours.End != "" && !utils.ValidWorkingTime(req.WorkingHours.End) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Working hours end must be in HH:MM format",
		})
	}

	// branch must belong to the calling owner
	branchCount, err := config.GetCollection(sc.DB, "branches").
		CountDocuments(ctx, bson.M{"_id": branchID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to verify branch",
		})
	}
	if branchCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Branch not found",
		})
	}

	staffCollection := config.GetCollection(sc.DB, "staff")
	existing, err := staffCollection.CountDocuments(ctx, bson.M{"phone": phone})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check phone number",
		})
	}
	if existing > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A staff member with this phone number already exists",
		})
	}

	status := req.Status
	if status == "" {
		status = models.StaffStatusActive
	}

	now := time.Now()
	staff := models.Staff{
		ID:             primitive.NewObjectID(),
		OwnerID:        ownerID,
		BranchID:       branchID,
		Name:           utils.SanitizeInput(req.Name),
		Phone:          phone,
		Role:           req.Role,
		Specialization: utils.SanitizeStringArray(req.Specialization),
		Salary:         req.Salary,
		Commission:     req.Commission,
		WorkingDays:    req.WorkingDays,
		WorkingHours:   req.WorkingHours,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := staffCollection.InsertOne(ctx, staff); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A staff member with this phone number already exists",
			})
		}
		log.Printf("Error creating staff: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create staff member",
		})
	}

	if req.Password != "" {
		if err := sc.createStaffLogin(ctx, staff, req.Password); err != nil {
			log.Printf("Error creating staff login for %s: %v", staff.ID.Hex(), err)
		}
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Staff member created successfully",
		Data:    staff,
	})
}

func (sc *StaffController) createStaffLogin(ctx context.Context, staff models.Staff, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	userType := models.UserTypeStaff
	if staff.Role == "receptionist" {
		userType = models.UserTypeReceptionist
	}

	now := time.Now()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Phone:          staff.Phone,
		Password:       hashed,
		FullName:       staff.Name,
		UserType:       userType,
		OwnerID:        &staff.OwnerID,
		StaffID:        &staff.ID,
		BranchID:       &staff.BranchID,
		IsActive:       true,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = config.GetCollection(sc.DB, "users").InsertOne(ctx, user)
	return err
}

// GetStaff lists staff, optionally filtered by branch via ?branchId=
func (sc *StaffController) GetStaff(c echo.Context) error {
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
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := config.GetCollection(sc.DB, "staff").Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve staff",
		})
	}
	defer cursor.Close(ctx)

	staff := []models.Staff{}
	if err = cursor.All(ctx, &staff); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode staff",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Staff retrieved successfully",
		Data:    staff,
	})
}

// GetStaffMember retrieves a single staff member
func (sc *StaffController) GetStaffMember(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, staffID, err := sc.ownerAndStaffID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var staff models.Staff
	err = config.GetCollection(sc.DB, "staff").
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

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Staff member retrieved successfully",
		Data:    staff,
	})
}

// UpdateStaff updates a staff member's details
func (sc *StaffController) UpdateStaff(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, staffID, err := sc.ownerAndStaffID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var req models.StaffRequest
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

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid branch ID format",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	setFields := bson.M{
		"branchId":       branchID,
		"name":           utils.SanitizeInput(req.Name),
		"phone":          phone,
		"role":           req.Role,
		"specialization": utils.SanitizeStringArray(req.Specialization),
		"salary":         req.Salary,
		"commission":     req.Commission,
		"workingDays":    req.WorkingDays,
		"workingHours":   req.WorkingHours,
		"updatedAt":      time.Now(),
	}
	if req.Status != "" {
		setFields["status"] = req.Status
	}

	result, err := config.GetCollection(sc.DB, "staff").
		UpdateOne(ctx, bson.M{"_id": staffID, "ownerId": ownerID}, bson.M{"$set": setFields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A staff member with this phone number already exists",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update staff member",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Staff member not found",
		})
	}

	// keep the login account's phone and branch in sync
	_, err = config.GetCollection(sc.DB, "users").
		UpdateOne(ctx, bson.M{"staffId": staffID}, bson.M{"$set": bson.M{
			"phone":     phone,
			"branchId":  branchID,
			"updatedAt": time.Now(),
		}})
	if err != nil {
		log.Printf("Error syncing staff login for %s: %v", staffID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Staff member updated successfully",
	})
}

// DeleteStaff removes a staff member and their login account. Attendance
// history is retained.
func (sc *StaffController) DeleteStaff(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, staffID, err := sc.ownerAndStaffID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := config.GetCollection(sc.DB, "staff").
		DeleteOne(ctx, bson.M{"_id": staffID, "ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete staff member",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Staff member not found",
		})
	}

	if _, err := config.GetCollection(sc.DB, "users").DeleteOne(ctx, bson.M{"staffId": staffID}); err != nil {
		log.Printf("Error removing staff login for %s: %v", staffID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Staff member deleted successfully",
	})
}

func (sc *StaffController) ownerAndStaffID(c echo.Context) (primitive.ObjectID, primitive.ObjectID, error) {
	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid owner ID")
	}
	staffID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, fmt.Errorf("invalid staff ID format")
	}
	return ownerID, staffID, nil
}
