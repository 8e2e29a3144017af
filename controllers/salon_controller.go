// controllers/salon_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/utils"
)

// SalonController manages the tenant profile
type SalonController struct {
	DB *mongo.Client
}

// NewSalonController creates a new salon controller
func NewSalonController(db *mongo.Client) *SalonController {
	return &SalonController{DB: db}
}

// GetSalon returns the caller's salon profile
func (sc *SalonController) GetSalon(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var salon models.Salon
	err = config.GetCollection(sc.DB, "salons").
		FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&salon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Salon not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve salon",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Salon retrieved successfully",
		Data:    salon,
	})
}

// UpdateSalon updates the salon profile fields that were supplied
func (sc *SalonController) UpdateSalon(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.UpdateSalonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	setFields := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		setFields["name"] = utils.SanitizeInput(req.Name)
	}
	if req.ContactInfo != nil {
		setFields["contactInfo"] = *req.ContactInfo
	}

	result, err := config.GetCollection(sc.DB, "salons").
		UpdateOne(ctx, bson.M{"ownerId": ownerID}, bson.M{"$set": setFields})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update salon",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Salon not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Salon updated successfully",
	})
}

// UploadLogo stores a salon logo image and generates a thumbnail
func (sc *SalonController) UploadLogo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "logo file is required",
		})
	}

	logoURL, err := utils.SaveUploadedImage(file, "logos")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	thumbnailURL, err := utils.GenerateImageThumbnail(logoURL)
	if err != nil {
		// the full-size logo is already stored; a missing thumbnail is
		// not worth failing the upload over
		log.Printf("Error generating logo thumbnail: %v", err)
		thumbnailURL = ""
	}

	setFields := bson.M{
		"logoUrl":   logoURL,
		"updatedAt": time.Now(),
	}
	if thumbnailURL != "" {
		setFields["thumbnailUrl"] = thumbnailURL
	}

	result, err := config.GetCollection(sc.DB, "salons").
		UpdateOne(ctx, bson.M{"ownerId": ownerID}, bson.M{"$set": setFields})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update salon logo",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Salon not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logo uploaded successfully",
		Data: map[string]string{
			"logoUrl":      logoURL,
			"thumbnailUrl": thumbnailURL,
		},
	})
}
