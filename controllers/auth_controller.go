// controllers/auth_controller.go
package controllers

import (
	"context"
	"net/http"
	"strings"
	"sync"
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

// AuthController handles signup, login and session operations
type AuthController struct {
	DB              *mongo.Client
	loginAttempts   map[string]loginAttempt
	loginAttemptsMu sync.RWMutex
}

type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{
		DB:            db,
		loginAttempts: make(map[string]loginAttempt),
	}
}

// Signup registers a salon owner. The salon profile, the first branch and
// the demo trial subscription are created together with the account.
func (ac *AuthController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var req models.SignupRequest
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

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}
	req.Email = email

	if req.Phone != "" {
		phone, err := utils.SanitizePhone(req.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid phone number format",
			})
		}
		req.Phone = phone
	}

	userCollection := config.GetCollection(ac.DB, "users")

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing accounts",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An account with this email already exists",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:             primitive.NewObjectID(),
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       hashedPassword,
		FullName:       utils.SanitizeInput(req.FullName),
		UserType:       models.UserTypeOwner,
		IsActive:       true,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	salon := models.Salon{
		ID:      primitive.NewObjectID(),
		OwnerID: user.ID,
		Name:    utils.SanitizeInput(req.SalonName),
		ContactInfo: models.ContactInfo{
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	salonCollection := config.GetCollection(ac.DB, "salons")
	if _, err := salonCollection.InsertOne(ctx, salon); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create salon profile",
		})
	}

	branchName := utils.SanitizeInput(req.BranchName)
	if branchName == "" {
		branchName = "Main Branch"
	}
	branch := models.Branch{
		ID:        primitive.NewObjectID(),
		OwnerID:   user.ID,
		Name:      branchName,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	branchCollection := config.GetCollection(ac.DB, "branches")
	if _, err := branchCollection.InsertOne(ctx, branch); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create first branch",
		})
	}

	subscription := models.NewTrialSubscription(user.ID, now)
	subscription.ID = primitive.NewObjectID()
	subscriptionCollection := config.GetCollection(ac.DB, "subscriptions")
	if _, err := subscriptionCollection.InsertOne(ctx, subscription); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create subscription",
		})
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.UserType, user.ID.Hex(), "", "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Account created but failed to generate token, please log in",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Account created successfully",
		Data: models.LoginData{
			Token:        token,
			RefreshToken: refreshToken,
			User:         user,
		},
	})
}

// Login authenticates an owner by email or a staff member by phone
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(ac.DB, "users")

	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if loginReq.Email == "" && loginReq.Phone == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Either email or phone number is required",
		})
	}

	if loginReq.Email != "" {
		email, err := utils.SanitizeEmail(loginReq.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid email format",
			})
		}
		loginReq.Email = email
	}

	if loginReq.Phone != "" {
		phone, err := utils.SanitizePhone(loginReq.Phone)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid phone number format",
			})
		}
		loginReq.Phone = phone
	}

	// Lockout is keyed on the normalized identifier so different
	// spellings of the same phone or email share one attempt bucket
	identifier := loginReq.Email
	if identifier == "" {
		identifier = loginReq.Phone
	}

	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[identifier]
	ac.loginAttemptsMu.RUnlock()

	if exists && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later.",
		})
	}

	var user models.User
	var err error

	if loginReq.Email != "" {
		err = collection.FindOne(ctx, bson.M{"email": loginReq.Email}).Decode(&user)
	} else {
		err = collection.FindOne(ctx, bson.M{"phone": loginReq.Phone}).Decode(&user)
	}

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find user",
		})
	}

	if err := utils.CheckPassword(loginReq.Password, user.Password); err != nil {
		ac.loginAttemptsMu.Lock()
		ac.loginAttempts[identifier] = loginAttempt{
			count:       attempts.count + 1,
			lastAttempt: time.Now(),
		}
		ac.loginAttemptsMu.Unlock()

		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, identifier)
	ac.loginAttemptsMu.Unlock()

	ownerID := user.ID
	if user.OwnerID != nil {
		ownerID = *user.OwnerID
	}
	branchID := ""
	if user.BranchID != nil {
		branchID = user.BranchID.Hex()
	}
	staffID := ""
	if user.StaffID != nil {
		staffID = user.StaffID.Hex()
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.UserType, ownerID.Hex(), branchID, staffID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	loginData := models.LoginData{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}

	// Owners get the trial flag up front so the dashboard can redirect to
	// the upgrade page without a second round trip
	if user.UserType == models.UserTypeOwner {
		var subscription models.Subscription
		subErr := config.GetCollection(ac.DB, "subscriptions").
			FindOne(ctx, bson.M{"ownerId": user.ID}).Decode(&subscription)
		if subErr == nil {
			loginData.IsTrialExpired = subscription.IsTrialExpired(time.Now())
		}
	}

	if loginReq.RememberMe {
		if rememberToken, tokenErr := utils.GenerateRememberMeToken(); tokenErr == nil {
			credentials := utils.RememberedCredentials{
				Email:      user.Email,
				Phone:      user.Phone,
				UserType:   user.UserType,
				UserID:     user.ID.Hex(),
				ExpiresAt:  time.Now().Add(30 * 24 * time.Hour),
				DeviceInfo: c.Request().UserAgent(),
			}
			if storeErr := utils.StoreRememberedCredentials(config.GetRedisClient(), rememberToken, credentials, 30*24*time.Hour); storeErr == nil {
				loginData.RememberMeToken = rememberToken
			}
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    loginData,
	})
}

// Logout blacklists the presented token until its natural expiry
func (ac *AuthController) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" || tokenString == authHeader {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No token provided",
		})
	}

	middleware.BlacklistToken(tokenString, time.Now().Add(24*time.Hour))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Logged out successfully",
	})
}

// GetMe returns the authenticated user's account
func (ac *AuthController) GetMe(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var user models.User
	err = config.GetCollection(ac.DB, "users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "User not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load user",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User retrieved successfully",
		Data:    user,
	})
}

// ChangePassword updates the authenticated user's password
func (ac *AuthController) ChangePassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req models.ChangePasswordRequest
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

	collection := config.GetCollection(ac.DB, "users")
	var user models.User
	if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	if err := utils.CheckPassword(req.CurrentPassword, user.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Current password is incorrect",
		})
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	_, err = collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{
		"password":  hashedPassword,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update password",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password updated successfully",
	})
}

// GetRememberedCredentials retrieves stored login hints for a remembered device
func (ac *AuthController) GetRememberedCredentials(c echo.Context) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Remember me token is required",
		})
	}

	credentials, err := utils.RetrieveRememberedCredentials(config.GetRedisClient(), req.Token)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Remembered credentials not found or expired",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Remembered credentials retrieved",
		Data: map[string]string{
			"email":    credentials.Email,
			"phone":    credentials.Phone,
			"userType": credentials.UserType,
		},
	})
}

// RemoveRememberedCredentials forgets a remembered device
func (ac *AuthController) RemoveRememberedCredentials(c echo.Context) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Remember me token is required",
		})
	}

	if err := utils.RemoveRememberedCredentials(config.GetRedisClient(), req.Token); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove remembered credentials",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Remembered credentials removed",
	})
}
