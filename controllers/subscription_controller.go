// controllers/subscription_controller.go
package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/middleware"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
	"github.com/udaykene/salon-mangement-sys-sub001/websocket"
)

// SubscriptionController handles plan catalog and subscription operations
type SubscriptionController struct {
	DB  *mongo.Client
	Hub *websocket.Hub
}

// NewSubscriptionController creates a new subscription controller
func NewSubscriptionController(db *mongo.Client, hub *websocket.Hub) *SubscriptionController {
	return &SubscriptionController{DB: db, Hub: hub}
}

// GetPlans returns the static plan catalog in upgrade order
func (sc *SubscriptionController) GetPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Plans retrieved successfully",
		Data:    models.AllPlans(),
	})
}

// GetCurrentSubscription returns the owner's subscription together with
// the branch usage and trial state the dashboard renders
func (sc *SubscriptionController) GetCurrentSubscription(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	subscription, err := sc.loadSubscription(ctx, ownerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Subscription not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load subscription",
		})
	}

	branchCount, err := config.GetCollection(sc.DB, "branches").
		CountDocuments(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to count branches",
		})
	}

	now := time.Now()
	expired := subscription.IsTrialExpired(now)
	if expired && subscription.Status == models.SubscriptionStatusTrial {
		// Persist the recomputed status so later reads agree
		_, updateErr := config.GetCollection(sc.DB, "subscriptions").UpdateOne(ctx,
			bson.M{"_id": subscription.ID, "status": models.SubscriptionStatusTrial},
			bson.M{"$set": bson.M{"status": models.SubscriptionStatusExpired, "updatedAt": now}},
		)
		if updateErr != nil {
			log.Printf("Error persisting expired trial status: %v", updateErr)
		} else {
			subscription.Status = models.SubscriptionStatusExpired
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription retrieved successfully",
		Data: models.CurrentSubscriptionData{
			Subscription:       subscription,
			CurrentBranchCount: int(branchCount),
			BranchUsage:        subscription.BranchUsage(int(branchCount)),
			HasPlan:            true,
			IsTrialExpired:     expired,
			UpgradeTargets:     subscription.AllowedUpgradeTargets(),
		},
	})
}

// UpgradePlan applies an owner-initiated plan change. Only strictly higher
// tiers are accepted; a successful upgrade exits the trial state machine
// permanently. Payment collection is a stubbed integration point.
func (sc *SubscriptionController) UpgradePlan(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := middleware.ExtractOwnerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid owner ID",
		})
	}

	var req models.UpgradePlanRequest
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

	targetPlan := models.PlanKey(req.NewPlan)
	if _, ok := models.LookupPlan(targetPlan); !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown plan: " + req.NewPlan,
		})
	}

	subscription, err := sc.loadSubscription(ctx, ownerID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Subscription not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load subscription",
		})
	}

	if !subscription.CanUpgradeTo(targetPlan) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("Cannot change plan from %s to %s: only upgrades to a higher tier are allowed", subscription.Plan, targetPlan),
			Data: models.InvalidTransitionData{
				Current:   subscription.Plan,
				Requested: targetPlan,
			},
		})
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"plan":        targetPlan,
			"status":      models.SubscriptionStatusActive,
			"activatedAt": now,
			"updatedAt":   now,
		},
		// Upgrading to any paid tier exits the trial permanently
		"$unset": bson.M{"trialEndsAt": ""},
	}
	_, err = config.GetCollection(sc.DB, "subscriptions").
		UpdateOne(ctx, bson.M{"_id": subscription.ID}, update)
	if err != nil {
		log.Printf("Error upgrading subscription: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to upgrade plan",
		})
	}

	subscription.Plan = targetPlan
	subscription.Status = models.SubscriptionStatusActive
	subscription.TrialEndsAt = nil
	subscription.ActivatedAt = now
	subscription.UpdatedAt = now

	sc.Hub.NotifyOwner(ownerID, websocket.NotificationTypePlanUpgraded,
		"Your plan has been upgraded to "+string(targetPlan), subscription)

	go sc.sendUpgradeEmail(ownerID.Hex(), string(targetPlan))

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Plan upgraded successfully to " + string(targetPlan),
		Data:    subscription,
	})
}

func (sc *SubscriptionController) loadSubscription(ctx context.Context, ownerID primitive.ObjectID) (models.Subscription, error) {
	var subscription models.Subscription
	err := config.GetCollection(sc.DB, "subscriptions").
		FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&subscription)
	return subscription, err
}

// sendUpgradeEmail notifies the owner about the plan change. Failures are
// logged only; the upgrade itself has already committed.
func (sc *SubscriptionController) sendUpgradeEmail(ownerIDHex, plan string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ownerID, err := primitive.ObjectIDFromHex(ownerIDHex)
	if err != nil {
		return
	}

	var user models.User
	err = config.GetCollection(sc.DB, "users").FindOne(ctx, bson.M{"_id": ownerID}).Decode(&user)
	if err != nil || user.Email == "" {
		return
	}

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")

	senderEmail := fromEmail
	if senderEmail == "" {
		senderEmail = smtpUser
	}

	if smtpHost == "" || smtpUser == "" || smtpPass == "" || senderEmail == "" {
		log.Println("SMTP configuration is incomplete for upgrade notifications")
		return
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if portNum, err := strconv.Atoi(portStr); err == nil && portNum > 0 {
			smtpPort = portNum
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", "Your subscription has been upgraded")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour salon subscription is now on the %s plan. The new branch limit is active immediately.\n",
		user.FullName, plan))

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send upgrade email: %v", err)
		return
	}

	log.Printf("Upgrade notification email sent to %s", user.Email)
}
