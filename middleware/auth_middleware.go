// middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udaykene/salon-mangement-sys-sub001/config"
	"github.com/udaykene/salon-mangement-sys-sub001/models"
)

// RequireUserType checks if the authenticated user has one of the allowed user types
func RequireUserType(allowedTypes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userType := ExtractUserType(c)

			if userType == "" {
				c.Logger().Error("Authentication failed: user type not found")
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: user type not found",
				})
			}

			for _, allowedType := range allowedTypes {
				if userType == allowedType {
					return next(c)
				}
			}

			c.Logger().Errorf("Access denied for user type: %s, allowed types: %v", userType, allowedTypes)
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied for your user type",
			})
		}
	}
}

// RequireActiveSubscription blocks feature routes for owners whose demo
// trial has lapsed. The dashboard treats the 402 as a redirect signal to
// the upgrade page. Non-owner callers pass through; their access is scoped
// by RequireUserType instead.
func RequireActiveSubscription(db *mongo.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ExtractUserType(c) != models.UserTypeOwner {
				return next(c)
			}

			ownerID, err := ExtractOwnerID(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid owner identity",
				})
			}

			collection := config.GetCollection(db, "subscriptions")
			var subscription models.Subscription
			err = collection.FindOne(c.Request().Context(), bson.M{"ownerId": ownerID}).Decode(&subscription)
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

			if subscription.IsTrialExpired(time.Now()) {
				// Persist the status flip so list views agree with the gate
				go markSubscriptionExpired(db, subscription.ID)

				return c.JSON(http.StatusPaymentRequired, models.Response{
					Status:  http.StatusPaymentRequired,
					Message: "Trial period has ended. Please upgrade your plan to continue.",
					Data: map[string]interface{}{
						"isTrialExpired": true,
						"plan":           subscription.Plan,
						"upgradeTargets": subscription.AllowedUpgradeTargets(),
					},
				})
			}

			return next(c)
		}
	}
}

func markSubscriptionExpired(db *mongo.Client, subscriptionID primitive.ObjectID) {
	collection := config.GetCollection(db, "subscriptions")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _ = collection.UpdateOne(ctx,
		bson.M{"_id": subscriptionID, "status": models.SubscriptionStatusTrial},
		bson.M{"$set": bson.M{
			"status":    models.SubscriptionStatusExpired,
			"updatedAt": time.Now(),
		}},
	)
}
