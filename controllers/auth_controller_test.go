package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Lockout buckets are keyed on the normalized identifier, so any spelling
// of a locked phone number is refused before the credential lookup runs.
func TestLoginLockoutUsesNormalizedIdentifier(t *testing.T) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	ac := NewAuthController(client)
	ac.loginAttempts["+96170123456"] = loginAttempt{count: 5, lastAttempt: time.Now()}

	e := echo.New()
	for _, spelling := range []string{"961 70 123 456", "+961-70-123456", "96170123456"} {
		body := `{"phone": "` + spelling + `", "password": "wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := ac.Login(e.NewContext(req, rec))
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, spelling)
	}
}
