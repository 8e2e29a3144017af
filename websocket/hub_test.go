package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func dialTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Keep the peer reading so writes never block
		go func() {
			defer conn.Close()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestSendToUserNotConnected(t *testing.T) {
	hub := NewHub()

	err := hub.SendToUser(primitive.NewObjectID(), Notification{Type: "x"})
	assert.Error(t, err)
}

// Handlers push notifications from concurrent request goroutines, e.g. a
// bulk attendance mark and a branch creation for the same owner. The
// connection allows a single writer at a time, so sends must serialize.
func TestClientSendConcurrent(t *testing.T) {
	client := &Client{
		UserID:        primitive.NewObjectID(),
		Conn:          dialTestConn(t),
		Authenticated: true,
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := client.Send(Notification{
				Type:    NotificationTypeAttendanceMarked,
				Message: "attendance updated",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
