package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

// dial returns a connected client conn whose server side is registered in
// the hub for the given recipient.
func dial(t *testing.T, hub *Hub, recipientID uuid.UUID) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Add(recipientID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	// wait for the server handler to register the subscriber
	require.Eventually(t, func() bool {
		return hub.Subscribers(recipientID) > 0
	}, time.Second, 10*time.Millisecond)

	return client
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()
	client := dial(t, hub, recipient)

	hub.Publish(recipient, map[string]string{"title": "hi"})

	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	var env Envelope
	require.NoError(t, client.ReadJSON(&env))
	assert.Equal(t, TypeNotification, env.Type)
}

func TestHub_UnreadCountMessage(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()
	client := dial(t, hub, recipient)

	hub.PublishUnreadCount(recipient, 7)

	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	var env Envelope
	require.NoError(t, client.ReadJSON(&env))
	assert.Equal(t, TypeUnreadCount, env.Type)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 7, data["unread"])
}

func TestHub_ConcurrentPublishersShareOneConnection(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()
	client := dial(t, hub, recipient)

	const writers = 16
	const perWriter = 10

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				if n%2 == 0 {
					hub.Publish(recipient, map[string]int{"writer": n})
				} else {
					hub.PublishUnreadCount(recipient, j)
				}
			}
		}(i)
	}

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	for i := 0; i < writers*perWriter; i++ {
		var env Envelope
		require.NoError(t, client.ReadJSON(&env))
	}
	wg.Wait()
}

func TestHub_PublishToUnknownRecipientIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Publish(uuid.New(), "nobody listens")
}

func TestHub_RegistryLifecycle(t *testing.T) {
	hub := NewHub()
	recipient := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		s := hub.Add(recipient, conn)
		_ = s // removed explicitly below via hub state
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers(recipient) == 1
	}, time.Second, 10*time.Millisecond)

	// a write failure after close drops the last subscriber and with it
	// the registry entry
	_ = client.Close()
	require.Eventually(t, func() bool {
		hub.Publish(recipient, "ping")
		return hub.Subscribers(recipient) == 0
	}, time.Second, 10*time.Millisecond)
}
