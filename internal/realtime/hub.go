// Package realtime implements the in-app delivery transport: a registry
// of websocket subscribers keyed by recipient id. Entries are created on
// the first subscriber and dropped with the last one, so the registry
// never grows past the set of currently connected recipients.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/model"
)

// Envelope wraps every message sent over the realtime channel.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	// TypeNotification carries the same representation as the list endpoint.
	TypeNotification = "notification"
	// TypeUnreadCount is the lightweight unread-counter update.
	TypeUnreadCount = "unread_count"
	// TypeEvent carries lifecycle transitions: fully sent, channel delivered.
	TypeEvent = "event"
)

// Subscriber wraps one websocket connection with its liveness metadata.
type Subscriber struct {
	conn        *websocket.Conn
	recipientID uuid.UUID

	// the connection allows at most one concurrent writer; both the
	// HTTP goroutines and the delivery workers push through here
	wmu sync.Mutex

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Subscriber) writeJSON(v any) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Subscriber) ping(deadline time.Time) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, deadline)
}

// Touch refreshes the liveness timestamp, called from the pong handler.
func (s *Subscriber) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Subscriber) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Hub fans realtime messages out to the subscribers of a recipient.
// Delivery is best-effort: a disconnected recipient simply misses the
// push and catches up on the next list query.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*Subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[uuid.UUID]map[*Subscriber]struct{})}
}

// Add registers a connection for a recipient.
func (h *Hub) Add(recipientID uuid.UUID, conn *websocket.Conn) *Subscriber {
	s := &Subscriber{conn: conn, recipientID: recipientID, lastSeen: time.Now()}

	h.mu.Lock()
	if _, ok := h.subscribers[recipientID]; !ok {
		h.subscribers[recipientID] = make(map[*Subscriber]struct{})
	}
	h.subscribers[recipientID][s] = struct{}{}
	total := len(h.subscribers[recipientID])
	h.mu.Unlock()

	zlog.Logger.Info().
		Str("recipient_id", recipientID.String()).
		Int("connections", total).
		Msg("realtime subscriber connected")

	return s
}

// Remove closes and unregisters a connection. The recipient's registry
// entry disappears with its last subscriber.
func (h *Hub) Remove(s *Subscriber) {
	h.mu.Lock()
	if conns, ok := h.subscribers[s.recipientID]; ok {
		delete(conns, s)
		if len(conns) == 0 {
			delete(h.subscribers, s.recipientID)
		}
	}
	h.mu.Unlock()

	_ = s.conn.Close()
}

// Subscribers reports how many connections a recipient currently has.
func (h *Hub) Subscribers(recipientID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[recipientID])
}

// Publish sends a notification payload to every connection of a recipient.
func (h *Hub) Publish(recipientID uuid.UUID, payload any) {
	h.send(recipientID, Envelope{Type: TypeNotification, Data: payload})
}

// PublishUnreadCount pushes the recipient's current unread counter.
func (h *Hub) PublishUnreadCount(recipientID uuid.UUID, count int) {
	h.send(recipientID, Envelope{Type: TypeUnreadCount, Data: map[string]int{"unread": count}})
}

// PublishEvent pushes a domain event emitted by a notification command.
func (h *Hub) PublishEvent(recipientID uuid.UUID, ev model.Event) {
	h.send(recipientID, Envelope{Type: TypeEvent, Data: map[string]any{
		"event": ev.EventName(),
		"data":  ev,
	}})
}

func (h *Hub) send(recipientID uuid.UUID, env Envelope) {
	h.mu.RLock()
	conns := make([]*Subscriber, 0, len(h.subscribers[recipientID]))
	for s := range h.subscribers[recipientID] {
		conns = append(conns, s)
	}
	h.mu.RUnlock()

	for _, s := range conns {
		if err := s.writeJSON(env); err != nil {
			zlog.Logger.Warn().Err(err).
				Str("recipient_id", recipientID.String()).
				Msg("realtime send failed, dropping subscriber")
			h.Remove(s)
		}
	}
}

// Heartbeat pings all connections periodically and drops the ones that
// stopped answering.
func (h *Hub) Heartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.mu.RLock()
			var stale, alive []*Subscriber
			for _, conns := range h.subscribers {
				for s := range conns {
					if time.Since(s.seen()) > 2*interval {
						stale = append(stale, s)
						continue
					}
					alive = append(alive, s)
				}
			}
			h.mu.RUnlock()

			for _, s := range stale {
				h.Remove(s)
			}
			for _, s := range alive {
				_ = s.ping(time.Now().Add(time.Second))
			}
		}
	}
}
