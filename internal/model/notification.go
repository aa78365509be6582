package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("notification title is empty")
	ErrEmptyMessage    = errors.New("notification message is empty")
	ErrUnknownCategory = errors.New("unknown notification category")
	ErrUnknownPriority = errors.New("unknown notification priority")
)

// Category classifies a notification. The set is closed: requests with a
// category outside of it are rejected before persistence.
type Category string

const (
	CategoryLike     Category = "like"
	CategoryComment  Category = "comment"
	CategoryFollow   Category = "follow"
	CategoryMention  Category = "mention"
	CategorySystem   Category = "system"
	CategorySecurity Category = "security"
)

// ParseCategory validates a raw category value.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryLike, CategoryComment, CategoryFollow, CategoryMention, CategorySystem, CategorySecurity:
		return c, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Priority is fixed at creation and never changes afterwards.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority validates a raw priority value. An empty value defaults
// to normal.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}

	switch p := Priority(s); p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return p, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
}

// Channel is a delivery mechanism for a notification.
type Channel string

const (
	ChannelInApp   Channel = "in_app"
	ChannelEmail   Channel = "email"
	ChannelPush    Channel = "push"
	ChannelSMS     Channel = "sms"
	ChannelWebhook Channel = "webhook"
)

// Notification is a single message owed to one recipient, independent of
// delivery channel. Channel senders never mutate it; delivery outcomes go
// to the delivery log instead.
type Notification struct {
	ID          uuid.UUID      `json:"id"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	Category    Category       `json:"category"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	EntityType  string         `json:"entity_type,omitempty"`
	EntityID    string         `json:"entity_id,omitempty"`
	SenderID    *uuid.UUID     `json:"sender_id,omitempty"`
	ActionURL   string         `json:"action_url,omitempty"`
	Priority    Priority       `json:"priority"`
	IsRead      bool           `json:"is_read"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	IsSent      bool           `json:"is_sent"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	EmailSent   bool           `json:"email_sent"`
	PushSent    bool           `json:"push_sent"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Validate checks the creation-time invariants.
func (n Notification) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}

	if n.Message == "" {
		return ErrEmptyMessage
	}

	if _, err := ParseCategory(string(n.Category)); err != nil {
		return err
	}

	if _, err := ParsePriority(string(n.Priority)); err != nil {
		return err
	}

	return nil
}

// Expired reports whether the notification has passed its expiry.
// Expired notifications drop out of the active list view but stay
// retrievable by id.
func (n Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && n.ExpiresAt.Before(now)
}

// MarkRead returns a copy with the read flag set. Idempotent: marking an
// already read notification returns the unchanged state and no events.
func (n Notification) MarkRead(now time.Time) (Notification, []Event) {
	if n.IsRead {
		return n, nil
	}

	n.IsRead = true
	n.ReadAt = &now
	n.UpdatedAt = now

	return n, []Event{NotificationRead{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		ReadAt:         now,
	}}
}

// MarkSent returns a copy with the sent flag set, emitted once every
// eligible channel has reached a terminal state.
func (n Notification) MarkSent(now time.Time) (Notification, []Event) {
	if n.IsSent {
		return n, nil
	}

	n.IsSent = true
	n.SentAt = &now
	n.UpdatedAt = now

	return n, []Event{NotificationSent{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		SentAt:         now,
	}}
}

// MarkChannelSent returns a copy with the per-channel sent flag set.
// Channels without a dedicated flag (in-app, sms, webhook) only emit the
// event.
func (n Notification) MarkChannelSent(ch Channel, now time.Time) (Notification, []Event) {
	switch ch {
	case ChannelEmail:
		if n.EmailSent {
			return n, nil
		}
		n.EmailSent = true
	case ChannelPush:
		if n.PushSent {
			return n, nil
		}
		n.PushSent = true
	}

	n.UpdatedAt = now

	return n, []Event{ChannelDelivered{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		Channel:        ch,
		DeliveredAt:    now,
	}}
}
