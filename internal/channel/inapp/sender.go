// Package inapp delivers notifications over the realtime hub. Delivery
// is best-effort and never retried: a recipient who was offline sees the
// notification on their next list query anyway.
package inapp

import (
	"context"

	"github.com/google/uuid"

	"github.com/soclink/notify/internal/channel"
	"github.com/soclink/notify/internal/model"
)

type hub interface {
	Publish(recipientID uuid.UUID, payload any)
}

// Sender publishes notifications to the recipient's realtime channel.
type Sender struct {
	hub hub
}

// NewSender creates an in-app sender on top of the given hub.
func NewSender(h hub) *Sender {
	return &Sender{hub: h}
}

// Send publishes the notification payload. It always reports delivered:
// there is no transport acknowledgement to wait for, and a missed push is
// superseded by the pull-based list.
func (s *Sender) Send(_ context.Context, msg channel.Message) channel.Outcome {
	s.hub.Publish(msg.RecipientID, payload{
		ID:        msg.NotificationID,
		Category:  msg.Category,
		Title:     msg.Title,
		Message:   msg.Body,
		ActionURL: msg.ActionURL,
		Priority:  msg.Priority,
		Metadata:  msg.Metadata,
	})

	return channel.Delivered("")
}

// payload mirrors the notification representation of the list endpoint.
type payload struct {
	ID        uuid.UUID      `json:"id"`
	Category  model.Category `json:"category"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	ActionURL string         `json:"action_url,omitempty"`
	Priority  model.Priority `json:"priority"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
