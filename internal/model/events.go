package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event emitted by a notification command method.
// State transitions return events explicitly instead of firing side
// effects from field assignment.
type Event interface {
	EventName() string
}

// NotificationRead is emitted the first time a notification is marked read.
type NotificationRead struct {
	NotificationID uuid.UUID
	RecipientID    uuid.UUID
	ReadAt         time.Time
}

func (NotificationRead) EventName() string { return "notification.read" }

// NotificationSent is emitted once every eligible channel reached a
// terminal delivery state.
type NotificationSent struct {
	NotificationID uuid.UUID
	RecipientID    uuid.UUID
	SentAt         time.Time
}

func (NotificationSent) EventName() string { return "notification.sent" }

// ChannelDelivered is emitted when a single channel delivery succeeds.
type ChannelDelivered struct {
	NotificationID uuid.UUID
	RecipientID    uuid.UUID
	Channel        Channel
	DeliveredAt    time.Time
}

func (ChannelDelivered) EventName() string { return "notification.channel_delivered" }
