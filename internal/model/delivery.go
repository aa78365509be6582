package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the state of a single delivery attempt.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryBounced   DeliveryStatus = "bounced"
	DeliveryRejected  DeliveryStatus = "rejected"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Terminal reports whether no further attempt follows this status.
// A failed attempt is terminal only once the attempt budget is exhausted;
// that decision belongs to the dispatcher, so failed is non-terminal here.
func (s DeliveryStatus) Terminal() bool {
	switch s {
	case DeliveryDelivered, DeliveryRejected, DeliveryCancelled:
		return true
	}

	return false
}

// DeliveryAttempt is one try to deliver a notification over one channel.
// Rows are append-only: retries add new rows, history is kept for audit.
type DeliveryAttempt struct {
	ID             int64          `json:"id"`
	NotificationID uuid.UUID      `json:"notification_id"`
	Channel        Channel        `json:"channel"`
	Recipient      string         `json:"recipient"`
	Status         DeliveryStatus `json:"status"`
	Attempt        int            `json:"attempt"`
	SentAt         *time.Time     `json:"sent_at,omitempty"`
	DeliveredAt    *time.Time     `json:"delivered_at,omitempty"`
	FailedAt       *time.Time     `json:"failed_at,omitempty"`
	ErrorCode      string         `json:"error_code,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	ProviderID     string         `json:"provider_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
