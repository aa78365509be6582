// Package channel defines the uniform contract every delivery channel
// implements. Senders classify transport errors into retryable and
// permanent failures; whether to retry is the dispatcher's call, never
// the sender's.
package channel

import (
	"context"

	"github.com/google/uuid"

	"github.com/soclink/notify/internal/model"
)

// Classification is the terminal kind of a single send call.
type Classification int

const (
	// ClassDelivered means the transport accepted the message.
	ClassDelivered Classification = iota
	// ClassRetryable means a transient failure: timeout, 5xx, rate limit.
	ClassRetryable
	// ClassPermanent means retrying cannot help: invalid address,
	// rejected content.
	ClassPermanent
)

// Outcome is the result of one send call.
type Outcome struct {
	Class      Classification
	Reason     string
	ProviderID string
}

// Delivered builds a successful outcome, optionally carrying the
// transport's external id.
func Delivered(providerID string) Outcome {
	return Outcome{Class: ClassDelivered, ProviderID: providerID}
}

// RetryableFailure builds a transient-failure outcome.
func RetryableFailure(reason string) Outcome {
	return Outcome{Class: ClassRetryable, Reason: reason}
}

// PermanentFailure builds a terminal-failure outcome.
func PermanentFailure(reason string) Outcome {
	return Outcome{Class: ClassPermanent, Reason: reason}
}

// Message is the channel-independent payload handed to a sender, together
// with the resolved channel-specific address.
type Message struct {
	NotificationID uuid.UUID
	RecipientID    uuid.UUID
	Category       model.Category
	Title          string
	Body           string
	ActionURL      string
	Priority       model.Priority
	Address        string
	Metadata       map[string]any
}

// Sender delivers one message over one channel.
type Sender interface {
	Send(ctx context.Context, msg Message) Outcome
}
