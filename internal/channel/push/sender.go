// Package push formats notifications for the push channel and classifies
// gateway errors for the dispatcher's retry decision.
package push

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/soclink/notify/internal/channel"
	"github.com/soclink/notify/pkg/push"
)

type client interface {
	Send(token, title, body, priority string, data map[string]any) (string, error)
}

// Sender delivers notifications through the push gateway. A recipient may
// have several device tokens; delivery counts as successful when at least
// one device accepted the message.
type Sender struct {
	client client
}

// NewSender creates a push sender on top of a gateway client.
func NewSender(c client) *Sender {
	return &Sender{client: c}
}

// Send pushes to every device token in the message address. Gateway 429
// and 5xx answers are transient; other 4xx answers mean an invalid token
// or rejected payload and end the channel.
func (s *Sender) Send(_ context.Context, msg channel.Message) channel.Outcome {
	tokens := splitTokens(msg.Address)
	if len(tokens) == 0 {
		return channel.PermanentFailure("no push tokens on file")
	}

	data := map[string]any{
		"notification_id": msg.NotificationID.String(),
		"category":        string(msg.Category),
	}
	if msg.ActionURL != "" {
		data["action_url"] = msg.ActionURL
	}

	var (
		providerID string
		delivered  bool
		retryable  bool
		lastReason string
	)

	for _, token := range tokens {
		id, err := s.client.Send(token, msg.Title, msg.Body, string(msg.Priority), data)
		if err == nil {
			delivered = true
			providerID = id
			continue
		}

		lastReason = err.Error()
		if isRetryable(err) {
			retryable = true
		}
	}

	switch {
	case delivered:
		return channel.Delivered(providerID)
	case retryable:
		return channel.RetryableFailure(lastReason)
	default:
		return channel.PermanentFailure(lastReason)
	}
}

func isRetryable(err error) bool {
	var apiErr *push.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}

	// transport-level failure: timeout, connection refused
	return true
}

func splitTokens(address string) []string {
	var tokens []string
	for _, t := range strings.Split(address, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}

	return tokens
}
