// Package email formats notifications for the email channel and
// classifies SMTP transport errors for the dispatcher's retry decision.
package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"

	"github.com/soclink/notify/internal/channel"
)

type client interface {
	Send(to, subject, body string) error
}

// Sender delivers notifications over SMTP.
type Sender struct {
	client client
}

// NewSender creates an email sender on top of an SMTP client.
func NewSender(c client) *Sender {
	return &Sender{client: c}
}

// Send formats and submits one email. SMTP reply codes drive the
// classification: 4yz replies are transient by definition, 5yz are
// permanent; network timeouts are transient.
func (s *Sender) Send(_ context.Context, msg channel.Message) channel.Outcome {
	if msg.Address == "" {
		return channel.PermanentFailure("no email address on file")
	}

	body := msg.Body
	if msg.ActionURL != "" {
		body = fmt.Sprintf("%s\n\n%s", msg.Body, msg.ActionURL)
	}

	if err := s.client.Send(msg.Address, msg.Title, body); err != nil {
		return classify(err)
	}

	return channel.Delivered("")
}

func classify(err error) channel.Outcome {
	var proto *textproto.Error
	if errors.As(err, &proto) {
		if proto.Code >= 500 {
			return channel.PermanentFailure(err.Error())
		}

		return channel.RetryableFailure(err.Error())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return channel.RetryableFailure(err.Error())
	}

	// connection setup and handshake problems are worth another try
	return channel.RetryableFailure(err.Error())
}
