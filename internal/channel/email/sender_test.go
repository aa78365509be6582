package email

import (
	"context"
	"errors"
	"net"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soclink/notify/internal/channel"
)

type stubClient struct {
	err     error
	to      string
	subject string
	body    string
}

func (c *stubClient) Send(to, subject, body string) error {
	c.to, c.subject, c.body = to, subject, body
	return c.err
}

func msg() channel.Message {
	return channel.Message{
		Title:     "New comment",
		Body:      "Someone replied to you",
		ActionURL: "https://example.com/posts/1",
		Address:   "user@example.com",
	}
}

func TestSender_Delivered(t *testing.T) {
	client := &stubClient{}
	s := NewSender(client)

	out := s.Send(context.Background(), msg())

	assert.Equal(t, channel.ClassDelivered, out.Class)
	assert.Equal(t, "user@example.com", client.to)
	assert.Equal(t, "New comment", client.subject)
	assert.Contains(t, client.body, "https://example.com/posts/1")
}

func TestSender_MissingAddressIsPermanent(t *testing.T) {
	s := NewSender(&stubClient{})

	m := msg()
	m.Address = ""
	out := s.Send(context.Background(), m)

	assert.Equal(t, channel.ClassPermanent, out.Class)
}

func TestSender_SMTPPermanentReply(t *testing.T) {
	s := NewSender(&stubClient{err: &textproto.Error{Code: 550, Msg: "no such user"}})

	out := s.Send(context.Background(), msg())

	assert.Equal(t, channel.ClassPermanent, out.Class)
	assert.Contains(t, out.Reason, "no such user")
}

func TestSender_SMTPTransientReply(t *testing.T) {
	s := NewSender(&stubClient{err: &textproto.Error{Code: 451, Msg: "try again later"}})

	out := s.Send(context.Background(), msg())

	assert.Equal(t, channel.ClassRetryable, out.Class)
}

func TestSender_NetworkTimeoutIsRetryable(t *testing.T) {
	var err net.Error = &net.DNSError{Err: "timeout", IsTimeout: true}
	s := NewSender(&stubClient{err: err})

	out := s.Send(context.Background(), msg())

	assert.Equal(t, channel.ClassRetryable, out.Class)
}

func TestSender_UnknownErrorIsRetryable(t *testing.T) {
	s := NewSender(&stubClient{err: errors.New("tls handshake failed")})

	out := s.Send(context.Background(), msg())

	assert.Equal(t, channel.ClassRetryable, out.Class)
}
