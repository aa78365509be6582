package push

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/soclink/notify/internal/channel"
	pushgw "github.com/soclink/notify/pkg/push"
)

type stubClient struct {
	results map[string]error
	sent    []string
}

func (c *stubClient) Send(token, _, _, _ string, _ map[string]any) (string, error) {
	c.sent = append(c.sent, token)
	if err, ok := c.results[token]; ok && err != nil {
		return "", err
	}
	return "msg-" + token, nil
}

func msg(address string) channel.Message {
	return channel.Message{
		NotificationID: uuid.New(),
		Title:          "You were mentioned",
		Body:           "@you in a comment",
		Address:        address,
	}
}

func TestSender_DeliveredToAllTokens(t *testing.T) {
	client := &stubClient{}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("tok-a, tok-b"))

	assert.Equal(t, channel.ClassDelivered, out.Class)
	assert.Equal(t, []string{"tok-a", "tok-b"}, client.sent)
	assert.NotEmpty(t, out.ProviderID)
}

func TestSender_PartialSuccessCountsAsDelivered(t *testing.T) {
	client := &stubClient{results: map[string]error{
		"dead": &pushgw.APIError{StatusCode: http.StatusBadRequest, Status: "400 invalid token"},
	}}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("dead,live"))

	assert.Equal(t, channel.ClassDelivered, out.Class)
}

func TestSender_NoTokensIsPermanent(t *testing.T) {
	s := NewSender(&stubClient{})

	out := s.Send(context.Background(), msg(""))

	assert.Equal(t, channel.ClassPermanent, out.Class)
}

func TestSender_RateLimitIsRetryable(t *testing.T) {
	client := &stubClient{results: map[string]error{
		"tok": &pushgw.APIError{StatusCode: http.StatusTooManyRequests, Status: "429 rate limited"},
	}}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("tok"))

	assert.Equal(t, channel.ClassRetryable, out.Class)
}

func TestSender_ServerErrorIsRetryable(t *testing.T) {
	client := &stubClient{results: map[string]error{
		"tok": &pushgw.APIError{StatusCode: http.StatusBadGateway, Status: "502 bad gateway"},
	}}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("tok"))

	assert.Equal(t, channel.ClassRetryable, out.Class)
}

func TestSender_InvalidTokenIsPermanent(t *testing.T) {
	client := &stubClient{results: map[string]error{
		"tok": &pushgw.APIError{StatusCode: http.StatusBadRequest, Status: "400 invalid token"},
	}}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("tok"))

	assert.Equal(t, channel.ClassPermanent, out.Class)
	assert.Contains(t, out.Reason, "invalid token")
}

func TestSender_TransportErrorIsRetryable(t *testing.T) {
	client := &stubClient{results: map[string]error{
		"tok": errors.New("dial tcp: connection refused"),
	}}
	s := NewSender(client)

	out := s.Send(context.Background(), msg("tok"))

	assert.Equal(t, channel.ClassRetryable, out.Class)
}
