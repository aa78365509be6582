// Package push provides a client for a mobile push gateway.
//
// The gateway accepts a device token plus a rendered payload over HTTP and
// answers with a provider-side message id. Error classification (retryable
// vs. permanent) is left to the caller, which sees the HTTP status via
// APIError.
package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx answer from the push gateway.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("push gateway error: %s", e.Status)
}

// Client represents a push gateway client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new push gateway client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	Token    string         `json:"token"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Priority string         `json:"priority,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send pushes a message to the given device token and returns the
// gateway-assigned message id.
func (c *Client) Send(token, title, body, priority string, data map[string]any) (string, error) {
	url := fmt.Sprintf("%s/v1/push", c.baseURL)

	reqBody := sendRequest{
		Token:    token,
		Title:    title,
		Body:     body,
		Priority: priority,
		Data:     data,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return out.MessageID, nil
}
