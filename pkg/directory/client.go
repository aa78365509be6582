// Package directory provides an HTTP client for the user directory
// service, the external collaborator that owns contact addresses and
// roles. The notification core only ever asks it two questions.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	dir "github.com/soclink/notify/internal/directory"
)

// Client talks to the user directory over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new directory client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ContactInfo returns the email address and push tokens of a user.
func (c *Client) ContactInfo(ctx context.Context, userID uuid.UUID) (dir.ContactInfo, error) {
	var info dir.ContactInfo
	if err := c.get(ctx, fmt.Sprintf("/users/%s/contact", userID), &info); err != nil {
		return dir.ContactInfo{}, err
	}

	return info, nil
}

// Role returns the platform role of a user.
func (c *Client) Role(ctx context.Context, userID uuid.UUID) (dir.Role, error) {
	var out struct {
		Role dir.Role `json:"role"`
	}
	if err := c.get(ctx, fmt.Sprintf("/users/%s/role", userID), &out); err != nil {
		return "", err
	}

	return out.Role, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return dir.ErrUserNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
