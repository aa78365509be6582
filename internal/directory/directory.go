// Package directory declares the contract with the user directory
// service. User and profile data live outside this core; the dispatcher
// only needs a recipient's channel addresses and a requester's role.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found in directory")

// Role is the platform role of a user, used for admin-gated operations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ContactInfo holds a recipient's channel addresses.
type ContactInfo struct {
	Email      string   `json:"email"`
	PushTokens []string `json:"push_tokens"`
}

// Client is the consumed surface of the user directory.
type Client interface {
	ContactInfo(ctx context.Context, userID uuid.UUID) (ContactInfo, error)
	Role(ctx context.Context, userID uuid.UUID) (Role, error)
}
