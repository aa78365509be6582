package dto

import "time"

// CreateRequest is the body of POST /api/notifications.
type CreateRequest struct {
	RecipientID string         `json:"recipient_id" validate:"required,uuid"`
	Category    string         `json:"category" validate:"required"`
	Title       string         `json:"title" validate:"required,max=200"`
	Message     string         `json:"message" validate:"required,max=1000"`
	EntityType  string         `json:"entity_type,omitempty"`
	EntityID    string         `json:"entity_id,omitempty"`
	SenderID    string         `json:"sender_id,omitempty" validate:"omitempty,uuid"`
	ActionURL   string         `json:"action_url,omitempty" validate:"omitempty,url"`
	Priority    string         `json:"priority,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
}

// PreferenceRequest is the body of PUT /api/notifications/preferences.
// A full replace: channel flags omitted from the body come out disabled.
type PreferenceRequest struct {
	Category     string `json:"category" validate:"required"`
	Enabled      bool   `json:"enabled"`
	InAppEnabled bool   `json:"in_app_enabled"`
	EmailEnabled bool   `json:"email_enabled"`
	PushEnabled  bool   `json:"push_enabled"`
}

// BulkCreateRequest is the body of POST /api/notifications/bulk: one
// notification's content fanned out to a list of recipients.
type BulkCreateRequest struct {
	RecipientIDs []string       `json:"recipient_ids" validate:"required,min=1,max=10000,dive,uuid"`
	Category     string         `json:"category" validate:"required"`
	Title        string         `json:"title" validate:"required,max=200"`
	Message      string         `json:"message" validate:"required,max=1000"`
	EntityType   string         `json:"entity_type,omitempty"`
	EntityID     string         `json:"entity_id,omitempty"`
	SenderID     string         `json:"sender_id,omitempty" validate:"omitempty,uuid"`
	ActionURL    string         `json:"action_url,omitempty" validate:"omitempty,url"`
	Priority     string         `json:"priority,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
}
