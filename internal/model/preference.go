package model

import (
	"time"

	"github.com/google/uuid"
)

// ChannelSet is the subset of delivery channels enabled for one
// (recipient, category) pair.
type ChannelSet struct {
	InApp bool `json:"in_app"`
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

// Empty reports whether no channel is enabled, i.e. the category is muted.
func (s ChannelSet) Empty() bool {
	return !s.InApp && !s.Email && !s.Push
}

// List returns the enabled channels.
func (s ChannelSet) List() []Channel {
	var out []Channel
	if s.InApp {
		out = append(out, ChannelInApp)
	}
	if s.Email {
		out = append(out, ChannelEmail)
	}
	if s.Push {
		out = append(out, ChannelPush)
	}

	return out
}

// PreferenceSetting is a per (user, category) channel opt-in. If the
// top-level Enabled flag is false no channel fires for the category,
// regardless of the per-channel flags.
type PreferenceSetting struct {
	UserID       uuid.UUID `json:"user_id"`
	Category     Category  `json:"category"`
	Enabled      bool      `json:"enabled"`
	InAppEnabled bool      `json:"in_app_enabled"`
	EmailEnabled bool      `json:"email_enabled"`
	PushEnabled  bool      `json:"push_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPreference is the implicit setting for users who never changed
// anything: every channel on.
func DefaultPreference(userID uuid.UUID, category Category) PreferenceSetting {
	return PreferenceSetting{
		UserID:       userID,
		Category:     category,
		Enabled:      true,
		InAppEnabled: true,
		EmailEnabled: true,
		PushEnabled:  true,
	}
}

// Channels resolves the setting into the enabled channel set.
func (p PreferenceSetting) Channels() ChannelSet {
	if !p.Enabled {
		return ChannelSet{}
	}

	return ChannelSet{
		InApp: p.InAppEnabled,
		Email: p.EmailEnabled,
		Push:  p.PushEnabled,
	}
}
