package preference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/soclink/notify/internal/model"
)

var ErrPreferenceNotFound = errors.New("preference setting not found")

// Repository stores per (user, category) channel preferences. Rows are
// created lazily on the first change; absence means the all-on default.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new preference repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Get retrieves the setting for one (user, category) pair.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID, category model.Category) (model.PreferenceSetting, error) {
	query := `
		SELECT user_id, category, enabled,
		       in_app_enabled, email_enabled, push_enabled,
		       created_at, updated_at
		FROM preference_settings
		WHERE user_id = $1 AND category = $2;
	`

	var p model.PreferenceSetting
	err := r.db.QueryRowContext(ctx, query, userID, category).Scan(
		&p.UserID, &p.Category, &p.Enabled,
		&p.InAppEnabled, &p.EmailEnabled, &p.PushEnabled,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PreferenceSetting{}, ErrPreferenceNotFound
		}

		return model.PreferenceSetting{}, fmt.Errorf("failed to get preference: %w", err)
	}

	return p, nil
}

// Upsert creates or replaces the setting for one (user, category) pair.
func (r *Repository) Upsert(ctx context.Context, p model.PreferenceSetting) error {
	query := `
		INSERT INTO preference_settings (
			user_id, category, enabled,
			in_app_enabled, email_enabled, push_enabled
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, category) DO UPDATE
		SET enabled = EXCLUDED.enabled,
		    in_app_enabled = EXCLUDED.in_app_enabled,
		    email_enabled = EXCLUDED.email_enabled,
		    push_enabled = EXCLUDED.push_enabled,
		    updated_at = NOW();
	`

	_, err := r.db.ExecContext(
		ctx, query,
		p.UserID, p.Category, p.Enabled,
		p.InAppEnabled, p.EmailEnabled, p.PushEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	return nil
}
