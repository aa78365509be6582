package delivery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/soclink/notify/internal/model"
)

// Repository is the append-only delivery log. Every channel delivery try
// adds a row; rows are never updated or deleted, so the full retry history
// stays available for audit.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new delivery log repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Record appends one delivery attempt and returns its ID.
func (r *Repository) Record(ctx context.Context, a model.DeliveryAttempt) (int64, error) {
	query := `
		INSERT INTO delivery_attempts (
			notification_id, channel, recipient, status, attempt,
			sent_at, delivered_at, failed_at,
			error_code, error_message, provider_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		a.NotificationID, a.Channel, a.Recipient, a.Status, a.Attempt,
		a.SentAt, a.DeliveredAt, a.FailedAt,
		a.ErrorCode, a.ErrorMessage, a.ProviderID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to record delivery attempt: %w", err)
	}

	return id, nil
}

// ListByNotification returns the full attempt history of a notification,
// oldest first, across all channels.
func (r *Repository) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryAttempt, error) {
	query := `
		SELECT id, notification_id, channel, recipient, status, attempt,
		       sent_at, delivered_at, failed_at,
		       error_code, error_message, provider_id, created_at
		FROM delivery_attempts
		WHERE notification_id = $1
		ORDER BY created_at, id;
	`

	rows, err := r.db.QueryContext(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery attempts: %w", err)
	}
	defer rows.Close()

	var attempts []model.DeliveryAttempt
	for rows.Next() {
		var a model.DeliveryAttempt
		err := rows.Scan(
			&a.ID, &a.NotificationID, &a.Channel, &a.Recipient, &a.Status, &a.Attempt,
			&a.SentAt, &a.DeliveredAt, &a.FailedAt,
			&a.ErrorCode, &a.ErrorMessage, &a.ProviderID, &a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}

// LatestAttempt returns the most recent attempt number for a
// (notification, channel) pair, zero when none exist.
func (r *Repository) LatestAttempt(ctx context.Context, notificationID uuid.UUID, ch model.Channel) (int, error) {
	query := `
		SELECT COALESCE(MAX(attempt), 0)
		FROM delivery_attempts
		WHERE notification_id = $1 AND channel = $2;
	`

	var attempt int
	if err := r.db.QueryRowContext(ctx, query, notificationID, ch).Scan(&attempt); err != nil {
		return 0, fmt.Errorf("failed to get latest attempt: %w", err)
	}

	return attempt, nil
}
