package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/soclink/notify/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Repository is the notification record store: the single source of truth
// for created/read/sent/expired state.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

const notificationColumns = `
	id, recipient_id, category, title, message,
	entity_type, entity_id, sender_id, action_url, priority,
	is_read, read_at, is_sent, sent_at, email_sent, push_sent,
	expires_at, metadata, created_at, updated_at
`

// CreateNotification inserts a new notification and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, n model.Notification) (uuid.UUID, error) {
	query := `
		INSERT INTO notifications (
			recipient_id, category, title, message,
			entity_type, entity_id, sender_id, action_url,
			priority, expires_at, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`

	meta, err := marshalMetadata(n.Metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal metadata: %w", err)
	}

	var id uuid.UUID
	err = r.db.QueryRowContext(
		ctx, query,
		n.RecipientID, n.Category, n.Title, n.Message,
		nullString(n.EntityType), nullString(n.EntityID), n.SenderID, nullString(n.ActionURL),
		n.Priority, n.ExpiresAt, meta,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return id, nil
}

// GetNotification retrieves a notification by its ID, expired ones included.
func (r *Repository) GetNotification(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE id = $1;
	`

	n, err := scanNotification(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListForRecipient retrieves a page of active (non-expired) notifications,
// newest first. Unread filtering is independent of expiry.
func (r *Repository) ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE recipient_id = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
		  AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// CountForRecipient returns the active notification count backing pagination.
func (r *Repository) CountForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE recipient_id = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
		  AND ($2 = FALSE OR is_read = FALSE);
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, recipientID, unreadOnly).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

// CountUnread returns the unread count pushed over the realtime channel.
func (r *Repository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return r.CountForRecipient(ctx, recipientID, true)
}

// MarkRead sets the read flag. Idempotent: a second call matches no row
// and leaves read_at untouched.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_read = FALSE;
	`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

// MarkAllRead marks every unread notification of a recipient read and
// returns the number of rows affected.
func (r *Repository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW(), updated_at = NOW()
		WHERE recipient_id = $1 AND is_read = FALSE;
	`

	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all read: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

// SetPendingChannels records how many channel deliveries must reach a
// terminal state before the notification counts as fully sent.
func (r *Repository) SetPendingChannels(ctx context.Context, id uuid.UUID, count int) error {
	query := `
		UPDATE notifications
		SET pending_channels = $1, updated_at = NOW()
		WHERE id = $2;
	`

	res, err := r.db.ExecContext(ctx, query, count, id)
	if err != nil {
		return fmt.Errorf("failed to set pending channels: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkSent marks the notification fully sent. Used directly when the
// eligible channel set resolves empty (the recipient opted out).
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_sent = TRUE, sent_at = COALESCE(sent_at, NOW()),
		    pending_channels = 0, updated_at = NOW()
		WHERE id = $1;
	`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// CompleteChannel records one channel reaching a terminal state. The
// per-channel sent flag is set only on successful delivery; the pending
// counter drops either way, and the notification becomes fully sent when
// it reaches zero. Returns true once the notification is fully sent.
func (r *Repository) CompleteChannel(ctx context.Context, id uuid.UUID, ch model.Channel, delivered bool) (bool, error) {
	flag := ""
	switch ch {
	case model.ChannelEmail:
		flag = "email_sent = email_sent OR $2,"
	case model.ChannelPush:
		flag = "push_sent = push_sent OR $2,"
	}

	query := `
		UPDATE notifications
		SET ` + flag + `
		    pending_channels = GREATEST(pending_channels - 1, 0),
		    is_sent = is_sent OR pending_channels <= 1,
		    sent_at = CASE WHEN sent_at IS NULL AND pending_channels <= 1 THEN NOW() ELSE sent_at END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING is_sent;
	`

	args := []any{id}
	if flag != "" {
		args = append(args, delivered)
	}

	var sent bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotificationNotFound
		}

		return false, fmt.Errorf("failed to complete channel: %w", err)
	}

	return sent, nil
}

// DeleteNotification removes a notification row. Authorization happens in
// the service layer; in-flight channel deliveries observe the missing row
// and record a cancelled attempt.
func (r *Repository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Stats aggregates total and unread counts per category for a recipient.
func (r *Repository) Stats(ctx context.Context, recipientID uuid.UUID) (model.Stats, error) {
	query := `
		SELECT category,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE is_read = FALSE)
		FROM notifications
		WHERE recipient_id = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
		GROUP BY category
		ORDER BY category;
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to get notification stats: %w", err)
	}
	defer rows.Close()

	var stats model.Stats
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Total, &c.Unread); err != nil {
			return model.Stats{}, err
		}

		stats.Total += c.Total
		stats.Unread += c.Unread
		stats.ByCategory = append(stats.ByCategory, c)
	}

	if err := rows.Err(); err != nil {
		return model.Stats{}, err
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (model.Notification, error) {
	var (
		n          model.Notification
		entityType sql.NullString
		entityID   sql.NullString
		actionURL  sql.NullString
		meta       []byte
	)

	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Category, &n.Title, &n.Message,
		&entityType, &entityID, &n.SenderID, &actionURL, &n.Priority,
		&n.IsRead, &n.ReadAt, &n.IsSent, &n.SentAt, &n.EmailSent, &n.PushSent,
		&n.ExpiresAt, &meta, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return model.Notification{}, err
	}

	n.EntityType = entityType.String
	n.EntityID = entityID.String
	n.ActionURL = actionURL.String

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &n.Metadata); err != nil {
			return model.Notification{}, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	return n, nil
}

func marshalMetadata(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}

	return json.Marshal(m)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
