package preference

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/soclink/notify/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestGet(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()
	now := time.Now()
	query := regexp.QuoteMeta(`
		SELECT user_id, category, enabled,
		       in_app_enabled, email_enabled, push_enabled,
		       created_at, updated_at
		FROM preference_settings
		WHERE user_id = $1 AND category = $2;
	`)

	rows := sqlmock.NewRows([]string{
		"user_id", "category", "enabled",
		"in_app_enabled", "email_enabled", "push_enabled",
		"created_at", "updated_at",
	}).AddRow(userID, "like", true, true, false, true, now, now)

	mock.ExpectQuery(query).
		WithArgs(userID, model.CategoryLike).
		WillReturnRows(rows)

	p, err := repo.Get(context.Background(), userID, model.CategoryLike)
	assert.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.True(t, p.InAppEnabled)
	assert.False(t, p.EmailEnabled)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(query).
		WithArgs(userID, model.CategorySystem).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.Get(context.Background(), userID, model.CategorySystem)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	repo, mock := setupMockDB(t)

	p := model.PreferenceSetting{
		UserID:       uuid.New(),
		Category:     model.CategoryLike,
		Enabled:      true,
		InAppEnabled: true,
		EmailEnabled: false,
		PushEnabled:  true,
	}

	mock.ExpectExec(regexp.QuoteMeta(`
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
	`)).
		WithArgs(p.UserID, p.Category, p.Enabled, p.InAppEnabled, p.EmailEnabled, p.PushEnabled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
