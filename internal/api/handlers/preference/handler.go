package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/api/dto"
	"github.com/soclink/notify/internal/api/respond"
	"github.com/soclink/notify/internal/model"
	prefrepo "github.com/soclink/notify/internal/repository/preference"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/preference/mock.go -package=mocks

type settingStore interface {
	Get(ctx context.Context, userID uuid.UUID, category model.Category) (model.PreferenceSetting, error)
	Upsert(ctx context.Context, p model.PreferenceSetting) error
}

type resolverCache interface {
	Invalidate(ctx context.Context, recipientID uuid.UUID, category model.Category)
}

// Handler serves per-user channel preferences. Updates invalidate the
// resolver cache so the next dispatch sees them immediately.
type Handler struct {
	store     settingStore
	resolver  resolverCache
	validator *validator.Validate
}

func NewHandler(store settingStore, resolver resolverCache, v *validator.Validate) *Handler {
	return &Handler{store: store, resolver: resolver, validator: v}
}

func (h *Handler) Get(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	category, err := model.ParseCategory(c.Query("category"))
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	setting, err := h.store.Get(c.Request.Context(), requesterID, category)
	if err != nil {
		if errors.Is(err, prefrepo.ErrPreferenceNotFound) {
			respond.OK(c.Writer, model.DefaultPreference(requesterID, category))
			return
		}

		zlog.Logger.Error().Err(err).Str("user_id", requesterID.String()).Msg("failed to get preference")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, setting)
}

func (h *Handler) Update(c *ginext.Context) {
	requesterID, err := requesterID(c)
	if err != nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, err)
		return
	}

	var req dto.PreferenceRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, err)
		return
	}

	setting := model.PreferenceSetting{
		UserID:       requesterID,
		Category:     category,
		Enabled:      req.Enabled,
		InAppEnabled: req.InAppEnabled,
		EmailEnabled: req.EmailEnabled,
		PushEnabled:  req.PushEnabled,
	}

	if err := h.store.Upsert(c.Request.Context(), setting); err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", requesterID.String()).Msg("failed to upsert preference")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	h.resolver.Invalidate(c.Request.Context(), requesterID, category)

	respond.OK(c.Writer, setting)
}

func requesterID(c *ginext.Context) (uuid.UUID, error) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing X-User-ID header")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid X-User-ID header")
	}

	return id, nil
}
