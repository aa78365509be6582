package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/model"
	prefrepo "github.com/soclink/notify/internal/repository/preference"
)

type settingStore interface {
	Get(ctx context.Context, userID uuid.UUID, category model.Category) (model.PreferenceSetting, error)
}

type cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Resolver answers "which channels are enabled for this recipient and
// category". Reads are served through a short-lived cache; a slightly
// stale answer only risks one extra or missing notification.
type Resolver struct {
	store settingStore
	cache cache
	ttl   time.Duration
}

// NewResolver creates a resolver backed by the preference store and a
// cache with the configured staleness window.
func NewResolver(store settingStore, cache cache, ttl time.Duration) *Resolver {
	return &Resolver{store: store, cache: cache, ttl: ttl}
}

// Resolve returns the enabled channel set for a recipient and category.
//
// Policy, not errors: an unknown category resolves to in-app only so
// decorative categories never go silent; a missing setting means the
// all-on default; an unreachable store fails open for in-app and closed
// for email and push, so infrastructure failure never causes spam.
func (r *Resolver) Resolve(ctx context.Context, recipientID uuid.UUID, category model.Category) model.ChannelSet {
	if _, err := model.ParseCategory(string(category)); err != nil {
		return model.ChannelSet{InApp: true}
	}

	key := cacheKey(recipientID, category)

	cached, err := r.cache.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Warn().Err(err).Str("key", key).Msg("preference cache read failed")
	}

	if err == nil {
		var set model.ChannelSet
		if err := json.Unmarshal([]byte(cached), &set); err == nil {
			return set
		}

		zlog.Logger.Warn().Str("key", key).Msg("corrupt preference cache entry, falling through")
	}

	setting, err := r.store.Get(ctx, recipientID, category)
	if err != nil {
		if !errors.Is(err, prefrepo.ErrPreferenceNotFound) {
			zlog.Logger.Error().Err(err).
				Str("recipient_id", recipientID.String()).
				Str("category", string(category)).
				Msg("preference store unreachable, failing open for in-app only")

			return model.ChannelSet{InApp: true}
		}

		setting = model.DefaultPreference(recipientID, category)
	}

	set := setting.Channels()

	if payload, err := json.Marshal(set); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl).Err(); err != nil {
			zlog.Logger.Warn().Err(err).Str("key", key).Msg("failed to cache preference")
		}
	}

	return set
}

// Invalidate drops the cached channel set after a preference update so
// the next dispatch sees the new setting immediately.
func (r *Resolver) Invalidate(ctx context.Context, recipientID uuid.UUID, category model.Category) {
	key := cacheKey(recipientID, category)
	if err := r.cache.Del(ctx, key).Err(); err != nil {
		zlog.Logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate preference cache")
	}
}

func cacheKey(recipientID uuid.UUID, category model.Category) string {
	return fmt.Sprintf("pref:%s:%s", recipientID, category)
}
