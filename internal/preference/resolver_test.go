package preference

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/soclink/notify/internal/model"
	prefrepo "github.com/soclink/notify/internal/repository/preference"
)

type stubStore struct {
	setting model.PreferenceSetting
	err     error
	calls   int
}

func (s *stubStore) Get(_ context.Context, _ uuid.UUID, _ model.Category) (model.PreferenceSetting, error) {
	s.calls++
	return s.setting, s.err
}

type stubCache struct {
	entries map[string]string
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}}
}

func (c *stubCache) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := c.entries[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	c.sets++
	c.entries[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (c *stubCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestResolver_ExplicitSetting(t *testing.T) {
	recipient := uuid.New()
	store := &stubStore{setting: model.PreferenceSetting{
		UserID:       recipient,
		Category:     model.CategoryLike,
		Enabled:      true,
		InAppEnabled: true,
		EmailEnabled: true,
		PushEnabled:  false,
	}}

	r := NewResolver(store, newStubCache(), time.Second)

	set := r.Resolve(context.Background(), recipient, model.CategoryLike)
	assert.Equal(t, model.ChannelSet{InApp: true, Email: true}, set)
}

func TestResolver_MissingSettingDefaultsAllOn(t *testing.T) {
	store := &stubStore{err: prefrepo.ErrPreferenceNotFound}
	r := NewResolver(store, newStubCache(), time.Second)

	set := r.Resolve(context.Background(), uuid.New(), model.CategoryComment)
	assert.Equal(t, model.ChannelSet{InApp: true, Email: true, Push: true}, set)
}

func TestResolver_MutedCategory(t *testing.T) {
	store := &stubStore{setting: model.PreferenceSetting{
		Enabled:      false,
		InAppEnabled: true,
		EmailEnabled: true,
		PushEnabled:  true,
	}}
	r := NewResolver(store, newStubCache(), time.Second)

	set := r.Resolve(context.Background(), uuid.New(), model.CategoryFollow)
	assert.True(t, set.Empty(), "top-level disable mutes everything")
}

func TestResolver_UnknownCategoryInAppOnly(t *testing.T) {
	store := &stubStore{}
	r := NewResolver(store, newStubCache(), time.Second)

	set := r.Resolve(context.Background(), uuid.New(), model.Category("confetti"))
	assert.Equal(t, model.ChannelSet{InApp: true}, set)
	assert.Zero(t, store.calls, "unknown categories never hit the store")
}

func TestResolver_StoreFailureFailsOpenForInApp(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	cache := newStubCache()
	r := NewResolver(store, cache, time.Second)

	set := r.Resolve(context.Background(), uuid.New(), model.CategorySecurity)
	assert.Equal(t, model.ChannelSet{InApp: true}, set, "fail open in-app, closed email/push")
	assert.Zero(t, cache.sets, "failure results are not cached")
}

func TestResolver_CacheHitSkipsStore(t *testing.T) {
	recipient := uuid.New()
	store := &stubStore{err: prefrepo.ErrPreferenceNotFound}
	cache := newStubCache()

	want := model.ChannelSet{InApp: true, Push: true}
	payload, _ := json.Marshal(want)
	cache.entries[cacheKey(recipient, model.CategoryMention)] = string(payload)

	r := NewResolver(store, cache, time.Second)

	set := r.Resolve(context.Background(), recipient, model.CategoryMention)
	assert.Equal(t, want, set)
	assert.Zero(t, store.calls)
}

func TestResolver_PopulatesCache(t *testing.T) {
	store := &stubStore{err: prefrepo.ErrPreferenceNotFound}
	cache := newStubCache()
	r := NewResolver(store, cache, time.Second)

	recipient := uuid.New()
	r.Resolve(context.Background(), recipient, model.CategoryLike)
	assert.Equal(t, 1, cache.sets)

	r.Resolve(context.Background(), recipient, model.CategoryLike)
	assert.Equal(t, 1, store.calls, "second resolve served from cache")
}

func TestResolver_InvalidateForcesStoreReload(t *testing.T) {
	store := &stubStore{err: prefrepo.ErrPreferenceNotFound}
	cache := newStubCache()
	r := NewResolver(store, cache, time.Second)

	recipient := uuid.New()
	r.Resolve(context.Background(), recipient, model.CategoryLike)
	r.Invalidate(context.Background(), recipient, model.CategoryLike)

	r.Resolve(context.Background(), recipient, model.CategoryLike)
	assert.Equal(t, 2, store.calls)
}
