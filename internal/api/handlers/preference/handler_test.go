package preference

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclink/notify/internal/api/dto"
	mocks "github.com/soclink/notify/internal/mocks/api/handlers/preference"
	"github.com/soclink/notify/internal/model"
	prefrepo "github.com/soclink/notify/internal/repository/preference"
)

func setupHandler(t *testing.T) (*Handler, *mocks.MocksettingStore, *mocks.MockresolverCache) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMocksettingStore(ctrl)
	resolver := mocks.NewMockresolverCache(ctrl)
	handler := NewHandler(store, resolver, validator.New())

	return handler, store, resolver
}

func TestHandler_Get_MissingRowReturnsDefault(t *testing.T) {
	handler, store, _ := setupHandler(t)

	userID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications/preferences?category=like", nil)
	c.Request.Header.Set("X-User-ID", userID.String())

	store.EXPECT().Get(gomock.Any(), userID, model.CategoryLike).
		Return(model.PreferenceSetting{}, prefrepo.ErrPreferenceNotFound)

	handler.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"in_app_enabled":true`)
	assert.Contains(t, w.Body.String(), `"email_enabled":true`)
}

func TestHandler_Get_UnknownCategory(t *testing.T) {
	handler, _, _ := setupHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/notifications/preferences?category=poke", nil)
	c.Request.Header.Set("X-User-ID", uuid.New().String())

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Update_UpsertsAndInvalidates(t *testing.T) {
	handler, store, resolver := setupHandler(t)

	userID := uuid.New()

	req := dto.PreferenceRequest{
		Category:     "comment",
		Enabled:      true,
		InAppEnabled: true,
	}

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/notifications/preferences", bytes.NewReader(raw))
	c.Request.Header.Set("X-User-ID", userID.String())

	want := model.PreferenceSetting{
		UserID:       userID,
		Category:     model.CategoryComment,
		Enabled:      true,
		InAppEnabled: true,
	}

	store.EXPECT().Upsert(gomock.Any(), want).Return(nil)
	resolver.EXPECT().Invalidate(gomock.Any(), userID, model.CategoryComment)

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_Update_MissingIdentity(t *testing.T) {
	handler, _, _ := setupHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/notifications/preferences", bytes.NewReader(nil))

	handler.Update(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
