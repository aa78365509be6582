package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/soclink/notify/internal/directory"
	mocks "github.com/soclink/notify/internal/mocks/service/notification"
	"github.com/soclink/notify/internal/model"
	"github.com/soclink/notify/internal/rabbitmq/queue"
	notifrepo "github.com/soclink/notify/internal/repository/notification"
)

type serviceMocks struct {
	repo       *mocks.MocknotificationRepository
	deliveries *mocks.MockdeliveryLog
	queue      *mocks.MockdeliveryPublisher
	cache      *mocks.Mockcache
	resolver   *mocks.MockpreferenceResolver
	directory  *mocks.MockuserDirectory
	hub        *mocks.MockrealtimeHub
}

func newServiceWithMocks(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		repo:       mocks.NewMocknotificationRepository(ctrl),
		deliveries: mocks.NewMockdeliveryLog(ctrl),
		queue:      mocks.NewMockdeliveryPublisher(ctrl),
		cache:      mocks.NewMockcache(ctrl),
		resolver:   mocks.NewMockpreferenceResolver(ctrl),
		directory:  mocks.NewMockuserDirectory(ctrl),
		hub:        mocks.NewMockrealtimeHub(ctrl),
	}

	svc := NewService(m.repo, m.deliveries, m.queue, m.cache, m.resolver, m.directory, m.hub, retry.Strategy{}, 2)

	return svc, m
}

func TestService_Create_PublishesJobPerChannel(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	notificationID := uuid.New()
	strategy := retry.Strategy{}

	in := CreateInput{
		RecipientID: recipientID,
		Category:    model.CategoryComment,
		Title:       "new comment",
		Message:     "someone commented on your post",
	}

	m.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), strategy, notificationID.String(), StatusPending).Return(nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), recipientID, model.CategoryComment).
		Return(model.ChannelSet{InApp: true, Email: true})
	m.directory.EXPECT().ContactInfo(gomock.Any(), recipientID).
		Return(directory.ContactInfo{Email: "user@example.com"}, nil)
	m.repo.EXPECT().SetPendingChannels(gomock.Any(), notificationID, 2).Return(nil)

	var published []queue.DeliveryJob
	m.queue.EXPECT().Publish(gomock.Any(), strategy).DoAndReturn(
		func(job queue.DeliveryJob, _ retry.Strategy) error {
			published = append(published, job)
			return nil
		},
	).Times(2)

	m.repo.EXPECT().CountUnread(gomock.Any(), recipientID).Return(1, nil)
	m.hub.EXPECT().PublishUnreadCount(recipientID, 1)

	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, notificationID, id)

	require.Len(t, published, 2)
	assert.Equal(t, model.ChannelInApp, published[0].Channel)
	assert.Equal(t, recipientID.String(), published[0].Address)
	assert.Equal(t, model.ChannelEmail, published[1].Channel)
	assert.Equal(t, "user@example.com", published[1].Address)
}

func TestService_Create_AllChannelsMuted(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	notificationID := uuid.New()

	in := CreateInput{
		RecipientID: recipientID,
		Category:    model.CategoryLike,
		Title:       "new like",
		Message:     "someone liked your post",
	}

	m.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), notificationID.String(), StatusPending).Return(nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), recipientID, model.CategoryLike).Return(model.ChannelSet{})
	m.repo.EXPECT().MarkSent(gomock.Any(), notificationID).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), notificationID.String(), StatusSent).Return(nil)

	var event model.Event
	m.hub.EXPECT().PublishEvent(recipientID, gomock.Any()).Do(
		func(_ uuid.UUID, ev model.Event) { event = ev },
	)

	m.repo.EXPECT().CountUnread(gomock.Any(), recipientID).Return(3, nil)
	m.hub.EXPECT().PublishUnreadCount(recipientID, 3)

	id, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, notificationID, id)

	sent, ok := event.(model.NotificationSent)
	require.True(t, ok)
	assert.Equal(t, notificationID, sent.NotificationID)
}

func TestService_Create_InvalidInput(t *testing.T) {
	svc, _ := newServiceWithMocks(t)

	_, err := svc.Create(context.Background(), CreateInput{
		RecipientID: uuid.New(),
		Category:    model.CategoryComment,
		Message:     "no title",
	})
	assert.ErrorIs(t, err, model.ErrEmptyTitle)

	_, err = svc.Create(context.Background(), CreateInput{
		RecipientID: uuid.New(),
		Category:    "poke",
		Title:       "hi",
		Message:     "there",
	})
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestService_Create_ContactLookupFailureDropsEmail(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	notificationID := uuid.New()

	in := CreateInput{
		RecipientID: recipientID,
		Category:    model.CategorySecurity,
		Title:       "new login",
		Message:     "a new device signed in",
	}

	m.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(notificationID, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), notificationID.String(), StatusPending).Return(nil)
	m.resolver.EXPECT().Resolve(gomock.Any(), recipientID, model.CategorySecurity).
		Return(model.ChannelSet{InApp: true, Email: true, Push: true})
	m.directory.EXPECT().ContactInfo(gomock.Any(), recipientID).
		Return(directory.ContactInfo{}, errors.New("directory down"))
	m.repo.EXPECT().SetPendingChannels(gomock.Any(), notificationID, 1).Return(nil)

	m.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(job queue.DeliveryJob, _ retry.Strategy) error {
			assert.Equal(t, model.ChannelInApp, job.Channel)
			return nil
		},
	)

	m.repo.EXPECT().CountUnread(gomock.Any(), recipientID).Return(1, nil)
	m.hub.EXPECT().PublishUnreadCount(recipientID, 1)

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestService_MarkRead(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	id := uuid.New()

	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: recipientID}, nil)
	m.repo.EXPECT().MarkRead(gomock.Any(), id).Return(nil)
	m.repo.EXPECT().CountUnread(gomock.Any(), recipientID).Return(0, nil)
	m.hub.EXPECT().PublishUnreadCount(recipientID, 0)

	err := svc.MarkRead(context.Background(), id, recipientID)
	assert.NoError(t, err)
}

func TestService_MarkRead_AlreadyRead(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	id := uuid.New()
	readAt := time.Now().Add(-time.Hour)

	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: recipientID, IsRead: true, ReadAt: &readAt}, nil)

	err := svc.MarkRead(context.Background(), id, recipientID)
	assert.NoError(t, err)
}

func TestService_MarkRead_Forbidden(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	requesterID := uuid.New()

	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: uuid.New()}, nil)
	m.directory.EXPECT().Role(gomock.Any(), requesterID).Return(directory.RoleUser, nil)

	err := svc.MarkRead(context.Background(), id, requesterID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Delete_AdminCancelsInFlight(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	recipientID := uuid.New()
	adminID := uuid.New()
	id := uuid.New()

	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: recipientID}, nil)
	m.directory.EXPECT().Role(gomock.Any(), adminID).Return(directory.RoleAdmin, nil)
	m.repo.EXPECT().DeleteNotification(gomock.Any(), id).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), StatusCancelled).Return(nil)
	m.repo.EXPECT().CountUnread(gomock.Any(), recipientID).Return(2, nil)
	m.hub.EXPECT().PublishUnreadCount(recipientID, 2)

	err := svc.Delete(context.Background(), id, adminID)
	assert.NoError(t, err)
}

func TestService_Status_CacheHit(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	m.cache.EXPECT().GetWithRetry(gomock.Any(), gomock.Any(), id.String()).Return(StatusPending, nil)

	status, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)
}

func TestService_Status_CacheMissFallsBackToRepo(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	m.cache.EXPECT().GetWithRetry(gomock.Any(), gomock.Any(), id.String()).Return("", redis.Nil)
	m.repo.EXPECT().GetNotification(gomock.Any(), id).Return(model.Notification{ID: id, IsSent: true}, nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), StatusSent).Return(nil)

	status, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)
}

func TestService_Status_DeletedMeansCancelled(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	m.cache.EXPECT().GetWithRetry(gomock.Any(), gomock.Any(), id.String()).Return("", redis.Nil)
	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{}, notifrepo.ErrNotificationNotFound)

	status, err := svc.Status(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
}

func TestService_CompleteChannel_LastChannelMarksSent(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	recipientID := uuid.New()

	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: recipientID}, nil)
	m.repo.EXPECT().CompleteChannel(gomock.Any(), id, model.ChannelEmail, true).Return(true, nil)

	var events []model.Event
	m.hub.EXPECT().PublishEvent(recipientID, gomock.Any()).Do(
		func(_ uuid.UUID, ev model.Event) { events = append(events, ev) },
	).Times(2)

	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), id.String(), StatusSent).Return(nil)

	err := svc.CompleteChannel(context.Background(), id, model.ChannelEmail, true)
	assert.NoError(t, err)

	require.Len(t, events, 2)
	delivered, ok := events[0].(model.ChannelDelivered)
	require.True(t, ok)
	assert.Equal(t, model.ChannelEmail, delivered.Channel)
	_, ok = events[1].(model.NotificationSent)
	assert.True(t, ok)
}

func TestService_CompleteChannel_StillPending(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	id := uuid.New()
	m.repo.EXPECT().GetNotification(gomock.Any(), id).
		Return(model.Notification{ID: id, RecipientID: uuid.New()}, nil)
	m.repo.EXPECT().CompleteChannel(gomock.Any(), id, model.ChannelPush, false).Return(false, nil)

	err := svc.CompleteChannel(context.Background(), id, model.ChannelPush, false)
	assert.NoError(t, err)
}

func TestService_FanOut_RequiresAdmin(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	requesterID := uuid.New()
	m.directory.EXPECT().Role(gomock.Any(), requesterID).Return(directory.RoleUser, nil)

	_, err := svc.FanOut(context.Background(), requesterID, CreateInput{}, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_FanOut_PartialFailure(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	adminID := uuid.New()
	good := uuid.New()
	bad := uuid.New()

	in := CreateInput{
		Category: model.CategorySystem,
		Title:    "maintenance window",
		Message:  "the platform goes down at midnight",
	}

	m.directory.EXPECT().Role(gomock.Any(), adminID).Return(directory.RoleAdmin, nil)

	m.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n model.Notification) (uuid.UUID, error) {
			if n.RecipientID == bad {
				return uuid.Nil, errors.New("db down")
			}
			return uuid.New(), nil
		},
	).Times(2)

	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), gomock.Any(), StatusPending).Return(nil).AnyTimes()
	m.resolver.EXPECT().Resolve(gomock.Any(), good, model.CategorySystem).
		Return(model.ChannelSet{InApp: true})
	m.repo.EXPECT().SetPendingChannels(gomock.Any(), gomock.Any(), 1).Return(nil)
	m.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	m.repo.EXPECT().CountUnread(gomock.Any(), good).Return(1, nil)
	m.hub.EXPECT().PublishUnreadCount(good, 1)

	result, err := svc.FanOut(context.Background(), adminID, in, []uuid.UUID{good, bad})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []uuid.UUID{bad}, result.FailedIDs)
}
