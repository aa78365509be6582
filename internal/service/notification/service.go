package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/directory"
	"github.com/soclink/notify/internal/model"
	"github.com/soclink/notify/internal/rabbitmq/queue"
	notifrepo "github.com/soclink/notify/internal/repository/notification"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

// ErrForbidden is returned when the requester is neither the recipient
// nor an admin on a mutating operation.
var ErrForbidden = errors.New("requester may not modify this notification")

// Notification lifecycle statuses kept in the status cache. The cache is
// what lets in-flight delivery jobs observe a deletion cheaply.
const (
	StatusPending   = "pending"
	StatusSent      = "sent"
	StatusCancelled = "cancelled"
)

const defaultPageSize = 20

type notificationRepository interface {
	CreateNotification(ctx context.Context, n model.Notification) (uuid.UUID, error)
	GetNotification(ctx context.Context, id uuid.UUID) (model.Notification, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]model.Notification, error)
	CountForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	SetPendingChannels(ctx context.Context, id uuid.UUID, count int) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	CompleteChannel(ctx context.Context, id uuid.UUID, ch model.Channel, delivered bool) (bool, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, recipientID uuid.UUID) (model.Stats, error)
}

type deliveryLog interface {
	ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryAttempt, error)
}

type deliveryPublisher interface {
	Publish(job queue.DeliveryJob, strategy retry.Strategy) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

type preferenceResolver interface {
	Resolve(ctx context.Context, recipientID uuid.UUID, category model.Category) model.ChannelSet
}

type userDirectory interface {
	ContactInfo(ctx context.Context, userID uuid.UUID) (directory.ContactInfo, error)
	Role(ctx context.Context, userID uuid.UUID) (directory.Role, error)
}

type realtimeHub interface {
	PublishUnreadCount(recipientID uuid.UUID, count int)
	PublishEvent(recipientID uuid.UUID, ev model.Event)
}

// CreateInput is the creation request after transport-level decoding.
type CreateInput struct {
	RecipientID uuid.UUID
	Category    model.Category
	Title       string
	Message     string
	EntityType  string
	EntityID    string
	SenderID    *uuid.UUID
	ActionURL   string
	Priority    model.Priority
	Metadata    map[string]any
	ExpiresAt   *time.Time
}

// Service is the dispatcher: it persists notifications, resolves the
// eligible channel set and hands channel delivery off to the work queue.
// Creation never blocks on channel latency.
type Service struct {
	repo          notificationRepository
	deliveries    deliveryLog
	queue         deliveryPublisher
	cache         cache
	resolver      preferenceResolver
	directory     userDirectory
	hub           realtimeHub
	strategy      retry.Strategy
	fanoutWorkers int
}

// NewService wires the dispatcher.
func NewService(
	repo notificationRepository,
	deliveries deliveryLog,
	q deliveryPublisher,
	cache cache,
	resolver preferenceResolver,
	dir userDirectory,
	hub realtimeHub,
	strategy retry.Strategy,
	fanoutWorkers int,
) *Service {
	if fanoutWorkers <= 0 {
		fanoutWorkers = 8
	}

	return &Service{
		repo:          repo,
		deliveries:    deliveries,
		queue:         q,
		cache:         cache,
		resolver:      resolver,
		directory:     dir,
		hub:           hub,
		strategy:      strategy,
		fanoutWorkers: fanoutWorkers,
	}
}

// Create validates and persists a notification, then schedules one
// delivery job per eligible channel. It returns as soon as the
// notification is durable; delivery outcomes land in the delivery log.
func (s *Service) Create(ctx context.Context, in CreateInput) (uuid.UUID, error) {
	priority, err := model.ParsePriority(string(in.Priority))
	if err != nil {
		return uuid.Nil, err
	}

	n := model.Notification{
		RecipientID: in.RecipientID,
		Category:    in.Category,
		Title:       in.Title,
		Message:     in.Message,
		EntityType:  in.EntityType,
		EntityID:    in.EntityID,
		SenderID:    in.SenderID,
		ActionURL:   in.ActionURL,
		Priority:    priority,
		Metadata:    in.Metadata,
		ExpiresAt:   in.ExpiresAt,
	}

	if err := n.Validate(); err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create notification: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, s.strategy, id.String(), StatusPending); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
	}

	channels := s.resolver.Resolve(ctx, in.RecipientID, in.Category)

	jobs := s.buildJobs(ctx, id, n, channels)
	if len(jobs) == 0 {
		// the recipient opted out of everything: not an error, the
		// notification is complete with zero delivery attempts
		if err := s.repo.MarkSent(ctx, id); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to mark opted-out notification sent")
		}
		if err := s.cache.SetWithRetry(ctx, s.strategy, id.String(), StatusSent); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache notification status")
		}

		n.ID = id
		_, events := n.MarkSent(time.Now())
		for _, ev := range events {
			s.hub.PublishEvent(in.RecipientID, ev)
		}

		s.pushUnreadCount(ctx, in.RecipientID)

		return id, nil
	}

	if err := s.repo.SetPendingChannels(ctx, id, len(jobs)); err != nil {
		return uuid.Nil, fmt.Errorf("set pending channels: %w", err)
	}

	for _, job := range jobs {
		if err := s.queue.Publish(job, s.strategy); err != nil {
			// creation already succeeded; a lost job surfaces through
			// the delivery log, never to the caller
			zlog.Logger.Error().Err(err).
				Str("id", id.String()).
				Str("channel", string(job.Channel)).
				Msg("failed to publish delivery job")
		}
	}

	s.pushUnreadCount(ctx, in.RecipientID)

	return id, nil
}

// buildJobs resolves channel addresses and drops channels without one.
func (s *Service) buildJobs(ctx context.Context, id uuid.UUID, n model.Notification, channels model.ChannelSet) []queue.DeliveryJob {
	var contact directory.ContactInfo
	if channels.Email || channels.Push {
		info, err := s.directory.ContactInfo(ctx, n.RecipientID)
		if err != nil {
			// no address, no send: fail closed for email and push
			zlog.Logger.Error().Err(err).
				Str("recipient_id", n.RecipientID.String()).
				Msg("contact lookup failed, dropping email and push channels")
			channels.Email = false
			channels.Push = false
		} else {
			contact = info
		}
	}

	job := queue.DeliveryJob{
		NotificationID: id,
		RecipientID:    n.RecipientID,
		Category:       n.Category,
		Title:          n.Title,
		Body:           n.Message,
		ActionURL:      n.ActionURL,
		Priority:       n.Priority,
		Metadata:       n.Metadata,
		EnqueuedAt:     time.Now(),
	}

	var jobs []queue.DeliveryJob

	if channels.InApp {
		j := job
		j.Channel = model.ChannelInApp
		j.Address = n.RecipientID.String()
		jobs = append(jobs, j)
	}

	if channels.Email {
		if contact.Email == "" {
			zlog.Logger.Warn().Str("id", id.String()).Msg("email enabled but no address on file, skipping")
		} else {
			j := job
			j.Channel = model.ChannelEmail
			j.Address = contact.Email
			jobs = append(jobs, j)
		}
	}

	if channels.Push {
		if len(contact.PushTokens) == 0 {
			zlog.Logger.Warn().Str("id", id.String()).Msg("push enabled but no tokens on file, skipping")
		} else {
			j := job
			j.Channel = model.ChannelPush
			j.Address = strings.Join(contact.PushTokens, ",")
			jobs = append(jobs, j)
		}
	}

	return jobs
}

// Get retrieves a notification by id, expired ones included.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	return s.repo.GetNotification(ctx, id)
}

// List returns one page of active notifications plus the total count.
func (s *Service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, size int) ([]model.Notification, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}

	items, err := s.repo.ListForRecipient(ctx, recipientID, unreadOnly, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.CountForRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	return items, total, nil
}

// MarkRead marks a notification read on behalf of the requester.
// Idempotent: a second call neither errors nor moves read_at.
func (s *Service) MarkRead(ctx context.Context, id, requesterID uuid.UUID) error {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, n.RecipientID, requesterID); err != nil {
		return err
	}

	_, events := n.MarkRead(time.Now())
	if len(events) == 0 {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}

	s.pushUnreadCount(ctx, n.RecipientID)

	return nil
}

// MarkAllRead marks every unread notification of a recipient read.
func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	updated, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}

	if updated > 0 {
		s.pushUnreadCount(ctx, recipientID)
	}

	return nil
}

// Delete removes a notification on behalf of the requester and cancels
// its in-flight channel deliveries via the status cache.
func (s *Service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, n.RecipientID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return err
	}

	if err := s.cache.SetWithRetry(ctx, s.strategy, id.String(), StatusCancelled); err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache cancelled status")
	}

	s.pushUnreadCount(ctx, n.RecipientID)

	return nil
}

// Stats aggregates the recipient's notification counters.
func (s *Service) Stats(ctx context.Context, recipientID uuid.UUID) (model.Stats, error) {
	return s.repo.Stats(ctx, recipientID)
}

// Deliveries returns the delivery audit trail of a notification.
func (s *Service) Deliveries(ctx context.Context, id uuid.UUID) ([]model.DeliveryAttempt, error) {
	if _, err := s.repo.GetNotification(ctx, id); err != nil {
		return nil, err
	}

	return s.deliveries.ListByNotification(ctx, id)
}

// Status answers the delivery workers' "is this still worth sending"
// question, cache first. A missing row means the notification was
// deleted and the delivery must cancel.
func (s *Service) Status(ctx context.Context, id uuid.UUID) (string, error) {
	status, err := s.cache.GetWithRetry(ctx, s.strategy, id.String())
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to get notification status from cache")
	}

	if err != nil {
		n, repoErr := s.repo.GetNotification(ctx, id)
		if repoErr != nil {
			if errors.Is(repoErr, notifrepo.ErrNotificationNotFound) {
				return StatusCancelled, nil
			}

			return "", fmt.Errorf("get notification status: %w", repoErr)
		}

		status = StatusPending
		if n.IsSent {
			status = StatusSent
		}

		if cacheErr := s.cache.SetWithRetry(ctx, s.strategy, id.String(), status); cacheErr != nil {
			zlog.Logger.Error().Err(cacheErr).Str("id", id.String()).Msg("failed to cache notification status")
		}
	}

	return status, nil
}

// CompleteChannel records that one channel reached a terminal state and
// marks the notification fully sent once the last channel completes.
// Transitions run through the notification commands so their events reach
// the realtime channel.
func (s *Service) CompleteChannel(ctx context.Context, id uuid.UUID, ch model.Channel, delivered bool) error {
	n, err := s.repo.GetNotification(ctx, id)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			// deleted mid-flight; nothing left to complete
			return nil
		}

		return fmt.Errorf("complete channel: %w", err)
	}

	sent, err := s.repo.CompleteChannel(ctx, id, ch, delivered)
	if err != nil {
		if errors.Is(err, notifrepo.ErrNotificationNotFound) {
			return nil
		}

		return fmt.Errorf("complete channel: %w", err)
	}

	// n holds the pre-update state, so the commands emit each event once
	now := time.Now()
	var events []model.Event
	if delivered {
		var evs []model.Event
		n, evs = n.MarkChannelSent(ch, now)
		events = append(events, evs...)
	}
	if sent {
		var evs []model.Event
		n, evs = n.MarkSent(now)
		events = append(events, evs...)
	}
	for _, ev := range events {
		s.hub.PublishEvent(n.RecipientID, ev)
	}

	if sent {
		if err := s.cache.SetWithRetry(ctx, s.strategy, id.String(), StatusSent); err != nil {
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to cache sent status")
		}
	}

	return nil
}

// authorize allows the recipient themselves or an admin. Directory
// failures fail closed.
func (s *Service) authorize(ctx context.Context, recipientID, requesterID uuid.UUID) error {
	if recipientID == requesterID {
		return nil
	}

	role, err := s.directory.Role(ctx, requesterID)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("requester_id", requesterID.String()).Msg("role lookup failed")
		return ErrForbidden
	}

	if role != directory.RoleAdmin {
		return ErrForbidden
	}

	return nil
}

func (s *Service) pushUnreadCount(ctx context.Context, recipientID uuid.UUID) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("recipient_id", recipientID.String()).Msg("failed to count unread")
		return
	}

	s.hub.PublishUnreadCount(recipientID, count)
}
