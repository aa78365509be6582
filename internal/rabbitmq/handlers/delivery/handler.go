// Package delivery executes delivery jobs pulled off the queue: one
// notification on one channel, retried in place with exponential backoff
// until the attempt budget runs out or the outcome is terminal.
package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/channel"
	"github.com/soclink/notify/internal/model"
	"github.com/soclink/notify/internal/rabbitmq/queue"
	notifservice "github.com/soclink/notify/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/handlers/delivery/mock.go -package=mocks

type dispatchService interface {
	Status(ctx context.Context, id uuid.UUID) (string, error)
	CompleteChannel(ctx context.Context, id uuid.UUID, ch model.Channel, delivered bool) error
}

type attemptLog interface {
	Record(ctx context.Context, a model.DeliveryAttempt) (int64, error)
	LatestAttempt(ctx context.Context, notificationID uuid.UUID, ch model.Channel) (int, error)
}

// Handler drives one delivery job to a terminal state.
type Handler struct {
	service  dispatchService
	attempts attemptLog
	senders  map[model.Channel]channel.Sender
	strategy retry.Strategy
	maxDelay time.Duration
}

// NewHandler builds a Handler over the configured channel senders.
func NewHandler(
	svc dispatchService,
	attempts attemptLog,
	senders map[model.Channel]channel.Sender,
	strategy retry.Strategy,
	maxDelay time.Duration,
) *Handler {
	return &Handler{
		service:  svc,
		attempts: attempts,
		senders:  senders,
		strategy: strategy,
		maxDelay: maxDelay,
	}
}

// HandleJob sends the job's notification over its channel, appending one
// delivery attempt row per try. Transient failures retry with capped
// exponential backoff; permanent failures and cancellations stop
// immediately. The channel always completes exactly once.
func (h *Handler) HandleJob(ctx context.Context, job queue.DeliveryJob) {
	sender, ok := h.senders[job.Channel]
	if !ok {
		zlog.Logger.Error().
			Str("id", job.NotificationID.String()).
			Str("channel", string(job.Channel)).
			Msg("no sender configured for channel")

		h.record(ctx, job, h.baseAttempt(ctx, job)+1, model.DeliveryRejected, "config", "channel not configured", "")
		h.complete(ctx, job, false)
		return
	}

	maxAttempts := h.strategy.Attempts
	if maxAttempts <= 0 || job.Channel == model.ChannelInApp {
		// in-app publish either reaches the hub or the recipient is
		// offline; repeating it would only duplicate the message
		maxAttempts = 1
	}

	// a redelivered job continues numbering where the last run stopped
	base := h.baseAttempt(ctx, job)

	delay := h.strategy.Delay
	msg := job.Message()

	for try := 1; try <= maxAttempts; try++ {
		attempt := base + try
		status, err := h.service.Status(ctx, job.NotificationID)
		if err != nil {
			zlog.Logger.Warn().Err(err).
				Str("id", job.NotificationID.String()).
				Msg("status check failed, proceeding with send")
		} else if status == notifservice.StatusCancelled {
			h.Cancel(ctx, job)
			return
		}

		outcome := sender.Send(ctx, msg)

		switch outcome.Class {
		case channel.ClassDelivered:
			h.record(ctx, job, attempt, model.DeliveryDelivered, "", "", outcome.ProviderID)
			h.complete(ctx, job, true)
			return

		case channel.ClassPermanent:
			zlog.Logger.Warn().
				Str("id", job.NotificationID.String()).
				Str("channel", string(job.Channel)).
				Str("reason", outcome.Reason).
				Msg("permanent delivery failure")

			h.record(ctx, job, attempt, model.DeliveryRejected, "permanent", outcome.Reason, "")
			h.complete(ctx, job, false)
			return
		}

		h.record(ctx, job, attempt, model.DeliveryFailed, "transient", outcome.Reason, "")

		if try == maxAttempts {
			zlog.Logger.Error().
				Str("id", job.NotificationID.String()).
				Str("channel", string(job.Channel)).
				Int("attempts", attempt).
				Msg("delivery failed, attempt budget exhausted")

			h.complete(ctx, job, false)
			return
		}

		zlog.Logger.Info().
			Str("id", job.NotificationID.String()).
			Str("channel", string(job.Channel)).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("transient delivery failure, retrying")

		select {
		case <-ctx.Done():
			h.record(ctx, job, attempt+1, model.DeliveryCancelled, "", "worker shutting down", "")
			return
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * h.strategy.Backoff)
		if h.maxDelay > 0 && delay > h.maxDelay {
			delay = h.maxDelay
		}
	}
}

// Cancel records that the job was abandoned because its notification was
// deleted before delivery finished.
func (h *Handler) Cancel(ctx context.Context, job queue.DeliveryJob) {
	zlog.Logger.Info().
		Str("id", job.NotificationID.String()).
		Str("channel", string(job.Channel)).
		Msg("notification deleted, cancelling delivery")

	h.record(ctx, job, h.baseAttempt(ctx, job)+1, model.DeliveryCancelled, "", "notification deleted", "")
}

func (h *Handler) baseAttempt(ctx context.Context, job queue.DeliveryJob) int {
	base, err := h.attempts.LatestAttempt(ctx, job.NotificationID, job.Channel)
	if err != nil {
		zlog.Logger.Warn().Err(err).
			Str("id", job.NotificationID.String()).
			Str("channel", string(job.Channel)).
			Msg("failed to read latest attempt number")
		return 0
	}

	return base
}

func (h *Handler) record(ctx context.Context, job queue.DeliveryJob, attempt int, status model.DeliveryStatus, code, message, providerID string) {
	now := time.Now()

	a := model.DeliveryAttempt{
		NotificationID: job.NotificationID,
		Channel:        job.Channel,
		Recipient:      job.Address,
		Status:         status,
		Attempt:        attempt,
		ErrorCode:      code,
		ErrorMessage:   message,
		ProviderID:     providerID,
	}

	switch status {
	case model.DeliveryDelivered:
		a.SentAt = &now
		a.DeliveredAt = &now
	case model.DeliveryFailed, model.DeliveryRejected:
		a.FailedAt = &now
	}

	if _, err := h.attempts.Record(ctx, a); err != nil {
		zlog.Logger.Error().Err(err).
			Str("id", job.NotificationID.String()).
			Str("channel", string(job.Channel)).
			Msg("failed to record delivery attempt")
	}
}

func (h *Handler) complete(ctx context.Context, job queue.DeliveryJob, delivered bool) {
	if err := h.service.CompleteChannel(ctx, job.NotificationID, job.Channel, delivered); err != nil {
		zlog.Logger.Error().Err(err).
			Str("id", job.NotificationID.String()).
			Str("channel", string(job.Channel)).
			Msg("failed to complete channel")
	}
}
