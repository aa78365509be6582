// Package worker runs the delivery worker pool: it drains the delivery
// queue and drives each job through the channel dispatch handler.
package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/rabbitmq/queue"
	notifservice "github.com/soclink/notify/internal/service/notification"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks

type deliveryQueue interface {
	Consume(out chan<- queue.DeliveryJob, strategy retry.Strategy) error
}

type jobHandler interface {
	HandleJob(ctx context.Context, job queue.DeliveryJob)
	Cancel(ctx context.Context, job queue.DeliveryJob)
}

type statusService interface {
	Status(ctx context.Context, id uuid.UUID) (string, error)
}

// Dispatcher fans delivery jobs out over a fixed pool of workers.
type Dispatcher struct {
	queue   deliveryQueue
	handler jobHandler
	service statusService
}

func NewDispatcher(q deliveryQueue, h jobHandler, s statusService) *Dispatcher {
	return &Dispatcher{
		queue:   q,
		handler: h,
		service: s,
	}
}

// Run consumes the delivery queue until ctx is cancelled. Each worker
// pre-checks the notification status so jobs for deleted notifications
// are recorded as cancelled without touching the channel transport.
func (d *Dispatcher) Run(ctx context.Context, strategy retry.Strategy, workerCount int) {
	jobChan := make(chan queue.DeliveryJob)

	go func() {
		if err := d.queue.Consume(jobChan, strategy); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to consume delivery jobs")
		}
	}()

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			zlog.Logger.Printf("delivery worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("delivery worker-%d shutting down", id)
					return
				case job := <-jobChan:
					// a failed lookup must not drop the job: the handler
					// still records attempts and completes the channel
					status, err := d.service.Status(ctx, job.NotificationID)
					if err != nil {
						zlog.Logger.Printf("failed to get status for %s: %v", job.NotificationID, err)
					}

					if err == nil && status == notifservice.StatusCancelled {
						d.handler.Cancel(ctx, job)
						continue
					}

					d.handler.HandleJob(ctx, job)
				}
			}
		}(i)
	}

	<-ctx.Done()
	zlog.Logger.Print("delivery dispatcher stopped")
}
