// Package queue declares the RabbitMQ topology for channel delivery work:
// one durable main queue consumed by the dispatch workers, a retry queue
// that dead-letters back into the main queue after a TTL, and a DLQ for
// jobs the workers gave up on.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/channel"
	"github.com/soclink/notify/internal/config"
	"github.com/soclink/notify/internal/model"
)

// DeliveryJob is one unit of dispatch work: a single notification on a
// single channel. The dispatcher publishes one job per eligible channel,
// so channels fail and retry independently.
type DeliveryJob struct {
	NotificationID uuid.UUID      `json:"notification_id"`
	RecipientID    uuid.UUID      `json:"recipient_id"`
	Channel        model.Channel  `json:"channel"`
	Address        string         `json:"address"`
	Category       model.Category `json:"category"`
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	ActionURL      string         `json:"action_url,omitempty"`
	Priority       model.Priority `json:"priority"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	EnqueuedAt     time.Time      `json:"enqueued_at"`
}

// Message converts the job into the channel-independent sender payload.
func (j DeliveryJob) Message() channel.Message {
	return channel.Message{
		NotificationID: j.NotificationID,
		RecipientID:    j.RecipientID,
		Category:       j.Category,
		Title:          j.Title,
		Body:           j.Body,
		ActionURL:      j.ActionURL,
		Priority:       j.Priority,
		Address:        j.Address,
		Metadata:       j.Metadata,
	}
}

// DeliveryQueue wraps the publisher and consumer bound to the delivery
// exchange.
type DeliveryQueue struct {
	Publisher  *rabbitmq.Publisher
	Consumer   *rabbitmq.Consumer
	routingKey string
}

// NewDeliveryQueue declares the exchange and the main/retry/DLQ queues
// and binds them to the given channel.
func NewDeliveryQueue(ch *rabbitmq.Channel, cfg *config.Config) (*DeliveryQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.RabbitMQ.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(cfg.RabbitMQ.DLQ, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.Queue,
		"x-message-ttl":             int32(cfg.RabbitMQ.Pause.Milliseconds()),
	}

	_, err = qm.DeclareQueue(cfg.RabbitMQ.RetryQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.DLQ,
	}

	mainQ, err := qm.DeclareQueue(cfg.RabbitMQ.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, cfg.RabbitMQ.RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &DeliveryQueue{Publisher: pub, Consumer: cons, routingKey: cfg.RabbitMQ.RoutingKey}, nil
}

// Publish enqueues one delivery job.
func (q *DeliveryQueue) Publish(job DeliveryJob, strategy retry.Strategy) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, q.routingKey, "application/json", strategy)
}

// Consume decodes delivery jobs into the out channel until the consumer
// stops.
func (q *DeliveryQueue) Consume(out chan<- DeliveryJob, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var job DeliveryJob
			if err := json.Unmarshal(m, &job); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal delivery job")
				continue
			}

			out <- job
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
