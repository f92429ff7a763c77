package rabbitmq_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/init-pkg/quiz-import/internal/config"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// AmqpPublisher publishes JSON events to a durable topic exchange. The channel
// is not goroutine-safe, so publishes are serialized.
type AmqpPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *slog.Logger
}

// New returns a no-op publisher when no broker url is configured.
func New(cfg *config.Config, log *slog.Logger) (Publisher, error) {
	log = log.With("service", "RabbitMQPublisher")
	if cfg.Infrastructure.RabbitMQ.Url == "" {
		log.Warn("RabbitMQ url is empty, events are dropped")
		return NoopPublisher{}, nil
	}

	conn, err := amqp.Dial(cfg.Infrastructure.RabbitMQ.Url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	exchange := cfg.Infrastructure.RabbitMQ.Exchange
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange %s: %w", exchange, err)
	}

	return &AmqpPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

func (this *AmqpPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq marshal: %w", err)
	}

	this.mu.Lock()
	defer this.mu.Unlock()

	err = this.ch.PublishWithContext(ctx, this.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", routingKey, err)
	}

	this.log.Debug("Event published", "routing_key", routingKey)
	return nil
}

func (this *AmqpPublisher) Close() error {
	this.mu.Lock()
	defer this.mu.Unlock()

	if err := this.ch.Close(); err != nil {
		this.log.Warn("Failed to close channel", "error", err)
	}
	return this.conn.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
