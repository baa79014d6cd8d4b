// Package amqp forwards transaction change events to a RabbitMQ exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/iho/gofintrack/internal/domain"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel used by Publisher.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher publishes outbox events to a durable topic exchange. The
// routing key is the event type, e.g. "transaction.created".
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	logger   zerolog.Logger
}

// NewPublisher dials url and declares exchange.
func NewPublisher(url, exchange string, logger zerolog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	p := newPublisher(ch, exchange, logger)
	p.conn = conn

	return p, nil
}

func newPublisher(ch channel, exchange string, logger zerolog.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}
}

// Publish sends the event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := json.Marshal(message{
		ID:            event.ID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		OwnerID:       event.OwnerID,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,      // exchange
		event.EventType, // routing key
		false,           // mandatory
		false,           // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.CreatedAt,
			Type:         event.EventType,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("exchange", p.exchange).
		Str("routing_key", event.EventType).
		Msg("event forwarded to AMQP")

	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type message struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	OwnerID       string         `json:"owner_id"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}
