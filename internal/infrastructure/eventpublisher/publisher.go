package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/usecase"
)

// EventPublisher drains the transaction outbox into change publishers.
type EventPublisher struct {
	outboxRepo      usecase.OutboxRepository
	publisher       Publisher
	observer        Observer
	logger          zerolog.Logger
	batchSize       int
	interval        time.Duration
	retention       time.Duration
	cleanupInterval time.Duration
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Observer is notified of every publish attempt.
type Observer interface {
	ObservePublish(eventType string, err error)
}

// Config for EventPublisher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Observer   Observer // optional
	Logger     zerolog.Logger
	BatchSize  int           // Number of events to fetch per batch
	Interval   time.Duration // Polling interval
	// Retention is how long published events are kept. Zero keeps them.
	Retention       time.Duration
	CleanupInterval time.Duration
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = time.Second
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Hour
	}

	return &EventPublisher{
		outboxRepo:      cfg.OutboxRepo,
		publisher:       cfg.Publisher,
		observer:        cfg.Observer,
		logger:          cfg.Logger,
		batchSize:       cfg.BatchSize,
		interval:        cfg.Interval,
		retention:       cfg.Retention,
		cleanupInterval: cfg.CleanupInterval,
	}
}

// Start begins the event publishing worker.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Dur("retention", ep.retention).
		Msg("event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(ep.cleanupInterval)
	defer cleanup.Stop()

	// Process immediately on start
	if err := ep.processEvents(ctx); err != nil {
		ep.logger.Error().Err(err).Msg("error processing events on start")
	}

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := ep.processEvents(ctx); err != nil {
				ep.logger.Error().Err(err).Msg("error processing events")
			}
		case <-cleanup.C:
			if err := ep.cleanup(ctx, time.Now()); err != nil {
				ep.logger.Error().Err(err).Msg("error deleting published events")
			}
		}
	}
}

// processEvents fetches and publishes a batch of unpublished events.
func (ep *EventPublisher) processEvents(ctx context.Context) error {
	events, err := ep.outboxRepo.GetUnpublished(ctx, ep.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	ep.logger.Debug().Int("count", len(events)).Msg("processing events")

	for _, event := range events {
		if err := ep.publishEvent(ctx, event); err != nil {
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			// Left unpublished; the next poll retries it.
			continue
		}

		if err := ep.outboxRepo.MarkPublished(ctx, event.ID, time.Now()); err != nil {
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark event as published")
		}
	}

	return nil
}

// publishEvent publishes a single event.
func (ep *EventPublisher) publishEvent(ctx context.Context, event *domain.OutboxEvent) error {
	err := ep.publisher.Publish(ctx, event)
	if ep.observer != nil {
		ep.observer.ObservePublish(event.EventType, err)
	}
	if err != nil {
		return err
	}

	ep.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("owner_id", event.OwnerID).
		Msg("event published")

	return nil
}

func (ep *EventPublisher) cleanup(ctx context.Context, now time.Time) error {
	if ep.retention <= 0 {
		return nil
	}

	return ep.outboxRepo.DeletePublished(ctx, now.Add(-ep.retention))
}

// FanOut publishes every event to all of its publishers. An event counts as
// published only when every publisher accepted it.
type FanOut []Publisher

// Publish implements Publisher.
func (f FanOut) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(_ context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("change event")

	return nil
}
