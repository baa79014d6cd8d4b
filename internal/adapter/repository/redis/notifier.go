package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/usecase"
)

// ChangeChannel returns the pub/sub channel that carries an owner's change
// notifications.
func ChangeChannel(ownerID string) string {
	return "fintrack:changes:" + ownerID
}

var errMissingOwner = errors.New("redis: event has no owner")

// ChangeNotifier broadcasts snapshot changes over Redis pub/sub.
type ChangeNotifier struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewChangeNotifier creates a new ChangeNotifier.
func NewChangeNotifier(client *redis.Client, logger zerolog.Logger) *ChangeNotifier {
	return &ChangeNotifier{client: client, logger: logger}
}

// Publish announces an outbox event on the owner's channel.
func (n *ChangeNotifier) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	if event.OwnerID == "" {
		return errMissingOwner
	}

	data, err := json.Marshal(domain.ChangeNotification{
		OwnerID:       event.OwnerID,
		EventType:     event.EventType,
		TransactionID: event.AggregateID,
		OccurredAt:    event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, ChangeChannel(event.OwnerID), data).Err()
}

// Subscribe listens for the owner's change notifications until the returned
// subscription is closed or ctx ends.
func (n *ChangeNotifier) Subscribe(ctx context.Context, ownerID string) (usecase.ChangeSubscription, error) {
	pubsub := n.client.Subscribe(ctx, ChangeChannel(ownerID))

	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan domain.ChangeNotification),
		done:   make(chan struct{}),
	}

	go sub.forward(ctx, n.logger)

	return sub, nil
}

// Subscription is an open change-notification stream for one owner.
type Subscription struct {
	pubsub *redis.PubSub
	events chan domain.ChangeNotification
	done   chan struct{}
	once   sync.Once
}

// Events returns the notification channel. It is closed when the
// subscription ends.
func (s *Subscription) Events() <-chan domain.ChangeNotification {
	return s.events
}

// Close stops the subscription.
func (s *Subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})

	return err
}

func (s *Subscription) forward(ctx context.Context, logger zerolog.Logger) {
	defer close(s.events)

	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var notification domain.ChangeNotification
			if err := json.Unmarshal([]byte(msg.Payload), &notification); err != nil {
				logger.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping malformed change notification")
				continue
			}

			select {
			case s.events <- notification:
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}
	}
}
