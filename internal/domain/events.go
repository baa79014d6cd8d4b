package domain

import "time"

// Event types
const (
	EventTypeTransactionCreated = "transaction.created"
	EventTypeTransactionDeleted = "transaction.deleted"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	OwnerID       string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionCreatedEvent payload
type TransactionCreatedEvent struct {
	TransactionID string `json:"transaction_id"`
	OwnerID       string `json:"owner_id"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
}

// TransactionDeletedEvent payload
type TransactionDeletedEvent struct {
	TransactionID string `json:"transaction_id"`
	OwnerID       string `json:"owner_id"`
}

// ChangeNotification is broadcast to live subscribers of an owner's data.
type ChangeNotification struct {
	OwnerID       string    `json:"owner_id"`
	EventType     string    `json:"event_type"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
