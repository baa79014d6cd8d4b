package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	OwnerID       string             `json:"owner_id"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	Published     bool               `json:"published"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
}

type Transaction struct {
	ID            string             `json:"id"`
	OwnerID       string             `json:"owner_id"`
	Type          string             `json:"type"`
	Amount        pgtype.Numeric     `json:"amount"`
	Description   string             `json:"description"`
	Category      string             `json:"category"`
	PaymentMethod string             `json:"payment_method"`
	Note          string             `json:"note"`
	Date          pgtype.Timestamptz `json:"date"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}
