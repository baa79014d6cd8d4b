package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
)

// TransactionUseCase handles transaction records: writes go through the
// database with an outbox event, reads return owner snapshots.
type TransactionUseCase struct {
	txManager  TransactionManager
	txRepo     TransactionRepository
	outboxRepo OutboxRepository
	versioner  SnapshotVersioner
	reports    Cache
	retrier    Retrier
	idGen      IDGenerator
	clock      Clock
	logger     zerolog.Logger
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	versioner SnapshotVersioner,
	retrier Retrier,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:  txManager,
		txRepo:     txRepo,
		outboxRepo: outboxRepo,
		versioner:  versioner,
		retrier:    retrier,
		idGen:      idGen,
		clock:      clock,
		logger:     logger,
	}
}

// WithReportCache lets the use case evict the owner's current cached report
// when the snapshot version cannot be bumped.
func (uc *TransactionUseCase) WithReportCache(cache Cache) *TransactionUseCase {
	uc.reports = cache
	return uc
}

// CreateTransactionInput represents input for recording a transaction.
type CreateTransactionInput struct {
	Date          time.Time
	OwnerID       string
	Type          domain.TransactionType
	Description   string
	Category      string
	PaymentMethod domain.PaymentMethod
	Note          string
	Amount        decimal.Decimal
}

// BrowseInput selects and orders an owner's transactions.
type BrowseInput struct {
	OwnerID  string
	Search   string
	Type     string
	Category string
	Sort     analytics.SortOrder
}

// CreateTransaction validates and stores a new record.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	record := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		OwnerID:       input.OwnerID,
		Type:          input.Type,
		Amount:        input.Amount,
		Description:   input.Description,
		Category:      input.Category,
		Date:          input.Date,
		CreatedAt:     time.Now().UTC(),
		PaymentMethod: input.PaymentMethod,
		Note:          input.Note,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	payload, err := eventPayload(domain.TransactionCreatedEvent{
		TransactionID: record.ID,
		OwnerID:       record.OwnerID,
		Type:          string(record.Type),
		Category:      record.Category,
		Amount:        record.Amount.String(),
		Date:          record.Date.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.txRepo.Create(ctx, tx, record); err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(ctx, tx, uc.newEvent(record, domain.EventTypeTransactionCreated, payload)); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.bumpVersion(ctx, record.OwnerID)

	return record, nil
}

// DeleteTransaction removes one of the owner's records.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}

	payload, err := eventPayload(domain.TransactionDeletedEvent{
		TransactionID: id,
		OwnerID:       ownerID,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err = uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		record, err := uc.txRepo.Delete(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(ctx, tx, uc.newEvent(record, domain.EventTypeTransactionDeleted, payload)); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.bumpVersion(ctx, ownerID)

	return nil
}

// GetTransaction returns a single record of the owner.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, ownerID, id)
}

// Snapshot returns all records of the owner, newest first.
func (uc *TransactionUseCase) Snapshot(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}

	return uc.txRepo.ListByOwner(ctx, ownerID)
}

// Browse filters, sorts and groups the owner's snapshot.
func (uc *TransactionUseCase) Browse(ctx context.Context, input BrowseInput) (analytics.BrowseResult, error) {
	snapshot, err := uc.Snapshot(ctx, input.OwnerID)
	if err != nil {
		return analytics.BrowseResult{}, err
	}

	order := input.Sort
	if order == "" {
		order = analytics.SortNewest
	}

	return analytics.Browse(snapshot, analytics.BrowseParams{
		Filter: analytics.FilterParams{
			Search:   input.Search,
			Type:     input.Type,
			Category: input.Category,
		},
		Order: order,
	}, uc.clock.Now()), nil
}

// Categories lists the categories the owner has used.
func (uc *TransactionUseCase) Categories(ctx context.Context, ownerID string) ([]string, error) {
	snapshot, err := uc.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return analytics.Categories(snapshot), nil
}

func (uc *TransactionUseCase) newEvent(record *domain.Transaction, eventType string, payload map[string]any) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   record.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     eventType,
		OwnerID:       record.OwnerID,
		Payload:       payload,
		CreatedAt:     time.Now().UTC(),
	}
}

// bumpVersion invalidates cached reports. The write is already committed, so
// a failed bump falls back to evicting the report cached under the current
// version.
func (uc *TransactionUseCase) bumpVersion(ctx context.Context, ownerID string) {
	if uc.versioner == nil {
		return
	}

	_, err := uc.versioner.Bump(ctx, ownerID)
	if err == nil {
		return
	}
	uc.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("failed to bump snapshot version")

	if uc.reports == nil {
		return
	}

	version, err := uc.versioner.Current(ctx, ownerID)
	if err != nil {
		uc.logger.Error().Err(err).Str("owner_id", ownerID).Msg("cached report may be stale until it expires")
		return
	}

	key := ReportKey(ownerID, version, uc.clock.Now())
	if err := uc.reports.Delete(ctx, key); err != nil {
		uc.logger.Error().Err(err).Str("key", key).Msg("failed to evict cached report")
	}
}

func eventPayload(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}
