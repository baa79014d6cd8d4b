package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gofintrack/internal/domain"
	"github.com/iho/gofintrack/internal/infrastructure/postgres/generated"
	"github.com/iho/gofintrack/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts a record within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) error {
	t, err := pgxTx(tx)
	if err != nil {
		return err
	}

	return r.queries.WithTx(t.PgxTx()).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:            record.ID,
		OwnerID:       record.OwnerID,
		Type:          string(record.Type),
		Amount:        decimalToNumeric(record.Amount),
		Description:   record.Description,
		Category:      record.Category,
		PaymentMethod: string(record.PaymentMethod),
		Note:          record.Note,
		Date:          timeToPgTimestamptz(record.Date),
		CreatedAt:     timeToPgTimestamptz(record.CreatedAt),
	})
}

// Delete removes an owner's record within a transaction and returns it.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, ownerID, id string) (*domain.Transaction, error) {
	t, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	row, err := r.queries.WithTx(t.PgxTx()).DeleteTransaction(ctx, generated.DeleteTransactionParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// GetByID retrieves one of the owner's records.
func (r *TransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, generated.GetTransactionParams{
		OwnerID: ownerID,
		ID:      id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// ListByOwner returns the owner's snapshot, newest first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToTransaction(row))
	}

	return records, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		Type:          domain.TransactionType(row.Type),
		Amount:        numericToDecimal(row.Amount),
		Description:   row.Description,
		Category:      row.Category,
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		Note:          row.Note,
		Date:          row.Date.Time,
		CreatedAt:     row.CreatedAt.Time,
	}
}
