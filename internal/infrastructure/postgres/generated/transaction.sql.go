package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, owner_id, type, amount, description, category, payment_method, note, date, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

type CreateTransactionParams struct {
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

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.OwnerID,
		arg.Type,
		arg.Amount,
		arg.Description,
		arg.Category,
		arg.PaymentMethod,
		arg.Note,
		arg.Date,
		arg.CreatedAt,
	)
	return err
}

const deleteTransaction = `-- name: DeleteTransaction :one
DELETE FROM transactions
WHERE owner_id = $1 AND id = $2
RETURNING id, owner_id, type, amount, description, category, payment_method, note, date, created_at
`

type DeleteTransactionParams struct {
	OwnerID string `json:"owner_id"`
	ID      string `json:"id"`
}

func (q *Queries) DeleteTransaction(ctx context.Context, arg DeleteTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, deleteTransaction, arg.OwnerID, arg.ID)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Type,
		&i.Amount,
		&i.Description,
		&i.Category,
		&i.PaymentMethod,
		&i.Note,
		&i.Date,
		&i.CreatedAt,
	)
	return i, err
}

const getTransaction = `-- name: GetTransaction :one
SELECT id, owner_id, type, amount, description, category, payment_method, note, date, created_at FROM transactions
WHERE owner_id = $1 AND id = $2
`

type GetTransactionParams struct {
	OwnerID string `json:"owner_id"`
	ID      string `json:"id"`
}

func (q *Queries) GetTransaction(ctx context.Context, arg GetTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransaction, arg.OwnerID, arg.ID)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Type,
		&i.Amount,
		&i.Description,
		&i.Category,
		&i.PaymentMethod,
		&i.Note,
		&i.Date,
		&i.CreatedAt,
	)
	return i, err
}

const listTransactionsByOwner = `-- name: ListTransactionsByOwner :many
SELECT id, owner_id, type, amount, description, category, payment_method, note, date, created_at FROM transactions
WHERE owner_id = $1
ORDER BY date DESC, created_at DESC
`

func (q *Queries) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.Type,
			&i.Amount,
			&i.Description,
			&i.Category,
			&i.PaymentMethod,
			&i.Note,
			&i.Date,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
