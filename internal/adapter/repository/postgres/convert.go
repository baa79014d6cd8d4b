package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/usecase"
)

var errForeignTransaction = errors.New("postgres: transaction was not started by TxManager")

// pgxTx unwraps a usecase.Transaction created by TxManager.
func pgxTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, errForeignTransaction
	}

	return t, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil || n.NaN {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
