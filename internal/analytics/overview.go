package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

// Overview is the headline summary of a snapshot.
type Overview struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// Summarize totals income and expense. Balance is income minus expense.
func Summarize(txs []*domain.Transaction) Overview {
	o := Overview{Income: decimal.Zero, Expense: decimal.Zero, Count: len(txs)}

	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			o.Income = o.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			o.Expense = o.Expense.Add(tx.Amount)
		}
	}

	o.Balance = o.Income.Sub(o.Expense)

	return o
}
