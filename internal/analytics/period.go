package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

// MonthLabelLayout formats the label of a monthly bucket, e.g. "Mar 2024".
const MonthLabelLayout = "Jan 2006"

// PeriodAggregate holds income and expense totals of one calendar month.
type PeriodAggregate struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlyTotals buckets transactions by the month of their date in loc.
// Buckets are created in the order the snapshot first mentions them and the
// resulting sequence is reversed, so a newest-first snapshot yields
// oldest-first months. Months without transactions are not emitted.
func MonthlyTotals(txs []*domain.Transaction, loc *time.Location) []PeriodAggregate {
	if loc == nil {
		loc = time.UTC
	}

	var buckets []*PeriodAggregate
	byLabel := make(map[string]*PeriodAggregate)

	for _, tx := range txs {
		d := tx.Date.In(loc)
		label := d.Format(MonthLabelLayout)

		bucket, ok := byLabel[label]
		if !ok {
			bucket = &PeriodAggregate{
				Label:   label,
				Year:    d.Year(),
				Month:   d.Month(),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			byLabel[label] = bucket
			buckets = append(buckets, bucket)
		}

		switch tx.Type {
		case domain.TransactionTypeIncome:
			bucket.Income = bucket.Income.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			bucket.Expense = bucket.Expense.Add(tx.Amount)
		}
	}

	out := make([]PeriodAggregate, len(buckets))
	for i, bucket := range buckets {
		out[len(buckets)-1-i] = *bucket
	}

	return out
}
