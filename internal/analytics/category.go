package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// CategoryAggregate is the expense total of one category and its share of
// all expenses in percent, rounded to one decimal place.
type CategoryAggregate struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CategoryBreakdown groups expenses by category, largest total first.
// Categories with equal totals keep the order in which they first appear.
func CategoryBreakdown(txs []*domain.Transaction) []CategoryAggregate {
	var (
		order  []string
		totals = make(map[string]decimal.Decimal)
		total  = decimal.Zero
	)

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}

		if _, seen := totals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}

		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	out := make([]CategoryAggregate, 0, len(order))
	for _, category := range order {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = totals[category].Div(total).Mul(hundred).Round(1)
		}

		out = append(out, CategoryAggregate{
			Category:   category,
			Total:      totals[category],
			Percentage: pct,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})

	return out
}
