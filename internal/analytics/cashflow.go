package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

// DayLabelLayout formats cash flow point labels, e.g. "Mar 05".
const DayLabelLayout = "Jan 02"

// CashFlowPoint is the running balance right after one transaction.
type CashFlowPoint struct {
	Date    time.Time              `json:"date"`
	Label   string                 `json:"label"`
	Type    domain.TransactionType `json:"type"`
	Amount  decimal.Decimal        `json:"amount"`
	Balance decimal.Decimal        `json:"balance"`
}

// CashFlow replays transactions in ascending date order, starting from a
// zero balance, and emits one point per transaction. Transactions sharing a
// date keep their snapshot order.
func CashFlow(txs []*domain.Transaction, loc *time.Location) []CashFlowPoint {
	if loc == nil {
		loc = time.UTC
	}

	ordered := make([]*domain.Transaction, len(txs))
	copy(ordered, txs)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	balance := decimal.Zero
	out := make([]CashFlowPoint, 0, len(ordered))

	for _, tx := range ordered {
		balance = balance.Add(tx.Signed())
		d := tx.Date.In(loc)

		out = append(out, CashFlowPoint{
			Date:    d,
			Label:   d.Format(DayLabelLayout),
			Type:    tx.Type,
			Amount:  tx.Amount,
			Balance: balance,
		})
	}

	return out
}
