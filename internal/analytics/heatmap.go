package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gofintrack/internal/domain"
)

// Band is the intensity class of a heatmap cell.
type Band string

const (
	BandNone   Band = "none"
	BandLight  Band = "light"
	BandMedium Band = "medium"
	BandDark   Band = "dark"
)

var (
	lightUpperBound  = decimal.NewFromInt(500)
	mediumUpperBound = decimal.NewFromInt(2000)
)

// BandFor classifies a daily expense total.
func BandFor(total decimal.Decimal) Band {
	switch {
	case total.LessThanOrEqual(decimal.Zero):
		return BandNone
	case total.LessThan(lightUpperBound):
		return BandLight
	case total.LessThan(mediumUpperBound):
		return BandMedium
	default:
		return BandDark
	}
}

// HeatmapDay is the expense total of one calendar day.
type HeatmapDay struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
	Band  Band            `json:"band"`
}

// Heatmap returns one cell per calendar day from the day of the earliest
// expense through today, both taken in now's location. Expenses dated after
// today fall outside the range. Days without expenses are present with a zero
// total. No expenses means no cells.
func Heatmap(txs []*domain.Transaction, now time.Time) []HeatmapDay {
	loc := now.Location()
	totals := make(map[string]decimal.Decimal)

	var earliest time.Time
	found := false

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}

		d := tx.Date.In(loc)
		key := dayKey(d)
		totals[key] = totals[key].Add(tx.Amount)

		if !found || d.Before(earliest) {
			earliest = d
		}
		found = true
	}

	if !found {
		return []HeatmapDay{}
	}

	days := DayRange(earliest, now)
	out := make([]HeatmapDay, 0, len(days))

	for _, day := range days {
		total, ok := totals[dayKey(day)]
		if !ok {
			total = decimal.Zero
		}

		out = append(out, HeatmapDay{
			Date:  day,
			Total: total,
			Band:  BandFor(total),
		})
	}

	return out
}

// DayRange enumerates calendar midnights in start's location from start's day
// through end's day, inclusive. The result is empty when end falls on an
// earlier day than start. Days are built by calendar arithmetic, so DST
// transitions never skip or repeat a day.
func DayRange(start, end time.Time) []time.Time {
	loc := start.Location()
	first := startOfDay(start)
	last := startOfDay(end.In(loc))

	if last.Before(first) {
		return []time.Time{}
	}

	var days []time.Time
	y, m, d := first.Date()

	for i := 0; ; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		if day.After(last) {
			break
		}
		days = append(days, day)
	}

	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}
