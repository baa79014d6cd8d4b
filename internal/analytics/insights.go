package analytics

import (
	"time"

	"github.com/iho/gofintrack/internal/domain"
)

// Time-of-day buckets for PeakTime.
const (
	PeriodMorning   = "Morning"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
)

const maxTopCategories = 3

// InsightSummary highlights spending habits. MostActiveDay and PeakTime are
// nil when the snapshot holds no expenses.
type InsightSummary struct {
	TopCategories []CategoryAggregate `json:"top_categories"`
	MostActiveDay *Tally              `json:"most_active_day,omitempty"`
	PeakTime      *Tally              `json:"peak_time,omitempty"`
}

// Insights summarises expenses by weekday and time of day and picks the
// leading categories from breakdown. It returns nil for an empty snapshot.
func Insights(txs []*domain.Transaction, breakdown []CategoryAggregate, loc *time.Location) *InsightSummary {
	if len(txs) == 0 {
		return nil
	}

	if loc == nil {
		loc = time.UTC
	}

	n := min(len(breakdown), maxTopCategories)
	top := make([]CategoryAggregate, n)
	copy(top, breakdown[:n])

	days := newOrderedCounter()
	periods := newOrderedCounter()

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}

		d := tx.Date.In(loc)
		days.add(d.Weekday().String())
		periods.add(TimeOfDay(d.Hour()))
	}

	return &InsightSummary{
		TopCategories: top,
		MostActiveDay: days.top(),
		PeakTime:      periods.top(),
	}
}

// TimeOfDay maps an hour in [0, 24) to Morning, Afternoon or Evening.
func TimeOfDay(hour int) string {
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
