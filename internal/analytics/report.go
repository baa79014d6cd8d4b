package analytics

import (
	"time"

	"github.com/iho/gofintrack/internal/domain"
)

// Report bundles every aggregate computed from one snapshot at one instant.
type Report struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Overview    Overview            `json:"overview"`
	Categories  []CategoryAggregate `json:"categories"`
	Monthly     []PeriodAggregate   `json:"monthly"`
	CashFlow    []CashFlowPoint     `json:"cash_flow"`
	Heatmap     []HeatmapDay        `json:"heatmap"`
	Insights    *InsightSummary     `json:"insights,omitempty"`
}

// Compute derives the full report. Calendar values use now's location.
func Compute(txs []*domain.Transaction, now time.Time) *Report {
	loc := now.Location()
	breakdown := CategoryBreakdown(txs)

	return &Report{
		GeneratedAt: now,
		Overview:    Summarize(txs),
		Categories:  breakdown,
		Monthly:     MonthlyTotals(txs, loc),
		CashFlow:    CashFlow(txs, loc),
		Heatmap:     Heatmap(txs, now),
		Insights:    Insights(txs, breakdown, loc),
	}
}
