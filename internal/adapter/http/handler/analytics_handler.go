package handler

import (
	"context"
	"net/http"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/analytics"
)

// ReportService produces the analytics report for one owner.
type ReportService interface {
	Report(ctx context.Context, ownerID string) (*analytics.Report, error)
}

// AnalyticsHandler serves the analytics report and its sections.
type AnalyticsHandler struct {
	reports ReportService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(reports ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{reports: reports}
}

// Report handles GET /api/v1/analytics
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return rep })
}

// Overview handles GET /api/v1/analytics/overview
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return rep.Overview })
}

// Categories handles GET /api/v1/analytics/categories
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return nonNil(rep.Categories) })
}

// Monthly handles GET /api/v1/analytics/monthly
func (h *AnalyticsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return nonNil(rep.Monthly) })
}

// CashFlow handles GET /api/v1/analytics/cashflow
func (h *AnalyticsHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return nonNil(rep.CashFlow) })
}

// Heatmap handles GET /api/v1/analytics/heatmap
func (h *AnalyticsHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any { return nonNil(rep.Heatmap) })
}

// Insights handles GET /api/v1/analytics/insights
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *analytics.Report) any {
		return dto.InsightsResponse{Insights: rep.Insights}
	})
}

func (h *AnalyticsHandler) serve(w http.ResponseWriter, r *http.Request, pick func(*analytics.Report) any) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Report(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, "failed to compute report", err)
		return
	}

	writeJSON(w, http.StatusOK, pick(report))
}

// nonNil keeps empty sections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
