package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain Prometheus metrics.
type Metrics struct {
	// Analytics metrics
	ReportDuration *prometheus.HistogramVec
	ReportRequests *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec

	// Streaming metrics
	StreamClients prometheus.Gauge
	StreamPushes  prometheus.Counter

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates the metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fintrack_report_duration_seconds",
				Help:    "Time to produce an analytics report",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"cache"},
		),
		ReportRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_report_requests_total",
				Help: "Total analytics reports served by cache outcome",
			},
			[]string{"cache"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fintrack_events_published_total",
				Help: "Outbox events handed to publishers by event type and status",
			},
			[]string{"event_type", "status"},
		),

		StreamClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fintrack_stream_clients",
			Help: "Current number of connected analytics stream clients",
		}),
		StreamPushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_stream_pushes_total",
			Help: "Total reports pushed to stream clients",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fintrack_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

func cacheLabel(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// ObserveReport records how long a report took and whether it came from
// the cache.
func (m *Metrics) ObserveReport(duration time.Duration, cacheHit bool) {
	label := cacheLabel(cacheHit)
	m.ReportDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.ReportRequests.WithLabelValues(label).Inc()
}

// ObservePublish records the outcome of publishing one outbox event.
func (m *Metrics) ObservePublish(eventType string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, status).Inc()
}

// StreamOpened tracks a new stream client.
func (m *Metrics) StreamOpened() { m.StreamClients.Inc() }

// StreamClosed tracks a stream client leaving.
func (m *Metrics) StreamClosed() { m.StreamClients.Dec() }

// StreamPushed counts a report pushed to a stream client.
func (m *Metrics) StreamPushed() { m.StreamPushes.Inc() }

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited() { m.RateLimitHits.Inc() }
