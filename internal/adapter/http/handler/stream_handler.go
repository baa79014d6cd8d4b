package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/gofintrack/internal/usecase"
)

// DefaultHeartbeat is how often an idle stream sends a comment line.
const DefaultHeartbeat = 15 * time.Second

// StreamObserver records stream activity.
type StreamObserver interface {
	StreamOpened()
	StreamClosed()
	StreamPushed()
}

type noopStreamObserver struct{}

func (noopStreamObserver) StreamOpened() {}
func (noopStreamObserver) StreamClosed() {}
func (noopStreamObserver) StreamPushed() {}

// StreamHandler pushes a fresh report to the client on connect and after
// every change to the owner's transactions.
type StreamHandler struct {
	reports    ReportService
	subscriber usecase.ChangeSubscriber
	observer   StreamObserver
	heartbeat  time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewStreamHandler creates a new StreamHandler. observer may be nil.
func NewStreamHandler(reports ReportService, subscriber usecase.ChangeSubscriber, observer StreamObserver) *StreamHandler {
	if observer == nil {
		observer = noopStreamObserver{}
	}
	return &StreamHandler{
		reports:    reports,
		subscriber: subscriber,
		observer:   observer,
		heartbeat:  DefaultHeartbeat,
		done:       make(chan struct{}),
	}
}

// Shutdown ends every open stream. http.Server.Shutdown does not cancel
// running requests, so register it with RegisterOnShutdown.
func (h *StreamHandler) Shutdown() {
	h.stopOnce.Do(func() { close(h.done) })
}

// WithHeartbeat overrides the heartbeat interval.
func (h *StreamHandler) WithHeartbeat(d time.Duration) *StreamHandler {
	if d > 0 {
		h.heartbeat = d
	}
	return h
}

// Stream handles GET /api/v1/analytics/stream
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	ctx := r.Context()

	sub, err := h.subscriber.Subscribe(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to subscribe to changes")
		writeError(w, http.StatusServiceUnavailable, "stream unavailable", "failed to subscribe to changes")
		return
	}
	defer sub.Close()

	rc := http.NewResponseController(w)
	// The server write timeout would otherwise cut long-lived streams.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Warn().Err(err).Msg("failed to clear write deadline")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	h.observer.StreamOpened()
	defer h.observer.StreamClosed()

	if !h.push(ctx, w, rc, ownerID) {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			return
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
			if !h.push(ctx, w, rc, ownerID) {
				return
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil {
				return
			}
			if err := flush(rc); err != nil {
				return
			}
		}
	}
}

// push writes one report event. It reports false once the client is gone.
func (h *StreamHandler) push(ctx context.Context, w io.Writer, rc *http.ResponseController, ownerID string) bool {
	event, data := "report", []byte(nil)

	report, err := h.reports.Report(ctx, ownerID)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Error().Err(err).Str("owner_id", ownerID).Msg("failed to compute streamed report")
		event = "error"
		data, _ = json.Marshal(map[string]string{"error": "failed to compute report"})
	} else if data, err = json.Marshal(report); err != nil {
		log.Error().Err(err).Msg("failed to encode streamed report")
		return false
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return false
	}
	if err := flush(rc); err != nil {
		return false
	}

	if event == "report" {
		h.observer.StreamPushed()
	}
	return true
}

func flush(rc *http.ResponseController) error {
	if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	return nil
}
