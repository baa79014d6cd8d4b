package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gofintrack/internal/analytics"
	"github.com/iho/gofintrack/internal/domain"
)

// AnalyticsUseCase computes reports over owner snapshots and memoizes them
// per snapshot version and calendar day.
type AnalyticsUseCase struct {
	txRepo    TransactionRepository
	cache     Cache
	versioner SnapshotVersioner
	metrics   ReportMetrics
	clock     Clock
	logger    zerolog.Logger
	cacheTTL  time.Duration
}

// AnalyticsConfig holds the optional collaborators of AnalyticsUseCase.
// Without Cache or Versioner every report is computed directly.
type AnalyticsConfig struct {
	Cache     Cache
	Versioner SnapshotVersioner
	Metrics   ReportMetrics
	Clock     Clock
	Logger    zerolog.Logger
	CacheTTL  time.Duration
}

// NewAnalyticsUseCase creates a new AnalyticsUseCase.
func NewAnalyticsUseCase(txRepo TransactionRepository, cfg AnalyticsConfig) *AnalyticsUseCase {
	if cfg.Clock == nil {
		cfg.Clock = NewLocalClock(time.UTC)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultReportCacheTTL
	}

	return &AnalyticsUseCase{
		txRepo:    txRepo,
		cache:     cfg.Cache,
		versioner: cfg.Versioner,
		metrics:   cfg.Metrics,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		cacheTTL:  cfg.CacheTTL,
	}
}

// Report returns every aggregate for the owner's current snapshot.
func (uc *AnalyticsUseCase) Report(ctx context.Context, ownerID string) (*analytics.Report, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}

	start := time.Now()
	now := uc.clock.Now()
	key, cacheable := uc.cacheKey(ctx, ownerID, now)

	if cacheable {
		if report, ok := uc.cached(ctx, key); ok {
			uc.observe(start, true)
			return report, nil
		}
	}

	snapshot, err := uc.txRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := analytics.Compute(snapshot, now)

	if cacheable {
		uc.store(ctx, key, report)
	}

	uc.observe(start, false)

	return report, nil
}

// ReportKey is the cache key of an owner's report for one snapshot version
// and calendar day.
func ReportKey(ownerID string, version int64, day time.Time) string {
	return fmt.Sprintf("report:%s:%d:%s", ownerID, version, day.Format(time.DateOnly))
}

func (uc *AnalyticsUseCase) cacheKey(ctx context.Context, ownerID string, now time.Time) (string, bool) {
	if uc.cache == nil || uc.versioner == nil {
		return "", false
	}

	version, err := uc.versioner.Current(ctx, ownerID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("snapshot version unavailable, computing report directly")
		return "", false
	}

	return ReportKey(ownerID, version, now), true
}

func (uc *AnalyticsUseCase) cached(ctx context.Context, key string) (*analytics.Report, bool) {
	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return nil, false
	}

	var report analytics.Report
	if err := json.Unmarshal(data, &report); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached report")
		return nil, false
	}

	return &report, true
}

func (uc *AnalyticsUseCase) store(ctx context.Context, key string, report *analytics.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to encode report")
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}

func (uc *AnalyticsUseCase) observe(start time.Time, hit bool) {
	if uc.metrics != nil {
		uc.metrics.ObserveReport(time.Since(start), hit)
	}
}
