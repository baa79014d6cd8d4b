package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultReportCacheTTL bounds how long a computed report is reused
	DefaultReportCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
