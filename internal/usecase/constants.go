package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. Settlement writes hold a row lock on the entry, so they
	// must not linger.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IntegrityCacheTTL bounds how stale a cached integrity report may be.
	IntegrityCacheTTL = time.Minute
)

const integrityCacheKey = "integrity:overshot"
