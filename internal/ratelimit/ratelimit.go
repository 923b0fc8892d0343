// Package ratelimit throttles requests per key. The Redis limiter shares its
// counters across API instances; the memory limiter serves single-process
// deployments and tests.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more request for key is admitted. When it is
// not, the returned duration tells the caller when to retry.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// Config is a fixed number of requests per window.
type Config struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether throttling is configured at all.
func (c Config) Enabled() bool {
	return c.Limit > 0 && c.Window > 0
}
