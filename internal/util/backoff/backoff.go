// Package backoff computes the delays used between download attempts.
package backoff

import (
	"math/rand/v2"
	"time"
)

// Policy holds the delay parameters for one run. The zero value sleeps
// nowhere, which is what tests want.
type Policy struct {
	// MinStartDelay and MaxStartDelay bound the uniform jitter applied
	// before a task's first attempt, spreading concurrent load.
	MinStartDelay time.Duration
	MaxStartDelay time.Duration

	// Unit is the base unit for retry waits. Production uses one second;
	// tests use zero to make retries instant.
	Unit time.Duration
}

// Default returns the production policy.
func Default() Policy {
	return Policy{
		MinStartDelay: 500 * time.Millisecond,
		MaxStartDelay: 2 * time.Second,
		Unit:          time.Second,
	}
}

// StartDelay returns a uniformly random delay in [MinStartDelay, MaxStartDelay).
func (p Policy) StartDelay() time.Duration {
	if p.MaxStartDelay <= p.MinStartDelay {
		return p.MinStartDelay
	}
	return p.MinStartDelay + rand.N(p.MaxStartDelay-p.MinStartDelay)
}

// RateLimitWait returns the exponential backoff for a rate-limited
// attempt: 2^attempt * (1 + rand[0,1)) units.
func (p Policy) RateLimitWait(attempt int) time.Duration {
	scale := float64(int64(1)<<attempt) * (1 + rand.Float64())
	return time.Duration(scale * float64(p.Unit))
}

// RetryWait returns the short delay for a generic transient failure:
// (1 + rand[0,1)) units.
func (p Policy) RetryWait() time.Duration {
	return time.Duration((1 + rand.Float64()) * float64(p.Unit))
}

// TimeoutWait returns the fixed delay applied after an invocation timeout.
func (p Policy) TimeoutWait() time.Duration {
	return 2 * p.Unit
}
