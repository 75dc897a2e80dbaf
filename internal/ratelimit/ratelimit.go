// Package ratelimit provides a context-aware token bucket used to pace
// requests against the remote API.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Bucket is a token bucket limiter. Tokens refill continuously at a fixed
// rate up to the bucket capacity; each request consumes one token.
// All methods are safe for concurrent use.
type Bucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	refillRate float64 // tokens per second
	last       time.Time
}

// NewBucket creates a full bucket allowing bursts of up to capacity
// requests and a sustained rate of refillPerSec requests per second.
func NewBucket(capacity int, refillPerSec float64) *Bucket {
	if capacity < 1 {
		capacity = 1
	}
	return &Bucket{
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillPerSec,
		last:       time.Now(),
	}
}

// Allow consumes a token if one is available.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(time.Now())
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or the context is done.
func (b *Bucket) Wait(ctx context.Context) error {
	for {
		b.mu.Lock()
		now := time.Now()
		b.refillLocked(now)
		if b.tokens >= 1 {
			b.tokens--
			b.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
		b.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// refillLocked adds tokens for the time elapsed since the last refill.
// Caller must hold b.mu.
func (b *Bucket) refillLocked(now time.Time) {
	elapsed := now.Sub(b.last).Seconds()
	if elapsed <= 0 {
		return
	}
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now
}
