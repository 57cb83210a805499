package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket limiter pacing provider
// calls at a fixed number of calls per second.
type RateLimiter struct {
	stopCh   chan struct{}
	tokens   int
	capacity int
	rate     int
	mu       sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing the specified calls per
// second. Non-positive rates fall back to 10 calls per second.
func NewRateLimiter(callsPerSecond int) *RateLimiter {
	if callsPerSecond <= 0 {
		callsPerSecond = 10
	}

	rl := &RateLimiter{
		tokens:   callsPerSecond,
		capacity: callsPerSecond,
		rate:     callsPerSecond,
		stopCh:   make(chan struct{}),
	}

	go rl.refill()

	return rl
}

// Wait blocks until a token is available or the context is canceled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// tryAcquire attempts to acquire a token without blocking.
func (rl *RateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// refill periodically adds tokens to the bucket.
func (rl *RateLimiter) refill() {
	ticker := time.NewTicker(time.Second / time.Duration(rl.rate))
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			if rl.tokens < rl.capacity {
				rl.tokens++
			}
			rl.mu.Unlock()
		}
	}
}

// Close stops the refill goroutine.
func (rl *RateLimiter) Close() {
	close(rl.stopCh)
}
