package backoff

import (
	"context"
	"math"
	"time"
)

// BackoffStrategy computes the next wait from the attempt count, the
// starting duration and the previous wait
type BackoffStrategy interface {
	GetBackoffDuration(count int, start, last time.Duration) time.Duration
}

// Backoff tracks a growing wait between retries of a failing operation
type Backoff struct {
	start    time.Duration
	limit    time.Duration
	count    int
	last     time.Duration
	next     time.Duration
	strategy BackoffStrategy
}

func NewBackoff(strategy BackoffStrategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

// NewExponential doubles the wait after every attempt, capped at limit
func NewExponential(start, limit time.Duration) *Backoff {
	return NewBackoff(exponential{}, start, limit)
}

// Reset clears the attempt count, the next wait starts over from start
func (b *Backoff) Reset() {
	b.count = 0
	b.last = 0
	b.next = b.getNextDuration()
}

// Backoff sleeps for the current wait or until ctx is canceled, whichever
// comes first. Returns ctx.Err when the sleep was interrupted
func (b *Backoff) Backoff(ctx context.Context) error {
	t := time.NewTimer(b.next)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	b.count++
	b.last = b.next
	b.next = b.getNextDuration()
	return nil
}

func (b *Backoff) getNextDuration() time.Duration {
	next := b.strategy.GetBackoffDuration(b.count, b.start, b.last)
	if b.limit > 0 && next > b.limit {
		next = b.limit
	}
	return next
}

type exponential struct{}

func (exponential) GetBackoffDuration(count int, start, last time.Duration) time.Duration {
	if count == 0 || last <= 0 {
		return start
	}
	next := last * 2
	// doubling a huge wait wraps around, pin it instead
	if next < last {
		next = math.MaxInt64
	}
	return next
}
