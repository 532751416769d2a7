package counter

import "sync/atomic"

// Counter is a concurrency safe tally
type Counter struct {
	count int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Add(val int) {
	atomic.AddInt64(&c.count, int64(val))
}

func (c *Counter) Count() int {
	return int(atomic.LoadInt64(&c.count))
}
