package trainer

import "sync/atomic"

// Counter counts completed turns of one trainer and reports every
// interval-th turn as due for review. It lives in memory only, so a
// process restart starts the cadence over.
type Counter struct {
	interval int64
	n        atomic.Int64
}

// NewCounter returns a counter that is due every interval turns.
// Intervals below 1 are treated as 1.
func NewCounter(interval int) *Counter {
	if interval < 1 {
		interval = 1
	}
	return &Counter{interval: int64(interval)}
}

// Tick records one completed turn and returns its number.
func (c *Counter) Tick() (n int64, due bool) {
	n = c.n.Add(1)
	return n, n%c.interval == 0
}

// Count returns the number of turns recorded so far.
func (c *Counter) Count() int64 { return c.n.Load() }
