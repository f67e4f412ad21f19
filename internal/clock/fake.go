package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler for tests. Callbacks run on the
// goroutine calling Advance or FireNext.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*fakeTimer
	delays  []time.Duration
}

type fakeTimer struct {
	fake    *Fake
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

// NewFake creates a fake scheduler at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// AfterFunc registers f to run once the fake clock has advanced by d.
func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{fake: c, at: c.now + d, seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	c.delays = append(c.delays, d)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.fake.mu.Lock()
	defer t.fake.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.fake.removeLocked(t)
	return true
}

func (c *Fake) removeLocked(target *fakeTimer) {
	for i, t := range c.pending {
		if t == target {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// popLocked removes and returns the earliest pending timer due at or before
// deadline, or nil.
func (c *Fake) popLocked(deadline time.Duration, ignoreDeadline bool) *fakeTimer {
	if len(c.pending) == 0 {
		return nil
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at == c.pending[j].at {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at < c.pending[j].at
	})
	next := c.pending[0]
	if !ignoreDeadline && next.at > deadline {
		return nil
	}
	c.pending = c.pending[1:]
	next.fired = true
	if next.at > c.now {
		c.now = next.at
	}
	return next
}

// Advance moves the fake clock forward by d, running every callback that
// comes due in order. Callbacks scheduled while advancing run too if they
// fall inside the window.
func (c *Fake) Advance(d time.Duration) int {
	c.mu.Lock()
	deadline := c.now + d
	c.mu.Unlock()

	fired := 0
	for {
		c.mu.Lock()
		next := c.popLocked(deadline, false)
		if next == nil {
			c.now = deadline
			c.mu.Unlock()
			return fired
		}
		c.mu.Unlock()

		next.f()
		fired++
	}
}

// FireNext runs the earliest pending callback regardless of its due time.
func (c *Fake) FireNext() bool {
	c.mu.Lock()
	next := c.popLocked(0, true)
	c.mu.Unlock()

	if next == nil {
		return false
	}
	next.f()
	return true
}

// Detach removes the earliest pending callback as if its timer had already
// expired, and returns it without running it. Stop on the detached timer
// reports false, so the caller can replay a callback that raced a
// cancellation.
func (c *Fake) Detach() func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.popLocked(0, true)
	if next == nil {
		return nil
	}
	return next.f
}

// Pending returns the number of callbacks waiting to run.
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Delays returns the delay of every callback ever scheduled, in order.
func (c *Fake) Delays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.delays...)
}

// Now returns the elapsed fake time.
func (c *Fake) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
