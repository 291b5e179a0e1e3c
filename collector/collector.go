// Package collector implements the bounded result buffer that parallel
// matching lanes append into.
//
// The discipline is claim-a-slot: a lane that found a match performs one
// atomic fetch-and-increment on a shared counter and owns the returned
// index exclusively. Indexes at or beyond capacity are dropped, but the
// counter keeps counting, so the final counter value is the true match
// total even after overflow.
//
// Slot writes are plain stores: every slot has exactly one writer, and the
// host only reads slots after the dispatch barrier, which establishes the
// necessary happens-before edge.
package collector

import "sync/atomic"

// Collector is a fixed-capacity sequence of match positions plus a
// monotonically increasing claim counter. The zero value is unusable;
// construct with New.
//
// Claim is safe for concurrent use by any number of lanes. All other
// methods must only be called after the dispatch that feeds the collector
// has fully completed.
type Collector struct {
	count atomic.Int64
	slots []int64
}

// New creates a Collector with room for capacity match positions.
// A negative capacity is treated as zero.
func New(capacity int) *Collector {
	if capacity < 0 {
		capacity = 0
	}
	return &Collector{
		slots: make([]int64, capacity),
	}
}

// Claim records pos as a match. It atomically claims the next slot index;
// if the index is within capacity the position is stored, otherwise the
// write is dropped and only the count advances.
func (c *Collector) Claim(pos int64) {
	k := c.count.Add(1) - 1
	if k < int64(len(c.slots)) {
		c.slots[k] = pos
	}
}

// Total returns the true number of matches claimed, including any that
// were dropped after the buffer filled.
func (c *Collector) Total() int64 {
	return c.count.Load()
}

// Truncated reports whether more matches were claimed than the buffer
// could hold.
func (c *Collector) Truncated() bool {
	return c.count.Load() > int64(len(c.slots))
}

// Positions returns the retained match positions, in slot-claim order.
// The returned slice aliases the collector's buffer; it holds
// min(Total, capacity) entries. Entries beyond that prefix were never
// written and are not exposed.
func (c *Collector) Positions() []int64 {
	n := c.count.Load()
	if n > int64(len(c.slots)) {
		n = int64(len(c.slots))
	}
	return c.slots[:n]
}

// Capacity returns the number of slots the collector can retain.
func (c *Collector) Capacity() int {
	return len(c.slots)
}

// Reset clears the counter and forgets all claimed positions, making the
// collector ready for another dispatch.
func (c *Collector) Reset() {
	c.count.Store(0)
}
