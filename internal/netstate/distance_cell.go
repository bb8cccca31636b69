package netstate

import (
	"math"
	"sync"
)

// DistanceCell holds a single node's latest measured distance. It is
// single-writer (that node's measurement loop) / multi-reader (the
// node's router and test harnesses) and uses a plain mutex: no
// fairness is required with exactly one producer.
type DistanceCell struct {
	mu   sync.Mutex
	dist float64
}

// NewDistanceCell constructs a cell initialized to +Inf, meaning "not
// yet measured".
func NewDistanceCell() *DistanceCell {
	return &DistanceCell{dist: math.Inf(1)}
}

// Set overwrites the cell's value.
func (c *DistanceCell) Set(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dist = d
}

// Get returns the cell's current value.
func (c *DistanceCell) Get() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dist
}
