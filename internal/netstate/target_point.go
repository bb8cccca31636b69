package netstate

import "github.com/matteog/multilatnet/internal/geo"

// TargetPoint holds the Target process's current position under a
// FairRWLock: one writer (the trajectory walker), many readers (the
// position RPC handler and any test harness).
type TargetPoint struct {
	lock *FairRWLock
	pos  geo.Vec3
}

// NewTargetPoint constructs a TargetPoint at the origin.
func NewTargetPoint() *TargetPoint {
	return &TargetPoint{lock: NewFairRWLock()}
}

// Set overwrites the current position.
func (t *TargetPoint) Set(pos geo.Vec3) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.pos = pos
}

// Get returns the current position.
func (t *TargetPoint) Get() geo.Vec3 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.pos
}
