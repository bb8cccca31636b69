// Package tracker wires a kalman.Filter to wall-clock timestamps,
// handling first-measurement reseeding and Δt computation for the
// client's tracking loop.
package tracker

import (
	"time"

	"github.com/matteog/multilatnet/internal/kalman"
)

// Tracker smooths a stream of 3D position measurements through a
// kalman.Filter. It owns its own clock state and is not safe for
// concurrent use; it is owned by a single loop.
type Tracker struct {
	filter      *kalman.Filter
	initialized bool
	prevTime    time.Time
	predicted   [3]float64
}

// New constructs a Tracker around a fresh kalman.Filter with the given
// measurement variance and per-axis acceleration noise.
func New(measVariance, accelNoiseX, accelNoiseY, accelNoiseZ float64) *Tracker {
	return &Tracker{
		filter:   kalman.New(measVariance, accelNoiseX, accelNoiseY, accelNoiseZ),
		prevTime: time.Now(),
	}
}

// Update feeds one measurement into the tracker. On the first call the
// filter is reseeded to the measurement with zero velocity; a
// predict+update step still runs this tick using Δt since tracker
// construction. Returns the smoothed position.
func (t *Tracker) Update(measurement [3]float64, now time.Time) [3]float64 {
	if !t.initialized {
		t.initialized = true
		t.filter.Reseed(measurement)
	}

	dt := now.Sub(t.prevTime).Seconds()
	t.prevTime = now

	t.predicted = t.filter.Step(dt, measurement)
	return t.predicted
}

// PredictedPosition returns the most recently computed smoothed
// position. Before the first Update call this is the zero vector.
func (t *Tracker) PredictedPosition() [3]float64 {
	return t.predicted
}
