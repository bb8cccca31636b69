// Package estimator implements the multilateration solver: given a
// roster of sensor positions and a set of measured distances, it
// recovers the best-fit 3D position of the emitting target.
package estimator

import (
	"sync"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/monitoring"
	"gonum.org/v1/gonum/optimize"
)

// Multilateration estimates the 3D position of a target object from
// distance measurements reported by sensors at known positions.
//
// EstimatePosition mutates the warm-start initial guess used by the
// next call. Calls are serialized by an internal mutex, but concurrent
// callers share that one warm start, so each call starts from whichever
// call finished last.
type Multilateration struct {
	verbose bool

	mu             sync.Mutex
	sensorPositions map[int]geo.Vec3
	initialGuess    geo.Vec3
}

// New creates a Multilateration solver with a zero-valued warm start.
func New(verbose bool) *Multilateration {
	return &Multilateration{
		verbose:         verbose,
		sensorPositions: make(map[int]geo.Vec3),
	}
}

// SetSensorPositions installs the sensor roster used by subsequent
// EstimatePosition calls. The nodeID -> position mapping mirrors the
// roster snapshotted by the controller at StartNetwork.
func (m *Multilateration) SetSensorPositions(positions map[int]geo.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sensorPositions = make(map[int]geo.Vec3, len(positions))
	for id, pos := range positions {
		m.sensorPositions[id] = pos
	}
}

// EstimatePosition returns the best-fit target position given a set of
// measured distances keyed by node ID.
//
// Only sensors present in both the roster and distances contribute;
// extras on either side are silently ignored. With fewer than 3
// contributing sensors the problem is under-determined; the solver
// still returns its best iterate, no error. The returned position also
// becomes the warm start for the next call.
func (m *Multilateration) EstimatePosition(distances map[int]float64) geo.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()

	type sample struct {
		pos geo.Vec3
		d   float64
	}
	var samples []sample
	for id, pos := range m.sensorPositions {
		if d, ok := distances[id]; ok {
			samples = append(samples, sample{pos: pos, d: d})
		}
	}

	objective := func(x []float64) float64 {
		pos := geo.Vec3{X: x[0], Y: x[1], Z: x[2]}
		var sumSq float64
		for _, s := range samples {
			r := pos.Distance(s.pos) - s.d
			sumSq += r * r
		}
		return sumSq
	}

	init := []float64{m.initialGuess.X, m.initialGuess.Y, m.initialGuess.Z}
	problem := optimize.Problem{Func: objective}

	result, err := optimize.Minimize(problem, init, nil, &optimize.NelderMead{})
	if err != nil || result == nil {
		// No explicit convergence failure is surfaced upward; the
		// optimizer's result is discarded and the previous warm start
		// is kept and returned unchanged.
		if m.verbose {
			monitoring.Logf("[Multilateration] optimizer did not converge cleanly: %v", err)
		}
		return m.initialGuess
	}

	m.initialGuess = geo.Vec3{X: result.X[0], Y: result.X[1], Z: result.X[2]}

	if m.verbose {
		monitoring.Logf("[Multilateration] estimated position %+v from %d sensors", m.initialGuess, len(samples))
	}

	return m.initialGuess
}
