package kalman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepStationaryTargetConverges(t *testing.T) {
	f := New(0.0016, 2.0, 2.0, 2.0)
	f.Reseed([3]float64{0, 0, 0})

	target := [3]float64{5, 5, 5}
	var prevErr float64 = -1
	for i := 0; i < 50; i++ {
		pos := f.Step(0.1, target)
		errSq := sqDist(pos, target)
		if prevErr >= 0 {
			require.LessOrEqual(t, errSq, prevErr+1e-9)
		}
		prevErr = errSq
	}
	require.InDelta(t, target[0], f.Position()[0], 0.2)
	require.InDelta(t, target[1], f.Position()[1], 0.2)
	require.InDelta(t, target[2], f.Position()[2], 0.2)
}

func TestStepConstantVelocityConvergesOnVelocity(t *testing.T) {
	f := New(0.0016, 2.0, 2.0, 2.0)
	f.Reseed([3]float64{0, 0, 0})

	const dt = 0.1
	pos := [3]float64{0, 0, 0}
	vel := [3]float64{1, 0, 0}

	for i := 0; i < 100; i++ {
		pos[0] += vel[0] * dt
		pos[1] += vel[1] * dt
		pos[2] += vel[2] * dt
		f.Step(dt, pos)
		if i == 19 {
			state := f.State()
			require.Less(t, absf(state[3]-1.0), 0.3)
		}
	}

	state := f.State()
	require.InDelta(t, 1.0, state[3], 0.15)
}

func sqDist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
