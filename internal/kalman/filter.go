// Package kalman implements the 6-state constant-velocity Kalman
// filter used to smooth fused target positions on the client side.
package kalman

import (
	"gonum.org/v1/gonum/mat"
)

// Filter tracks a 3D position and velocity state x = [x,y,z,vx,vy,vz]
// under a constant-velocity dynamics model with time-varying process
// noise. A Filter is owned by a single goroutine and is not safe
// for concurrent use.
type Filter struct {
	x *mat.VecDense // 6x1 state
	p *mat.Dense    // 6x6 covariance

	h *mat.Dense // 3x6 measurement matrix
	r *mat.Dense // 3x3 measurement noise

	accelNoiseX, accelNoiseY, accelNoiseZ float64
}

// New constructs a Filter with the initial covariance
// diag(1,1,1,100,100,100) and the given measurement variance and
// per-axis acceleration noise terms. The state starts at zero and is
// reseeded by the first measurement.
func New(measVariance, accelNoiseX, accelNoiseY, accelNoiseZ float64) *Filter {
	p := mat.NewDense(6, 6, nil)
	for i, v := range []float64{1, 1, 1, 100, 100, 100} {
		p.Set(i, i, v)
	}

	h := mat.NewDense(3, 6, nil)
	h.Set(0, 0, 1)
	h.Set(1, 1, 1)
	h.Set(2, 2, 1)

	r := mat.NewDense(3, 3, nil)
	r.Set(0, 0, measVariance)
	r.Set(1, 1, measVariance)
	r.Set(2, 2, measVariance)

	return &Filter{
		x:           mat.NewVecDense(6, nil),
		p:           p,
		h:           h,
		r:           r,
		accelNoiseX: accelNoiseX,
		accelNoiseY: accelNoiseY,
		accelNoiseZ: accelNoiseZ,
	}
}

// Reseed sets the state to [z0, 0, 0, 0] and restores the initial
// covariance, per the "first measurement" initialization rule.
func (f *Filter) Reseed(z0 [3]float64) {
	f.x.SetVec(0, z0[0])
	f.x.SetVec(1, z0[1])
	f.x.SetVec(2, z0[2])
	f.x.SetVec(3, 0)
	f.x.SetVec(4, 0)
	f.x.SetVec(5, 0)

	for i, v := range []float64{1, 1, 1, 100, 100, 100} {
		for j := 0; j < 6; j++ {
			if i == j {
				f.p.Set(i, j, v)
			} else {
				f.p.Set(i, j, 0)
			}
		}
	}
}

// transitionAndNoise builds the time-varying F and Q matrices for a
// step of duration dt seconds.
func (f *Filter) transitionAndNoise(dt float64) (fm, q *mat.Dense) {
	fm = mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		fm.Set(i, i, 1)
	}
	fm.Set(0, 3, dt)
	fm.Set(1, 4, dt)
	fm.Set(2, 5, dt)

	dt2 := dt * dt
	dt3 := dt2 * dt
	dt4 := dt3 * dt

	sigmas := [3]float64{f.accelNoiseX, f.accelNoiseY, f.accelNoiseZ}
	q = mat.NewDense(6, 6, nil)
	for i := 0; i < 3; i++ {
		sa2 := sigmas[i] * sigmas[i]
		q.Set(i, i, dt4/4*sa2)
		q.Set(i, i+3, dt3/2*sa2)
		q.Set(i+3, i, dt3/2*sa2)
		q.Set(i+3, i+3, dt2*sa2)
	}
	return fm, q
}

// Step runs one predict+update cycle: predict forward by dt seconds
// using the constant-velocity model, then incorporate the measurement
// z. Returns the smoothed (x,y,z) position after the update.
func (f *Filter) Step(dt float64, z [3]float64) [3]float64 {
	fm, q := f.transitionAndNoise(dt)

	var xPred mat.VecDense
	xPred.MulVec(fm, f.x)
	f.x.CopyVec(&xPred)

	var fp mat.Dense
	fp.Mul(fm, f.p)
	var fpft mat.Dense
	fpft.Mul(&fp, fm.T())
	fpft.Add(&fpft, q)
	f.p.Copy(&fpft)

	zVec := mat.NewVecDense(3, z[:])

	var hx mat.VecDense
	hx.MulVec(f.h, f.x)
	var y mat.VecDense
	y.SubVec(zVec, &hx)

	var hp mat.Dense
	hp.Mul(f.h, f.p)
	var s mat.Dense
	s.Mul(&hp, f.h.T())
	s.Add(&s, f.r)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		// Singular innovation covariance: skip the correction, keep the
		// predicted state as the best available estimate.
		return f.Position()
	}

	var pht mat.Dense
	pht.Mul(f.p, f.h.T())
	var k mat.Dense
	k.Mul(&pht, &sInv)

	var ky mat.VecDense
	ky.MulVec(&k, &y)
	var xNew mat.VecDense
	xNew.AddVec(f.x, &ky)
	f.x.CopyVec(&xNew)

	var kh mat.Dense
	kh.Mul(&k, f.h)
	ident := mat.NewDense(6, 6, nil)
	for i := 0; i < 6; i++ {
		ident.Set(i, i, 1)
	}
	var imKh mat.Dense
	imKh.Sub(ident, &kh)
	var pNew mat.Dense
	pNew.Mul(&imKh, f.p)
	f.p.Copy(&pNew)

	return f.Position()
}

// Position returns (x[0], x[1], x[2]), the current position estimate.
func (f *Filter) Position() [3]float64 {
	return [3]float64{f.x.AtVec(0), f.x.AtVec(1), f.x.AtVec(2)}
}

// State returns the full 6-component state vector (x,y,z,vx,vy,vz).
func (f *Filter) State() [6]float64 {
	var s [6]float64
	for i := range s {
		s[i] = f.x.AtVec(i)
	}
	return s
}
