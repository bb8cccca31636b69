// Package sensor implements the node measurement loop: querying the
// target's position, adding synthetic distance noise, and publishing
// the result into the node's DistanceCell.
package sensor

import (
	"context"
	"math/rand"
	"time"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/timeutil"
)

// TargetClient is the subset of rpcwire.TargetServiceClient the
// measurement loop needs; satisfied by *rpcwire.TargetServiceClient,
// narrowed here so tests can substitute a fake.
type TargetClient interface {
	GetPosition(ctx context.Context, req *rpcwire.GetPositionRequest) (*rpcwire.GetPositionResponse, error)
}

// Updater runs the periodic distance measurement loop for one node.
type Updater struct {
	nodeID    int32
	sensorPos geo.Vec3
	target    TargetClient
	cell      *netstate.DistanceCell
	freqHz    float64
	accuracyM float64
	verbose   bool
	clock     timeutil.Clock
}

// NewUpdater constructs a measurement loop for a sensor at sensorPos,
// publishing into cell, at freqHz with noise bound accuracyM.
func NewUpdater(nodeID int32, sensorPos geo.Vec3, target TargetClient, cell *netstate.DistanceCell, freqHz, accuracyM float64, verbose bool) *Updater {
	return &Updater{
		nodeID:    nodeID,
		sensorPos: sensorPos,
		target:    target,
		cell:      cell,
		freqHz:    freqHz,
		accuracyM: accuracyM,
		verbose:   verbose,
		clock:     timeutil.RealClock{},
	}
}

// Run executes the measurement loop until ctx is canceled or a
// transport error occurs talking to the target, which is a permanent
// failure for this node.
func (u *Updater) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / u.freqHz)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		tickStart := u.clock.Now()

		resp, err := u.target.GetPosition(ctx, &rpcwire.GetPositionRequest{NodeID: u.nodeID})
		if err != nil {
			if u.verbose {
				monitoring.Logf("[SensorUpdater %d] target unreachable, terminating: %v", u.nodeID, err)
			}
			return
		}

		targetPos := geo.Vec3{X: resp.X, Y: resp.Y, Z: resp.Z}
		noise := (rand.Float64()*2 - 1) * u.accuracyM
		d := u.sensorPos.Distance(targetPos) + noise
		u.cell.Set(d)

		if u.verbose {
			monitoring.Logf("[SensorUpdater %d] measured %.4fm", u.nodeID, d)
		}

		elapsed := u.clock.Since(tickStart)
		sleepFor := interval - elapsed
		if sleepFor > 0 {
			select {
			case <-ctx.Done():
				return
			case <-u.clock.After(sleepFor):
			}
		}
	}
}
