// Package targetsvc implements the Target process's position service:
// a walker that advances along a pre-recorded trajectory at a fixed
// cadence, and the gRPC handler that serves the current position.
package targetsvc

import (
	"context"
	"time"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/timeutil"
)

// Updater walks a closed trajectory, writing each waypoint into a
// TargetPoint at a fixed frequency. It owns the only writer of that
// TargetPoint.
type Updater struct {
	path    []geo.Vec3
	point   *netstate.TargetPoint
	freqHz  float64
	verbose bool
	clock   timeutil.Clock
}

// NewUpdater constructs an Updater over a non-empty path.
func NewUpdater(path []geo.Vec3, point *netstate.TargetPoint, freqHz float64, verbose bool) *Updater {
	return &Updater{path: path, point: point, freqHz: freqHz, verbose: verbose, clock: timeutil.RealClock{}}
}

// Run advances through the trajectory in a loop, sleeping 1/freqHz
// between waypoints, until ctx is canceled.
func (u *Updater) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / u.freqHz)
	idx := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		wp := u.path[idx%len(u.path)]
		u.point.Set(wp)
		if u.verbose {
			monitoring.Logf("[Target] now at %+v", wp)
		}
		idx++

		select {
		case <-ctx.Done():
			return
		case <-u.clock.After(interval):
		}
	}
}

// Server implements rpcwire.TargetServiceServer over a TargetPoint.
type Server struct {
	point *netstate.TargetPoint
}

// NewServer constructs a Server serving positions from point.
func NewServer(point *netstate.TargetPoint) *Server {
	return &Server{point: point}
}

var _ rpcwire.TargetServiceServer = (*Server)(nil)

// GetPosition returns the target's current position.
func (s *Server) GetPosition(ctx context.Context, req *rpcwire.GetPositionRequest) (*rpcwire.GetPositionResponse, error) {
	pos := s.point.Get()
	return &rpcwire.GetPositionResponse{
		Status: rpcwire.StatusPositionOK,
		X:      pos.X,
		Y:      pos.Y,
		Z:      pos.Z,
	}, nil
}
