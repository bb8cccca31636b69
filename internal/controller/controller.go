// Package controller implements the NetworkService gRPC handlers and
// the admission/lifecycle wiring of dealer, solver, and registry.
package controller

import (
	"context"
	"math"

	"github.com/matteog/multilatnet/internal/dealer"
	"github.com/matteog/multilatnet/internal/estimator"
	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/rpcwire"
)

// Controller implements rpcwire.NetworkServiceServer, gluing together
// the node registry, the fan-out dealer, and the multilateration
// solver per the admission state machine.
type Controller struct {
	verbose bool

	registry *netstate.NodeRegistry
	dealer   *dealer.NetworkDealer
	solver   *estimator.Multilateration
}

// New constructs a Controller ready to accept AddNode calls.
func New(d *dealer.NetworkDealer, s *estimator.Multilateration, verbose bool) *Controller {
	return &Controller{
		verbose:  verbose,
		registry: netstate.NewNodeRegistry(),
		dealer:   d,
		solver:   s,
	}
}

var _ rpcwire.NetworkServiceServer = (*Controller)(nil)

// AddNode admits a node into the roster while the network is inactive.
func (c *Controller) AddNode(ctx context.Context, req *rpcwire.AddNodeRequest) (*rpcwire.AddNodeResponse, error) {
	pos := geo.Vec3{X: req.X, Y: req.Y, Z: req.Z}
	if !c.registry.AddNode(req.NodeID, pos, req.ReplyAddr) {
		if c.verbose {
			monitoring.Logf("[Controller] AddNode(%d) rejected", req.NodeID)
		}
		return &rpcwire.AddNodeResponse{Status: rpcwire.StatusNodeError}, nil
	}
	if c.verbose {
		monitoring.Logf("[Controller] AddNode(%d) admitted at %+v", req.NodeID, pos)
	}
	return &rpcwire.AddNodeResponse{Status: rpcwire.StatusNodeOK}, nil
}

// StartNetwork snapshots the roster, connects the dealer, installs the
// solver's sensor positions, and flips the network active. Once it
// succeeds, the transition is irreversible for this controller's
// lifetime.
func (c *Controller) StartNetwork(ctx context.Context, req *rpcwire.StartNetworkRequest) (*rpcwire.StartNetworkResponse, error) {
	snapshot, ok := c.registry.Activate()
	if !ok {
		return &rpcwire.StartNetworkResponse{Status: rpcwire.StatusStartError}, nil
	}

	roster := make([]dealer.NodeAddress, 0, len(snapshot))
	positions := make(map[int]geo.Vec3, len(snapshot))
	for id, desc := range snapshot {
		roster = append(roster, dealer.NodeAddress{NodeID: id, Addr: desc.ReplyAddr})
		positions[int(id)] = desc.Position
	}

	if err := c.dealer.Connect(roster); err != nil && c.verbose {
		monitoring.Logf("[Controller] dealer connect reported: %v", err)
	}
	c.solver.SetSensorPositions(positions)

	if c.verbose {
		monitoring.Logf("[Controller] network started with %d nodes", len(snapshot))
	}
	return &rpcwire.StartNetworkResponse{Status: rpcwire.StatusStartOK, NNodes: int32(len(snapshot))}, nil
}

// GetTargetGlobalPosition runs one dealer round and feeds the results
// into the solver, returning the fused position while the network is
// active.
func (c *Controller) GetTargetGlobalPosition(ctx context.Context, req *rpcwire.GetTargetGlobalPositionRequest) (*rpcwire.GetTargetGlobalPositionResponse, error) {
	if !c.registry.IsActive() {
		inf := math.Inf(1)
		return &rpcwire.GetTargetGlobalPositionResponse{Status: rpcwire.StatusTargetError, X: inf, Y: inf, Z: inf}, nil
	}

	distances := make(map[int]float64)
	for id, d := range c.dealer.RequestDistances() {
		distances[int(id)] = d
	}

	pos := c.solver.EstimatePosition(distances)
	return &rpcwire.GetTargetGlobalPositionResponse{Status: rpcwire.StatusTargetOK, X: pos.X, Y: pos.Y, Z: pos.Z}, nil
}
