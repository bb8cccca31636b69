// Package node implements the NodeController facade: it wires the
// sensor measurement loop, the router, and registration against the
// controller into one node process.
package node

import (
	"context"
	"fmt"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/router"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/sensor"
)

// NetworkClient is the subset of rpcwire.NetworkServiceClient used to
// register with the controller.
type NetworkClient interface {
	AddNode(ctx context.Context, req *rpcwire.AddNodeRequest) (*rpcwire.AddNodeResponse, error)
}

// Controller is the facade that starts a node's measurement loop,
// registers it with the network controller, and, on success, starts
// serving distance requests on its router.
type Controller struct {
	nodeID    int32
	pos       geo.Vec3
	bindAddr  string
	network   NetworkClient
	target    sensor.TargetClient
	freqHz    float64
	accuracyM float64
	verbose   bool

	cell   *netstate.DistanceCell
	router *router.NodeRouter
}

// New constructs a node Controller. bindAddr is the router's listen
// address; the address the router actually binds to (with any port 0
// resolved) is advertised to the network controller as this node's
// reply_addr.
func New(nodeID int32, pos geo.Vec3, bindAddr string, network NetworkClient, target sensor.TargetClient, freqHz, accuracyM float64, verbose bool) *Controller {
	return &Controller{
		nodeID:    nodeID,
		pos:       pos,
		bindAddr:  bindAddr,
		network:   network,
		target:    target,
		freqHz:    freqHz,
		accuracyM: accuracyM,
		verbose:   verbose,
		cell:      netstate.NewDistanceCell(),
	}
}

// Start binds the router, launches the measurement loop, and attempts
// to register with the network controller. If registration fails the
// router is torn down: a rejected node takes no further part in the
// network.
func (c *Controller) Start(ctx context.Context) error {
	r, err := router.New(c.nodeID, c.bindAddr, c.cell, c.verbose)
	if err != nil {
		return fmt.Errorf("node[%d]: %w", c.nodeID, err)
	}
	c.router = r

	go sensor.NewUpdater(c.nodeID, c.pos, c.target, c.cell, c.freqHz, c.accuracyM, c.verbose).Run(ctx)

	resp, err := c.network.AddNode(ctx, &rpcwire.AddNodeRequest{
		NodeID:    c.nodeID,
		X:         c.pos.X,
		Y:         c.pos.Y,
		Z:         c.pos.Z,
		ReplyAddr: r.Addr(),
	})
	if err != nil {
		r.Close()
		return fmt.Errorf("node[%d]: AddNode RPC failed: %w", c.nodeID, err)
	}
	if resp.Status != rpcwire.StatusNodeOK {
		if c.verbose {
			monitoring.Logf("[NodeController %d] registration rejected (%s)", c.nodeID, resp.Status)
		}
		r.Close()
		return fmt.Errorf("node[%d]: registration rejected: %s", c.nodeID, resp.Status)
	}

	if c.verbose {
		monitoring.Logf("[NodeController %d] registered, serving router on %s", c.nodeID, r.Addr())
	}
	go func() {
		if err := r.Serve(); err != nil && c.verbose {
			monitoring.Logf("[NodeController %d] router stopped: %v", c.nodeID, err)
		}
	}()
	return nil
}

// Close tears down the node's router.
func (c *Controller) Close() {
	if c.router != nil {
		c.router.Close()
	}
}
