// Package router implements the node-side listener that answers
// dealer requests with the node's latest measured distance.
package router

import (
	"fmt"
	"net"

	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/wireproto"
)

// NodeRouter binds a TCP listener and answers "GetDistance" requests
// with the node's latest DistanceCell value, addressed back over the
// same connection the request arrived on, so every reply reaches
// exactly the peer that asked. Requests from distinct peers are
// handled independently via one goroutine per connection; each
// individual connection is served single-threaded, matching the
// router's "not required to offer parallelism" contract.
type NodeRouter struct {
	nodeID  int32
	cell    *netstate.DistanceCell
	verbose bool

	listener net.Listener
}

// New constructs a NodeRouter bound to addr, serving distances from cell.
func New(nodeID int32, addr string, cell *netstate.DistanceCell, verbose bool) (*NodeRouter, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("router: listen on %s: %w", addr, err)
	}
	r := &NodeRouter{nodeID: nodeID, cell: cell, verbose: verbose, listener: ln}
	if verbose {
		monitoring.Logf("[NodeRouter %d] listening on %s for requests...", nodeID, ln.Addr())
	}
	return r, nil
}

// Addr returns the router's bound address.
func (r *NodeRouter) Addr() string {
	return r.listener.Addr().String()
}

// Serve accepts connections until the listener is closed, dispatching
// each to handleConn in its own goroutine.
func (r *NodeRouter) Serve() error {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			return err
		}
		go r.handleConn(conn)
	}
}

// Close stops accepting new connections.
func (r *NodeRouter) Close() error {
	return r.listener.Close()
}

func (r *NodeRouter) handleConn(conn net.Conn) {
	defer conn.Close()
	fr := wireproto.NewFrameReader(conn)
	for {
		msg, err := fr.ReadFrame()
		if err != nil {
			return
		}
		if r.verbose {
			monitoring.Logf("[NodeRouter %d] received request: %s", r.nodeID, msg)
		}

		var reply string
		switch msg {
		case "GetDistance":
			reply = fmt.Sprintf("%d:%v", r.nodeID, r.cell.Get())
		default:
			reply = "Error"
		}

		if err := wireproto.WriteFrame(conn, reply); err != nil {
			return
		}
		if r.verbose {
			if msg == "GetDistance" {
				monitoring.Logf("[NodeRouter %d] sent distance %s", r.nodeID, reply)
			} else {
				monitoring.Logf("[NodeRouter %d] unknown request", r.nodeID)
			}
		}
	}
}
