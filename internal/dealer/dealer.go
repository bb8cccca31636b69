// Package dealer implements the fan-out distance aggregator: it
// connects to every admitted node's router and gathers one distance
// reply per round, under a deadline that resets on each successful
// receive.
package dealer

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/timeutil"
	"github.com/matteog/multilatnet/internal/wireproto"
)

// NetworkDealer fans out "GetDistance" requests to a connected roster
// of node routers and gathers their replies. It is single-threaded
// per round: RequestDistances must not be called concurrently with
// itself.
type NetworkDealer struct {
	verbose bool
	timeout time.Duration
	clock   timeutil.Clock

	mu    sync.Mutex
	conns map[int32]net.Conn
}

// New constructs a NetworkDealer with the given per-round receive
// deadline (default 5s, tunable via config).
func New(verbose bool, timeout time.Duration) *NetworkDealer {
	return &NetworkDealer{
		verbose: verbose,
		timeout: timeout,
		clock:   timeutil.RealClock{},
		conns:   make(map[int32]net.Conn),
	}
}

// NodeAddress identifies a node's router endpoint by id and address.
type NodeAddress struct {
	NodeID int32
	Addr   string
}

// Connect dials every node's router endpoint. Any node it can't reach
// is dropped from the roster; the dealer treats it as always absent
// from subsequent rounds, the same as a node that never replies.
func (d *NetworkDealer) Connect(roster []NodeAddress) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, node := range roster {
		conn, err := net.Dial("tcp", node.Addr)
		if err != nil {
			if d.verbose {
				monitoring.Logf("[NetworkDealer] failed to connect to node %d at %s: %v", node.NodeID, node.Addr, err)
			}
			continue
		}
		d.conns[node.NodeID] = conn
		if d.verbose {
			monitoring.Logf("[NetworkDealer] connected to node %d on %s", node.NodeID, node.Addr)
		}
	}
	if len(d.conns) == 0 && len(roster) > 0 {
		return fmt.Errorf("dealer: could not connect to any of %d nodes", len(roster))
	}
	return nil
}

type reply struct {
	nodeID int32
	dist   float64
}

// RequestDistances sends one "GetDistance" request per connected node
// and collects replies until every node has answered once or the
// cumulative wait since the last successful receive exceeds the
// configured timeout. Duplicate replies for the same node id
// overwrite the prior entry (last-write-wins). On timeout, returns
// whatever has been collected so far; missing nodes are simply absent
// from the result.
func (d *NetworkDealer) RequestDistances() map[int32]float64 {
	d.mu.Lock()
	conns := make(map[int32]net.Conn, len(d.conns))
	for id, c := range d.conns {
		conns[id] = c
	}
	d.mu.Unlock()

	replies := make(chan reply, len(conns))
	var g errgroup.Group
	for id, conn := range conns {
		id, conn := id, conn
		g.Go(func() error {
			if err := wireproto.WriteFrame(conn, "GetDistance"); err != nil {
				if d.verbose {
					monitoring.Logf("[NetworkDealer] write to node %d failed: %v", id, err)
				}
				return err
			}
			line, err := wireproto.NewFrameReader(conn).ReadFrame()
			if err != nil {
				if d.verbose {
					monitoring.Logf("[NetworkDealer] read from node %d failed: %v", id, err)
				}
				return err
			}
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("dealer: malformed reply %q from node %d", line, id)
			}
			nodeID, err := strconv.Atoi(parts[0])
			if err != nil {
				return fmt.Errorf("dealer: malformed reply %q from node %d", line, id)
			}
			dist, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return fmt.Errorf("dealer: malformed reply %q from node %d", line, id)
			}
			replies <- reply{nodeID: int32(nodeID), dist: dist}
			return nil
		})
	}
	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	results := make(map[int32]float64, len(conns))
	timer := d.clock.NewTimer(d.timeout)
	defer timer.Stop()

	for len(results) < len(conns) {
		select {
		case r := <-replies:
			results[r.nodeID] = r.dist
			if d.verbose {
				monitoring.Logf("[NetworkDealer] received reply from node %d: %.2fm", r.nodeID, r.dist)
			}
			if !timer.Stop() {
				<-timer.C()
			}
			timer.Reset(d.timeout)
		case <-done:
			// Every per-node goroutine has finished; drain anything
			// still buffered and return without waiting out the timer.
			for {
				select {
				case r := <-replies:
					results[r.nodeID] = r.dist
				default:
					if d.verbose {
						monitoring.Logf("[NetworkDealer] round closed with %d/%d replies", len(results), len(conns))
					}
					return results
				}
			}
		case <-timer.C():
			if d.verbose {
				monitoring.Logf("[NetworkDealer] round timed out with %d/%d replies", len(results), len(conns))
			}
			return results
		}
	}

	if d.verbose {
		monitoring.Logf("[NetworkDealer] all %d responses collected", len(results))
	}
	return results
}

// Close tears down every node connection.
func (d *NetworkDealer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, conn := range d.conns {
		conn.Close()
	}
}
