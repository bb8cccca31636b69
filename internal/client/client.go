// Package client implements the client application: it starts the
// network, polls for fused target positions, smooths them with a
// tracker, and streams the result to a CSV sink.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matteog/multilatnet/internal/monitoring"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/timeutil"
	"github.com/matteog/multilatnet/internal/tracker"
)

// NetworkClient is the subset of rpcwire.NetworkServiceClient the
// client loop needs.
type NetworkClient interface {
	StartNetwork(ctx context.Context, req *rpcwire.StartNetworkRequest) (*rpcwire.StartNetworkResponse, error)
	GetTargetGlobalPosition(ctx context.Context, req *rpcwire.GetTargetGlobalPositionRequest) (*rpcwire.GetTargetGlobalPositionResponse, error)
}

// Sink receives one smoothed position per tick.
type Sink interface {
	Write(pos [3]float64) error
	Close() error
}

// App is the client process's tracking loop.
type App struct {
	clientID string
	network  NetworkClient
	tracker  *tracker.Tracker
	sink     Sink
	freqHz   float64
	verbose  bool
	clock    timeutil.Clock
}

// New constructs an App polling network at freqHz (valid 10-30 Hz)
// and smoothing through a freshly constructed tracker. An empty
// clientID is replaced with a generated one, so concurrent client
// runs are distinguishable in the controller's logs.
func New(clientID string, network NetworkClient, sink Sink, freqHz, measVariance, accelNoiseX, accelNoiseY, accelNoiseZ float64, verbose bool) *App {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	return &App{
		clientID: clientID,
		network:  network,
		tracker:  tracker.New(measVariance, accelNoiseX, accelNoiseY, accelNoiseZ),
		sink:     sink,
		freqHz:   freqHz,
		verbose:  verbose,
		clock:    timeutil.RealClock{},
	}
}

// Run starts the network and then polls it until ctx is canceled or
// the network reports TS_ERROR. Returns an error if
// StartNetwork does not succeed.
func (a *App) Run(ctx context.Context) error {
	startResp, err := a.network.StartNetwork(ctx, &rpcwire.StartNetworkRequest{ClientID: a.clientID})
	if err != nil {
		return fmt.Errorf("client: StartNetwork RPC failed: %w", err)
	}
	if startResp.Status != rpcwire.StatusStartOK {
		return fmt.Errorf("client: StartNetwork returned %s", startResp.Status)
	}

	interval := time.Duration(float64(time.Second) / a.freqHz)
	defer a.sink.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		resp, err := a.network.GetTargetGlobalPosition(ctx, &rpcwire.GetTargetGlobalPositionRequest{ClientID: a.clientID})
		if err != nil {
			return fmt.Errorf("client: GetTargetGlobalPosition RPC failed: %w", err)
		}
		if resp.Status == rpcwire.StatusTargetError {
			if a.verbose {
				monitoring.Logf("[ClientApp] cannot retrieve target position, network not active")
			}
			return nil
		}

		pos := a.tracker.Update([3]float64{resp.X, resp.Y, resp.Z}, a.clock.Now())
		if a.verbose {
			monitoring.Logf("[ClientApp] predicted position %.3f;%.3f;%.3f", pos[0], pos[1], pos[2])
		}
		if err := a.sink.Write(pos); err != nil {
			return fmt.Errorf("client: writing output: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-a.clock.After(interval):
		}
	}
}
