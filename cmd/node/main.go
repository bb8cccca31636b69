// Command node runs one sensor node process: it measures its distance
// to the target at a fixed cadence, registers with the network
// controller, and answers the controller's distance requests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/matteog/multilatnet/internal/config"
	"github.com/matteog/multilatnet/internal/geo"
	"github.com/matteog/multilatnet/internal/node"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/version"
)

var (
	nodeID      = flag.Int("node_id", 0, "Unique node identifier")
	pos         = flag.String("pos", "0,0,0", "Sensor position as x,y,z")
	bind        = flag.String("bind", "", "Router bind address (default :555<node_id>)")
	target      = flag.String("target", "localhost:50051", "Target position service address")
	controller  = flag.String("controller", "localhost:50052", "Network controller address")
	verbose     = flag.Bool("verbose", false, "Log each measurement and request")
	configFile  = flag.String("config", config.DefaultConfigPath, "Path to JSON tuning configuration file")
	versionFlag = flag.Bool("version", false, "Print version information and exit")
)

func parsePos(s string) (geo.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geo.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var coords [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.Vec3{}, fmt.Errorf("bad coordinate %q: %w", p, err)
		}
		coords[i] = v
	}
	return geo.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("node %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	sensorPos, err := parsePos(*pos)
	if err != nil {
		log.Fatalf("Invalid -pos: %v", err)
	}

	tuningCfg, err := config.LoadTuningConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load tuning config from %s: %v", *configFile, err)
	}

	bindAddr := *bind
	if bindAddr == "" {
		bindAddr = fmt.Sprintf(":555%d", *nodeID)
	}

	targetConn, err := grpc.NewClient(*target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect to target at %s: %v", *target, err)
	}
	defer targetConn.Close()

	controllerConn, err := grpc.NewClient(*controller, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect to controller at %s: %v", *controller, err)
	}
	defer controllerConn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n := node.New(
		int32(*nodeID),
		sensorPos,
		bindAddr,
		rpcwire.NewNetworkServiceClient(controllerConn),
		rpcwire.NewTargetServiceClient(targetConn),
		tuningCfg.GetSensorFreqHz(),
		tuningCfg.GetSensorAccuracyMeters(),
		*verbose,
	)
	if err := n.Start(ctx); err != nil {
		log.Fatalf("Node startup failed: %v", err)
	}
	defer n.Close()

	log.Printf("[Node %d] running at %v, router on %s", *nodeID, sensorPos, bindAddr)
	<-ctx.Done()
	log.Printf("[Node %d] shutting down", *nodeID)
}
