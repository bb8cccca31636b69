// Command target runs the target process: it walks a pre-recorded
// trajectory at a fixed cadence and serves its current position to the
// nodes' distance sensors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/matteog/multilatnet/internal/fsutil"
	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/targetsvc"
	"github.com/matteog/multilatnet/internal/trajectory"
	"github.com/matteog/multilatnet/internal/version"
)

var (
	listen         = flag.String("listen", "localhost:50051", "Listen address for the position service")
	trajectoryFile = flag.String("trajectory", "data/circular_path.json", "Path to the waypoint JSON file")
	freqHz         = flag.Float64("freq", 40, "Waypoint advance frequency in Hz")
	verbose        = flag.Bool("verbose", false, "Log each waypoint as the target reaches it")
	versionFlag    = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("target %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	path, err := trajectory.Load(fsutil.OSFileSystem{}, *trajectoryFile)
	if err != nil {
		log.Fatalf("Failed to load trajectory: %v", err)
	}

	point := netstate.NewTargetPoint()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go targetsvc.NewUpdater(path, point, *freqHz, *verbose).Run(ctx)

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *listen, err)
	}

	server := grpc.NewServer()
	rpcwire.RegisterTargetServiceServer(server, targetsvc.NewServer(point))

	go func() {
		<-ctx.Done()
		log.Print("[Target] shutting down")
		server.GracefulStop()
	}()

	log.Printf("[Target] walking %d waypoints, serving on %s", len(path), ln.Addr())
	if err := server.Serve(ln); err != nil {
		log.Fatalf("Position service stopped: %v", err)
	}
}
