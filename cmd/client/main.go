// Command client starts the sensor network and tracks the target: it
// polls the controller for fused positions, smooths them through a
// constant-velocity Kalman filter, and writes one CSV row per tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/matteog/multilatnet/internal/client"
	"github.com/matteog/multilatnet/internal/config"
	"github.com/matteog/multilatnet/internal/fsutil"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/version"
)

var (
	controller  = flag.String("controller", "localhost:50052", "Network controller address")
	outDir      = flag.String("out-dir", "data", "Directory for tracked-position CSV output")
	verbose     = flag.Bool("verbose", false, "Log each smoothed position")
	configFile  = flag.String("config", config.DefaultConfigPath, "Path to JSON tuning configuration file")
	versionFlag = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("client %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	tuningCfg, err := config.LoadTuningConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load tuning config from %s: %v", *configFile, err)
	}

	fsys := fsutil.OSFileSystem{}
	if err := fsys.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory %s: %v", *outDir, err)
	}
	outPath := filepath.Join(*outDir, fmt.Sprintf("run_%s.csv", time.Now().Format("20060102_150405")))
	sink, err := client.NewCSVSink(fsys, outPath)
	if err != nil {
		log.Fatalf("Failed to open output file: %v", err)
	}

	conn, err := grpc.NewClient(*controller, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect to controller at %s: %v", *controller, err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	accelX, accelY, accelZ := tuningCfg.GetKalmanAccelNoise()
	app := client.New(
		uuid.NewString(),
		rpcwire.NewNetworkServiceClient(conn),
		sink,
		tuningCfg.GetClientFreqHz(),
		tuningCfg.GetKalmanMeasVariance(),
		accelX, accelY, accelZ,
		*verbose,
	)

	log.Printf("[Client] tracking to %s", outPath)
	if err := app.Run(ctx); err != nil {
		log.Fatalf("Tracking loop failed: %v", err)
	}
	log.Print("[Client] done")
}
