// Command controller runs the network controller process: it admits
// nodes into the roster, starts the network on a client's request, and
// serves fused target positions computed by multilateration over the
// nodes' distance measurements.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/matteog/multilatnet/internal/config"
	"github.com/matteog/multilatnet/internal/controller"
	"github.com/matteog/multilatnet/internal/dealer"
	"github.com/matteog/multilatnet/internal/estimator"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/matteog/multilatnet/internal/version"
)

var (
	listen      = flag.String("listen", "localhost:50052", "Listen address for the network service")
	verbose     = flag.Bool("verbose", false, "Log per-request activity")
	configFile  = flag.String("config", config.DefaultConfigPath, "Path to JSON tuning configuration file")
	versionFlag = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("controller %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		os.Exit(0)
	}

	tuningCfg, err := config.LoadTuningConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load tuning config from %s: %v", *configFile, err)
	}

	d := dealer.New(*verbose, tuningCfg.GetDealerTimeout())
	defer d.Close()
	svc := controller.New(d, estimator.New(*verbose), *verbose)

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *listen, err)
	}

	server := grpc.NewServer()
	rpcwire.RegisterNetworkServiceServer(server, svc)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Print("[Controller] shutting down")
		server.GracefulStop()
	}()

	log.Printf("[Controller] listening on %s", ln.Addr())
	if err := server.Serve(ln); err != nil {
		log.Fatalf("Network service stopped: %v", err)
	}
}
