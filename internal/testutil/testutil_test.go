package testutil

import (
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matteog/multilatnet/internal/wireproto"
)

func TestWaitForReturnsOnceConditionHolds(t *testing.T) {
	var n atomic.Int32
	WaitFor(t, time.Second, func() bool {
		return n.Add(1) >= 3
	}, "counter reaches 3")
}

func TestExchangeRoundTrips(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fr := wireproto.NewFrameReader(conn)
		msg, err := fr.ReadFrame()
		if err != nil {
			return
		}
		wireproto.WriteFrame(conn, "echo:"+msg)
	}()

	reply := Exchange(t, ln.Addr().String(), "ping")
	if reply != "echo:ping" {
		t.Errorf("got %q, want %q", reply, "echo:ping")
	}
}
