// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"net"
	"testing"
	"time"

	"github.com/matteog/multilatnet/internal/wireproto"
)

// WaitFor polls cond every 5ms until it reports true or timeout
// elapses, failing the test on timeout.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}

// Exchange dials a router-style endpoint, sends one request frame,
// and returns the single reply frame.
func Exchange(t *testing.T, addr, request string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial %s: %v", addr, err)
	}
	defer conn.Close()

	if err := wireproto.WriteFrame(conn, request); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	reply, err := wireproto.NewFrameReader(conn).ReadFrame()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return reply
}
