package router

import (
	"net"
	"testing"

	"github.com/matteog/multilatnet/internal/netstate"
	"github.com/matteog/multilatnet/internal/testutil"
	"github.com/matteog/multilatnet/internal/wireproto"
	"github.com/stretchr/testify/require"
)

func TestRouterRepliesWithLatestDistance(t *testing.T) {
	cell := netstate.NewDistanceCell()
	cell.Set(4.2)

	r, err := New(7, "127.0.0.1:0", cell, false)
	require.NoError(t, err)
	defer r.Close()
	go r.Serve()

	require.Equal(t, "7:4.2", testutil.Exchange(t, r.Addr(), "GetDistance"))
}

func TestRouterRepliesErrorToUnknownRequest(t *testing.T) {
	cell := netstate.NewDistanceCell()
	r, err := New(1, "127.0.0.1:0", cell, false)
	require.NoError(t, err)
	defer r.Close()
	go r.Serve()

	require.Equal(t, "Error", testutil.Exchange(t, r.Addr(), "Frobnicate"))
}

func TestRouterHandlesInterleavedPeersIndependently(t *testing.T) {
	cell := netstate.NewDistanceCell()
	cell.Set(1.0)
	r, err := New(3, "127.0.0.1:0", cell, false)
	require.NoError(t, err)
	defer r.Close()
	go r.Serve()

	connA, err := net.Dial("tcp", r.Addr())
	require.NoError(t, err)
	defer connA.Close()
	connB, err := net.Dial("tcp", r.Addr())
	require.NoError(t, err)
	defer connB.Close()

	require.NoError(t, wireproto.WriteFrame(connB, "GetDistance"))
	require.NoError(t, wireproto.WriteFrame(connA, "GetDistance"))

	replyA, err := wireproto.NewFrameReader(connA).ReadFrame()
	require.NoError(t, err)
	replyB, err := wireproto.NewFrameReader(connB).ReadFrame()
	require.NoError(t, err)

	require.Equal(t, "3:1", replyA)
	require.Equal(t, "3:1", replyB)
}
