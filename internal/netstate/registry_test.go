package netstate

import (
	"testing"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/stretchr/testify/require"
)

func TestAddNodeSucceedsThenRejectsDuplicate(t *testing.T) {
	r := NewNodeRegistry()

	require.True(t, r.AddNode(1, geo.Vec3{X: 1}, "tcp://a"))
	require.False(t, r.AddNode(1, geo.Vec3{X: 2}, "tcp://b"))

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, geo.Vec3{X: 1}, snap[0].Position)
}

func TestAddNodeRejectedAfterActivation(t *testing.T) {
	r := NewNodeRegistry()
	require.True(t, r.AddNode(1, geo.Vec3{}, "tcp://a"))

	_, ok := r.Activate()
	require.True(t, ok)

	require.False(t, r.AddNode(2, geo.Vec3{}, "tcp://b"))
	require.Len(t, r.Snapshot(), 1)
}

func TestActivateOnlySucceedsOnce(t *testing.T) {
	r := NewNodeRegistry()
	require.True(t, r.AddNode(1, geo.Vec3{}, "tcp://a"))

	snap1, ok := r.Activate()
	require.True(t, ok)
	require.Len(t, snap1, 1)

	_, ok = r.Activate()
	require.False(t, ok)
	require.True(t, r.IsActive())
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	r := NewNodeRegistry()
	require.True(t, r.AddNode(3, geo.Vec3{}, "tcp://c"))
	require.True(t, r.AddNode(1, geo.Vec3{}, "tcp://a"))
	require.True(t, r.AddNode(2, geo.Vec3{}, "tcp://b"))

	snap := r.Snapshot()
	require.Equal(t, []int32{3, 1, 2}, []int32{snap[0].NodeID, snap[1].NodeID, snap[2].NodeID})
}
