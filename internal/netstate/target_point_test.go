package netstate

import (
	"testing"

	"github.com/matteog/multilatnet/internal/geo"
	"github.com/stretchr/testify/require"
)

func TestTargetPointSetAndGet(t *testing.T) {
	tp := NewTargetPoint()
	require.Equal(t, geo.Vec3{}, tp.Get())

	tp.Set(geo.Vec3{X: 1, Y: 2, Z: 3})
	require.Equal(t, geo.Vec3{X: 1, Y: 2, Z: 3}, tp.Get())
}
