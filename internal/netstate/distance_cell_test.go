package netstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceCellInitiallyInfinite(t *testing.T) {
	c := NewDistanceCell()
	require.True(t, math.IsInf(c.Get(), 1))
}

func TestDistanceCellSetAndGet(t *testing.T) {
	c := NewDistanceCell()
	c.Set(12.5)
	require.Equal(t, 12.5, c.Get())
	c.Set(7.0)
	require.Equal(t, 7.0, c.Get())
}
