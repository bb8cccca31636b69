package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matteog/multilatnet/internal/fsutil"
	"github.com/matteog/multilatnet/internal/rpcwire"
	"github.com/stretchr/testify/require"
)

type fakeNetwork struct {
	startStatus string
	positions   []rpcwire.GetTargetGlobalPositionResponse
	i           int
}

func (f *fakeNetwork) StartNetwork(ctx context.Context, req *rpcwire.StartNetworkRequest) (*rpcwire.StartNetworkResponse, error) {
	return &rpcwire.StartNetworkResponse{Status: f.startStatus}, nil
}

func (f *fakeNetwork) GetTargetGlobalPosition(ctx context.Context, req *rpcwire.GetTargetGlobalPositionRequest) (*rpcwire.GetTargetGlobalPositionResponse, error) {
	if f.i >= len(f.positions) {
		return &rpcwire.GetTargetGlobalPositionResponse{Status: rpcwire.StatusTargetError}, nil
	}
	resp := f.positions[f.i]
	f.i++
	return &resp, nil
}

func TestRunAbortsWhenStartNetworkFails(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	sink, err := NewCSVSink(fsys, "out.csv")
	require.NoError(t, err)

	net := &fakeNetwork{startStatus: rpcwire.StatusStartError}
	app := New("c1", net, sink, 15, 0.0016, 2, 2, 2, false)

	err = app.Run(context.Background())
	require.Error(t, err)
}

func TestRunWritesRowsUntilTargetError(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	sink, err := NewCSVSink(fsys, "out.csv")
	require.NoError(t, err)

	net := &fakeNetwork{
		startStatus: rpcwire.StatusStartOK,
		positions: []rpcwire.GetTargetGlobalPositionResponse{
			{Status: rpcwire.StatusTargetOK, X: 1, Y: 2, Z: 3},
			{Status: rpcwire.StatusTargetOK, X: 1.1, Y: 2.1, Z: 3.1},
		},
	}
	app := New("c1", net, sink, 200, 0.0016, 2, 2, 2, false)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	data, err := fsys.ReadFile("out.csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Equal(t, "X;Y;Z", lines[0])
	require.Len(t, lines, 3)
	for _, line := range lines[1:] {
		require.Regexp(t, `^-?\d+\.\d{3};-?\d+\.\d{3};-?\d+\.\d{3}$`, line)
	}
}
