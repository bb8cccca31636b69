// Package trajectory loads the pre-recorded waypoint list the Target
// process walks.
package trajectory

import (
	"encoding/json"
	"fmt"

	"github.com/matteog/multilatnet/internal/fsutil"
	"github.com/matteog/multilatnet/internal/geo"
)

type waypoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Load reads a JSON array of {"x","y","z"} objects from path. An
// empty file is a fatal configuration error at Target startup.
func Load(fsys fsutil.FileSystem, path string) ([]geo.Vec3, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trajectory: read %s: %w", path, err)
	}

	var points []waypoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("trajectory: parse %s: %w", path, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("trajectory: %s contains no waypoints", path)
	}

	out := make([]geo.Vec3, len(points))
	for i, p := range points {
		out[i] = geo.Vec3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out, nil
}
