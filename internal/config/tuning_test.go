package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadTuningConfigAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_freq_hz": 20}`), 0o644))

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	require.Equal(t, 20.0, cfg.GetClientFreqHz())
	require.Equal(t, 40.0, cfg.GetSensorFreqHz())
	require.Equal(t, 0.003, cfg.GetSensorAccuracyMeters())
	require.Equal(t, 0.0016, cfg.GetKalmanMeasVariance())

	x, y, z := cfg.GetKalmanAccelNoise()
	require.Equal(t, 2.0, x)
	require.Equal(t, 2.0, y)
	require.Equal(t, 2.0, z)
}

func TestLoadTuningConfigRejectsOutOfRangeClientFreq(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"client_freq_hz": 999}`), 0o644))

	_, err := LoadTuningConfig(path)
	require.Error(t, err)
}

func TestLoadTuningConfigRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := LoadTuningConfig(path)
	require.Error(t, err)
}

func TestMustLoadDefaultConfigFindsCanonicalFile(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	require.Equal(t, 40.0, cfg.GetSensorFreqHz())
	require.Equal(t, 15.0, cfg.GetClientFreqHz())
}
