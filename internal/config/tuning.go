// Package config loads the tunable constants of the multilateration
// network (frequencies, noise terms, timeouts) from a single JSON
// defaults file, whose path the controller, node and client entry
// points take from their -config flag.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// The Get* accessors carry the same values as built-in fallbacks for
// fields the loaded file leaves unset.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the network's tunable parameters. Fields are
// pointers so that a partial JSON file leaves the rest at their
// built-in defaults (see the Get* accessors below).
type TuningConfig struct {
	// SensorFreqHz is the measurement loop frequency (default 40Hz).
	SensorFreqHz *float64 `json:"sensor_freq_hz,omitempty"`
	// SensorAccuracyMeters bounds the Uniform(-acc,+acc) distance noise.
	SensorAccuracyMeters *float64 `json:"sensor_accuracy_meters,omitempty"`

	// ClientFreqHz is the client poll frequency (default 15Hz, valid 10-30Hz).
	ClientFreqHz *float64 `json:"client_freq_hz,omitempty"`

	// DealerTimeout bounds a distance-aggregation round (default 5s).
	DealerTimeout *string `json:"dealer_timeout,omitempty"`

	// Kalman process noise terms (default 2.0 for each axis).
	KalmanAccelNoiseX *float64 `json:"kalman_accel_noise_x,omitempty"`
	KalmanAccelNoiseY *float64 `json:"kalman_accel_noise_y,omitempty"`
	KalmanAccelNoiseZ *float64 `json:"kalman_accel_noise_z,omitempty"`
	// KalmanMeasVariance is sigma_meas^2 (default 0.0016).
	KalmanMeasVariance *float64 `json:"kalman_meas_variance,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset. Use
// LoadTuningConfig to load actual values from a defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file keep their built-in defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath, searching from the current directory upward.
// Panics if the file cannot be found; intended for tests and binaries
// that have already validated config availability.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run from the repository root")
}

// Validate checks that set configuration values are sane.
func (c *TuningConfig) Validate() error {
	if c.ClientFreqHz != nil {
		if *c.ClientFreqHz < 10 || *c.ClientFreqHz > 30 {
			return fmt.Errorf("client_freq_hz must be between 10 and 30, got %f", *c.ClientFreqHz)
		}
	}
	if c.SensorFreqHz != nil && *c.SensorFreqHz <= 0 {
		return fmt.Errorf("sensor_freq_hz must be positive, got %f", *c.SensorFreqHz)
	}
	if c.DealerTimeout != nil && *c.DealerTimeout != "" {
		if _, err := time.ParseDuration(*c.DealerTimeout); err != nil {
			return fmt.Errorf("invalid dealer_timeout %q: %w", *c.DealerTimeout, err)
		}
	}
	return nil
}

// GetSensorFreqHz returns the configured measurement frequency or the default.
func (c *TuningConfig) GetSensorFreqHz() float64 {
	if c.SensorFreqHz == nil {
		return 40.0
	}
	return *c.SensorFreqHz
}

// GetSensorAccuracyMeters returns the configured sensor noise bound or the default.
func (c *TuningConfig) GetSensorAccuracyMeters() float64 {
	if c.SensorAccuracyMeters == nil {
		return 0.003
	}
	return *c.SensorAccuracyMeters
}

// GetClientFreqHz returns the configured client poll frequency or the default.
func (c *TuningConfig) GetClientFreqHz() float64 {
	if c.ClientFreqHz == nil {
		return 15.0
	}
	return *c.ClientFreqHz
}

// GetDealerTimeout parses and returns the dealer round deadline or the default.
func (c *TuningConfig) GetDealerTimeout() time.Duration {
	if c.DealerTimeout == nil || *c.DealerTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(*c.DealerTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// GetKalmanAccelNoise returns the configured per-axis acceleration noise or the default.
func (c *TuningConfig) GetKalmanAccelNoise() (x, y, z float64) {
	x, y, z = 2.0, 2.0, 2.0
	if c.KalmanAccelNoiseX != nil {
		x = *c.KalmanAccelNoiseX
	}
	if c.KalmanAccelNoiseY != nil {
		y = *c.KalmanAccelNoiseY
	}
	if c.KalmanAccelNoiseZ != nil {
		z = *c.KalmanAccelNoiseZ
	}
	return x, y, z
}

// GetKalmanMeasVariance returns the configured measurement variance or the default.
func (c *TuningConfig) GetKalmanMeasVariance() float64 {
	if c.KalmanMeasVariance == nil {
		return 0.0016
	}
	return *c.KalmanMeasVariance
}
