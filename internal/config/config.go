// Package config provides configuration loading for capo.
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/capo/internal/embeddings"
	"github.com/fyrsmithlabs/capo/internal/logging"
)

// Config is the full capo configuration.
type Config struct {
	Logging     logging.Config    `koanf:"logging"`
	Compression CompressionConfig `koanf:"compression"`
	Embeddings  embeddings.Config `koanf:"embeddings"`
	Carbon      CarbonConfig      `koanf:"carbon"`
	Energy      EnergyConfig      `koanf:"energy"`
}

// CompressionConfig controls the pipeline stages.
type CompressionConfig struct {
	// FillersPath is the filler rule document. A missing or malformed file
	// is a fatal run error.
	FillersPath string `koanf:"fillers_path"`

	// TargetReduction is the default word-removal fraction for the smart
	// reducer when no adaptive rule applies.
	TargetReduction float64 `koanf:"target_reduction"`

	// MinSimilarity is the validator quality threshold.
	MinSimilarity float64 `koanf:"min_similarity"`

	// SmartReduction toggles the word-pruning stage.
	SmartReduction bool `koanf:"smart_reduction"`
}

// CarbonConfig controls the grid carbon-intensity lookup.
type CarbonConfig struct {
	// Zone is the Electricity Maps zone code.
	Zone string `koanf:"zone"`

	// APIKey authenticates against Electricity Maps. Usually supplied via
	// the ELECTRICITY_MAPS_API_KEY environment variable; empty means the
	// static fallback table is used.
	APIKey string `koanf:"api_key"`

	// Timeout bounds the lookup request.
	Timeout time.Duration `koanf:"timeout"`
}

// EnergyConfig holds the constants of the energy model.
type EnergyConfig struct {
	// WhPerToken is the estimated LLM inference energy per token.
	WhPerToken float64 `koanf:"wh_per_token"`

	// CPUPowerWatts is the assumed CPU power draw at full utilization,
	// used to estimate the compression cost.
	CPUPowerWatts float64 `koanf:"cpu_power_watts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: logging.Config{
			Level:  "warn",
			Format: "console",
		},
		Compression: CompressionConfig{
			FillersPath:     "config/fillers.yaml",
			TargetReduction: 0.20,
			MinSimilarity:   0.75,
			SmartReduction:  true,
		},
		Embeddings: embeddings.Config{
			Model: embeddings.DefaultModel,
		},
		Carbon: CarbonConfig{
			Zone:    "US-CAL-CISO",
			Timeout: 5 * time.Second,
		},
		Energy: EnergyConfig{
			WhPerToken:    0.00024,
			CPUPowerWatts: 15.0,
		},
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Compression.TargetReduction < 0 || c.Compression.TargetReduction >= 1 {
		return fmt.Errorf("compression.target_reduction must be in [0,1): %v", c.Compression.TargetReduction)
	}
	if c.Compression.MinSimilarity < 0 || c.Compression.MinSimilarity > 1 {
		return fmt.Errorf("compression.min_similarity must be in [0,1]: %v", c.Compression.MinSimilarity)
	}
	if c.Compression.FillersPath == "" {
		return fmt.Errorf("compression.fillers_path must be set")
	}
	if c.Energy.WhPerToken < 0 {
		return fmt.Errorf("energy.wh_per_token must be >= 0: %v", c.Energy.WhPerToken)
	}
	if c.Carbon.Timeout <= 0 {
		return fmt.Errorf("carbon.timeout must be positive: %v", c.Carbon.Timeout)
	}
	return nil
}
