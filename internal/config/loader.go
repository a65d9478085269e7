package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/fyrsmithlabs/capo/internal/compressor"
)

// envPrefix namespaces capo environment variables, e.g.
// CAPO_COMPRESSION_MIN_SIMILARITY -> compression.min_similarity.
const envPrefix = "CAPO_"

// sections are the top-level config keys, used to map flat environment
// variable names onto nested koanf paths.
var sections = []string{"logging", "compression", "embeddings", "carbon", "energy"}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in increasing precedence. A missing file
// at path is not an error; an unreadable or malformed one is.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment only.
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// The Electricity Maps key is conventionally passed through its own
	// variable rather than the CAPO_ namespace.
	if key := os.Getenv("ELECTRICITY_MAPS_API_KEY"); key != "" {
		cfg.Carbon.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// envToKey maps CAPO_COMPRESSION_MIN_SIMILARITY to
// compression.min_similarity. Variables outside the known sections are
// ignored.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, sec := range sections {
		if strings.HasPrefix(s, sec+"_") {
			return sec + "." + strings.TrimPrefix(s, sec+"_")
		}
	}
	return ""
}

// LoadFillers reads the filler rule document. The pipeline cannot run
// without it: a missing or malformed file is a fatal run error, reported to
// the user rather than crashed on.
func LoadFillers(path string) (*compressor.FillerConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filler config %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing filler config %s: %w", path, err)
	}

	var fillers compressor.FillerConfig
	if err := k.Unmarshal("", &fillers); err != nil {
		return nil, fmt.Errorf("unmarshaling filler config %s: %w", path, err)
	}
	return &fillers, nil
}
