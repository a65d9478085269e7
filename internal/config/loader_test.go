package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "capo.yaml", `
compression:
  target_reduction: 0.3
  min_similarity: 0.8
carbon:
  zone: FR
  timeout: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Compression.TargetReduction)
	assert.Equal(t, 0.8, cfg.Compression.MinSimilarity)
	assert.Equal(t, "FR", cfg.Carbon.Zone)
	assert.Equal(t, 2*time.Second, cfg.Carbon.Timeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, "config/fillers.yaml", cfg.Compression.FillersPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "capo.yaml", "carbon:\n  zone: FR\n")
	t.Setenv("CAPO_CARBON_ZONE", "GB")
	t.Setenv("CAPO_COMPRESSION_MIN_SIMILARITY", "0.9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GB", cfg.Carbon.Zone)
	assert.Equal(t, 0.9, cfg.Compression.MinSimilarity)
}

func TestLoad_ElectricityMapsKeyFromEnv(t *testing.T) {
	t.Setenv("ELECTRICITY_MAPS_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Carbon.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "capo.yaml", "compression: [not: a: map")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeFile(t, "capo.yaml", "compression:\n  target_reduction: 2.0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEnvToKey(t *testing.T) {
	assert.Equal(t, "compression.min_similarity", envToKey("CAPO_COMPRESSION_MIN_SIMILARITY"))
	assert.Equal(t, "carbon.zone", envToKey("CAPO_CARBON_ZONE"))
	assert.Equal(t, "", envToKey("CAPO_UNRELATED_THING"))
}

func TestLoadFillers(t *testing.T) {
	path := writeFile(t, "fillers.yaml", `
patterns:
  - '\bplease note that\b'
words:
  - basically
  - actually
aggressive:
  - '\bin as much detail as possible\b'
`)

	fillers, err := LoadFillers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`\bplease note that\b`}, fillers.Patterns)
	assert.Equal(t, []string{"basically", "actually"}, fillers.Words)
	assert.Len(t, fillers.Aggressive, 1)
}

func TestLoadFillers_Missing(t *testing.T) {
	_, err := LoadFillers(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading filler config")
}

func TestLoadFillers_Malformed(t *testing.T) {
	path := writeFile(t, "fillers.yaml", "patterns: [a: b: c")
	_, err := LoadFillers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing filler config")
}
