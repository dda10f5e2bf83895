package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
platform:
  host: "jobs.other.io"
output:
  low_job_threshold: 10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "jobs.other.io", cfg.Platform.Host)
	assert.Equal(t, 10, cfg.Output.LowJobThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, "https://www.googleapis.com/customsearch/v1", cfg.Search.BaseURL)
	assert.Equal(t, 100, cfg.Search.MaxStart)
}

func TestOverlayEnvCredentials(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "key-from-env")
	t.Setenv("GOOGLE_CSE_ID", "cx-from-env")

	cfg := Default()
	require.NoError(t, OverlayEnv(&cfg, ""))

	assert.Equal(t, "key-from-env", cfg.Search.APIKey)
	assert.Equal(t, "cx-from-env", cfg.Search.EngineID)
}

func TestOverlayEnvMissingFileIsFine(t *testing.T) {
	cfg := Default()
	assert.NoError(t, OverlayEnv(&cfg, filepath.Join(t.TempDir(), "absent.env")))
}

func TestOverlayEnvDotenvFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GOOGLE_CSE_ID", "")
	os.Unsetenv("GOOGLE_API_KEY")
	os.Unsetenv("GOOGLE_CSE_ID")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOOGLE_API_KEY=from-file\nGOOGLE_CSE_ID=cx-file\n"), 0o644))

	cfg := Default()
	require.NoError(t, OverlayEnv(&cfg, path))
	assert.Equal(t, "from-file", cfg.Search.APIKey)
	assert.Equal(t, "cx-file", cfg.Search.EngineID)
}

func TestEnsureUserConfig(t *testing.T) {
	dataDir := t.TempDir()
	def := filepath.Join(t.TempDir(), "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("app:\n  data_dir: \".\"\n"), 0o644))

	p, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), p)

	// Second call finds the existing copy and leaves it alone.
	require.NoError(t, os.WriteFile(p, []byte("app:\n  data_dir: \"/custom\"\n"), 0o644))
	p2, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, p, p2)

	b, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Contains(t, string(b), "/custom")
}
