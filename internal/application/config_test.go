package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig verifies YAML decoding, defaults for omitted fields,
// and validation of out-of-range values.
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		yaml          string
		check         func(t *testing.T, cfg Config)
		expectedError string
	}{
		{
			name: "full configuration",
			yaml: `
server:
  listen_addr: ":9090"
  write_rate_per_second: 10
  write_burst: 20
database:
  url: "postgres://localhost:5432/maturion"
curation:
  similarity_threshold: 0.9
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":9090", cfg.Server.ListenAddr)
				assert.Equal(t, float64(10), cfg.Server.WriteRatePerSecond)
				assert.Equal(t, "postgres://localhost:5432/maturion", cfg.Database.URL)
				assert.Equal(t, 0.9, cfg.Curation.SimilarityThreshold)
			},
		},
		{
			name: "omitted fields keep defaults",
			yaml: `
database:
  url: "postgres://localhost:5432/maturion"
`,
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":8080", cfg.Server.ListenAddr)
				assert.Equal(t, 0.85, cfg.Curation.SimilarityThreshold)
			},
		},
		{
			name: "threshold above one fails validation",
			yaml: `
curation:
  similarity_threshold: 1.5
`,
			expectedError: "config validation failed",
		},
		{
			name:          "malformed yaml",
			yaml:          "server: [",
			expectedError: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)

			cfg, err := LoadConfig(path)
			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

// TestLoadConfig_EnvOverride verifies DATABASE_URL beats the file.
func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://file:5432/maturion"
`)
	t.Setenv("DATABASE_URL", "postgres://env:5432/maturion")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env:5432/maturion", cfg.Database.URL)
}

// TestLoadConfig_MissingFile verifies a readable error for a missing
// configuration path.
func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
