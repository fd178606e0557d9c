package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nDmitry/rssproxy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expected    *config.Config
		expectedErr string
	}{
		{
			name: "Defaults",
			env:  map[string]string{},
			expected: &config.Config{
				Port:         "8080",
				FetchTimeout: 10 * time.Second,
				UserAgent:    "Mozilla/5.0 (compatible; RSS-Proxy/1.0)",
				MaxBodyBytes: 10 << 20,
			},
		},
		{
			name: "Overrides",
			env: map[string]string{
				"HTTP_SERVER_PORT":     "9090",
				"FETCH_TIMEOUT":        "3s",
				"FETCH_USER_AGENT":     "test-agent/1.0",
				"FETCH_MAX_BODY_BYTES": "1024",
			},
			expected: &config.Config{
				Port:         "9090",
				FetchTimeout: 3 * time.Second,
				UserAgent:    "test-agent/1.0",
				MaxBodyBytes: 1024,
			},
		},
		{
			name:        "Invalid timeout",
			env:         map[string]string{"FETCH_TIMEOUT": "soon"},
			expectedErr: "FETCH_TIMEOUT must be a valid duration",
		},
		{
			name:        "Negative timeout",
			env:         map[string]string{"FETCH_TIMEOUT": "-1s"},
			expectedErr: "FETCH_TIMEOUT must be positive",
		},
		{
			name:        "Invalid body size",
			env:         map[string]string{"FETCH_MAX_BODY_BYTES": "lots"},
			expectedErr: "FETCH_MAX_BODY_BYTES must be a valid integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"HTTP_SERVER_PORT", "FETCH_TIMEOUT", "FETCH_USER_AGENT", "FETCH_MAX_BODY_BYTES"} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := config.Read("")

			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestRead_EnvFile(t *testing.T) {
	t.Setenv("HTTP_SERVER_PORT", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("FETCH_USER_AGENT", "")
	t.Setenv("FETCH_MAX_BODY_BYTES", "")

	// godotenv does not override variables that are already present, even if empty
	os.Unsetenv("FETCH_USER_AGENT")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FETCH_USER_AGENT=from-dotenv/2.0\n"), 0o600))

	cfg, err := config.Read(envFile)

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv/2.0", cfg.UserAgent)
}

func TestRead_MissingEnvFile(t *testing.T) {
	cfg, err := config.Read(filepath.Join(t.TempDir(), "does-not-exist.env"))

	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
