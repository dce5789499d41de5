package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"POLICY_API_BASE_URL", "POLICY_API_TOKEN", "POLICY_REQUEST_TIMEOUT", "POLICY_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Empty(t, cfg.APIToken)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POLICY_API_BASE_URL", "https://api.example.org/v1")
	t.Setenv("POLICY_API_TOKEN", "secret-token")
	t.Setenv("POLICY_REQUEST_TIMEOUT", "5s")
	t.Setenv("POLICY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/v1", cfg.APIBaseURL)
	assert.Equal(t, "secret-token", cfg.APIToken)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{APIBaseURL: "http://localhost:8000/api", RequestTimeout: time.Second},
		},
		{
			name:    "empty base url",
			cfg:     Config{RequestTimeout: time.Second},
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			cfg:     Config{APIBaseURL: "http://localhost:8000/api"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
