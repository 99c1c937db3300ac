package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/workoutapp")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "Local")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.DocsEnabled())
	assert.False(t, cfg.StorageEnabled())
	assert.Equal(t, "*", cfg.AllowedOrigins())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/workoutapp")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDocsEnabledOnlyInDevelopment(t *testing.T) {
	cases := []struct {
		env    string
		flag   bool
		expect bool
	}{
		{"development", true, true},
		{"production", true, false},
		{"development", false, false},
	}
	for _, tc := range cases {
		cfg := &Config{AppEnv: tc.env, EnableDocs: tc.flag}
		assert.Equal(t, tc.expect, cfg.DocsEnabled(), tc.env)
	}

	var nilCfg *Config
	assert.False(t, nilCfg.DocsEnabled())
}

func TestNormalizeEnv(t *testing.T) {
	assert.Equal(t, "production", normalizeEnv(" PROD "))
	assert.Equal(t, "staging", normalizeEnv("stage"))
	assert.Equal(t, "test", normalizeEnv("testing"))
	assert.Equal(t, "qa", normalizeEnv("QA"))
}
