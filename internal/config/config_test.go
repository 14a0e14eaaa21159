package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, 30, cfg.CreditDueDays)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("CREDIT_DUE_DAYS", "14")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 14, cfg.CreditDueDays)
}
