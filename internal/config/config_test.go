package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "license-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 168, cfg.Auth.AccountTokenTTLHours)
	assert.Equal(t, 24, cfg.Auth.AdminTokenTTLHours)
	assert.Equal(t, 72*time.Hour, cfg.License.MaxOffline())
	assert.Equal(t, 319, cfg.Stats.BaseUserCount)
	assert.Empty(t, cfg.Auth.AdminSeeds)
}

func TestLoadReadsEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LICENSE_MAX_OFFLINE_HOURS", "24")
	t.Setenv("STATS_BASE_USER_COUNT", "42")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.License.MaxOffline())
	assert.Equal(t, 42, cfg.Stats.BaseUserCount)
}

func TestParseAdminSeeds(t *testing.T) {
	seeds, err := parseAdminSeeds("root:toor, ops:secret")
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, AdminSeed{Username: "root", Password: "toor"}, seeds[0])
	assert.Equal(t, AdminSeed{Username: "ops", Password: "secret"}, seeds[1])

	seeds, err = parseAdminSeeds("  ")
	require.NoError(t, err)
	assert.Nil(t, seeds)

	_, err = parseAdminSeeds("rootonly")
	assert.Error(t, err)

	_, err = parseAdminSeeds("root:")
	assert.Error(t, err)
}
