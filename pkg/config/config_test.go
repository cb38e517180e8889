package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Grouper.GroupingThreshold)
	assert.Equal(t, 0.7, cfg.Grouper.ExistingMatchThreshold)
	assert.Equal(t, 0.95, cfg.Grouper.AutoAcceptThreshold)
	assert.Equal(t, 5, cfg.Grouper.MaxExistingMatches)
	assert.Equal(t, 4, cfg.Grouper.LookupConcurrency)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GROUPING_THRESHOLD", "0.85")
	t.Setenv("MAX_EXISTING_MATCHES", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.85, cfg.Grouper.GroupingThreshold)
	assert.Equal(t, 3, cfg.Grouper.MaxExistingMatches)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInconsistentThresholds(t *testing.T) {
	t.Setenv("AUTO_ACCEPT_THRESHOLD", "0.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grouper configuration")
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "payees",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=payees sslmode=require",
		db.DSN(),
	)
}
