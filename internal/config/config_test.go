package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "conference.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 5, cfg.Parse.TeamOfMinCount)
	assert.Equal(t, 40, cfg.Parse.MinAttendeeBlocks)
	assert.Equal(t, 4, cfg.Parse.MaxConcurrentDocuments)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, float64(1), cfg.Server.ParseRatePerSec)
	assert.Equal(t, 2, cfg.Server.ParseBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFERENCE_STORE_DRIVER", "postgres")
	t.Setenv("CONFERENCE_SERVER_PORT", "9090")
	t.Setenv("CONFERENCE_PARSE_TEAM_OF_MIN_COUNT", "3")
	t.Setenv("CONFERENCE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Parse.TeamOfMinCount)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
