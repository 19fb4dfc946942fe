package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "CLIENT_ORIGIN", "DAILY_SALT", "HANGMAN_DB", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.ClientOrigin)
	assert.Equal(t, "local_dev_salt", cfg.DailySalt)
	assert.Empty(t, cfg.HistoryDB)
	assert.False(t, cfg.HistoryEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CLIENT_ORIGIN", "https://example.test")
	t.Setenv("DAILY_SALT", "pepper")
	t.Setenv("HANGMAN_DB", "./data/hangman.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://example.test", cfg.ClientOrigin)
	assert.Equal(t, "pepper", cfg.DailySalt)
	assert.Equal(t, "./data/hangman.db", cfg.HistoryDB)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoad_BadLogLevelKeepsInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	assert.Equal(t, zerolog.InfoLevel, Load().LogLevel)
}
