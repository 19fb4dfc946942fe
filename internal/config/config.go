package config

import (
	"os"

	"github.com/rs/zerolog"
)

// Config holds runtime settings. Game constants (word list, MaxMistakes,
// figure) are fixed at build time and are not part of it.
type Config struct {
	// Logging
	LogLevel zerolog.Level

	// HTTP surface
	Port         string
	ClientOrigin string
	DailySalt    string

	// Round history; empty disables it.
	HistoryDB string
}

// Load reads configuration from the environment. Call godotenv.Load first
// when a .env file should be honoured.
func Load() Config {
	cfg := Config{
		LogLevel:     zerolog.InfoLevel,
		Port:         getEnv("PORT", "5175"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		HistoryDB:    os.Getenv("HANGMAN_DB"),
	}
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		cfg.LogLevel = lvl
	}
	return cfg
}

// HistoryEnabled reports whether finished rounds should be persisted.
func (c Config) HistoryEnabled() bool { return c.HistoryDB != "" }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
