package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/featuredoc/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads environment variables from .env/.env.local files before the
// configuration is expanded. godotenv never overrides variables that are
// already set in the process environment.
func loadEnvFiles() {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(envPath), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(envPath))
	}
}
