package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// OverlayEnv fills in the search credentials from the environment, optionally
// loading a .env file first. Missing credentials are not an error here; they
// surface later as auth failures on each search call.
func OverlayEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("load env file: %w", err)
			}
		}
	}

	cfg.Search.APIKey = getEnv("GOOGLE_API_KEY", cfg.Search.APIKey)
	cfg.Search.EngineID = getEnv("GOOGLE_CSE_ID", cfg.Search.EngineID)
	cfg.App.DataDir = getEnv("BOARDWATCH_DATA_DIR", cfg.App.DataDir)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
