// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Classifier artifact
	ModelPath string

	// Optional prediction archive; empty disables it
	DatabaseURL string
}

// Load reads configuration from the environment. The Riot credential is
// read separately by the riot client and never passes through here.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnvInt("PORT", 8080),
		Env:         getEnv("ENV", "development"),
		ModelPath:   getEnv("MODEL_PATH", "models/rank_tree.json"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("MODEL_PATH must not be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
