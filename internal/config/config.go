package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the settings of the export command.
type Config struct {
	// OutputDir receives RoomPlanner.png and RoomPlanner.pdf
	OutputDir string
	// WatermarkPath is the logo file, empty for the embedded logo
	WatermarkPath string
	// AssetTimeout bounds the loading of the snapshot and the logo
	AssetTimeout time.Duration

	Log struct {
		Level  string // "debug", "info", "warn" or "error"
		Format string // "json" or "console"
	}
}

// Load reads the configuration from the environment,
// using defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.OutputDir = getEnv("ROOMPLANNER_OUTPUT_DIR", ".")
	cfg.WatermarkPath = getEnv("ROOMPLANNER_WATERMARK", "")

	timeoutStr := getEnv("ROOMPLANNER_ASSET_TIMEOUT", "30")
	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("invalid ROOMPLANNER_ASSET_TIMEOUT %q: expected a positive number of seconds", timeoutStr)
	}
	cfg.AssetTimeout = time.Duration(seconds) * time.Second

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
