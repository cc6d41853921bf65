package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"taskdeck/internal/store"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel   zapcore.Level
	LogFile    string
	DataDir    string
	AdminEmail string
	// OwnerOnlyRemove tightens task removal to the project owner
	OwnerOnlyRemove bool
}

// New loads configuration from a .env file (if present) and the
// environment.
func New() (Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := Config{}

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		cfg.LogLevel = zapcore.DebugLevel
	case "", "info":
		cfg.LogLevel = zapcore.InfoLevel
	default:
		cfg.LogLevel = zapcore.WarnLevel
	}

	cfg.DataDir = os.Getenv("TASKDECK_DATA_DIR")
	if cfg.DataDir == "" {
		dir, err := store.DefaultDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}

	cfg.LogFile = os.Getenv("LOG_FILE")

	cfg.AdminEmail = os.Getenv("TASKDECK_ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@gmail.com"
	}

	switch os.Getenv("TASKDECK_OWNER_ONLY_REMOVE") {
	case "1", "true", "yes":
		cfg.OwnerOnlyRemove = true
	}

	return cfg, nil
}
