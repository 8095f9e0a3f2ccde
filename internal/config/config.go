// Package config loads the server configuration from the environment.
//
// Variables are read with envconfig into a typed struct. A `.env` file in
// the working directory, if present, is loaded first by godotenv's autoload
// import; real environment variables take precedence over it.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads .env into the process environment.
	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Config is the root configuration object.
type Config struct {
	Port     int    `envconfig:"PORT" default:"5000" validate:"min=1,max=65535"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// DBDriver selects the Document Store backend.
	DBDriver      string `envconfig:"DB_DRIVER" default:"mongo" validate:"oneof=mongo sqlite"`
	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"sweet_memories"`
	SQLitePath    string `envconfig:"DB_PATH" default:"data/sweet_memories.db"`

	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryURL       string `envconfig:"CLOUDINARY_URL"`

	// CORSAllowedOrigins is a comma-separated list of origin patterns.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:*,https://*.vercel.app"`
	MaxBodyBytes       int64    `envconfig:"MAX_BODY_BYTES" default:"26214400" validate:"gt=0"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	for i, o := range cfg.CORSAllowedOrigins {
		cfg.CORSAllowedOrigins[i] = strings.TrimSpace(o)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level. Load has already rejected
// unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
