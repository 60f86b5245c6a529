package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvFiles are loaded, when present, before environment variables are parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	GRPC     GRPCConfig
	Log      LogConfig
	Metrics  MetricsConfig
	CORS     CORSConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"funcionarios.db"`
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":5000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	RequestIDHeader string        `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
}

// GRPCConfig contains settings for the gRPC health server.
type GRPCConfig struct {
	Enabled bool   `env:"GRPC_ENABLED" envDefault:"true"`
	Address string `env:"GRPC_ADDRESS" envDefault:":50051"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

type MetricsConfig struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads .env files (if any) and then environment variables, applying defaults.
func Load() (*Config, error) {
	if err := loadEnvFiles(DefaultEnvFiles); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Address) == "" {
		return fmt.Errorf("HTTP_ADDRESS must not be empty")
	}
	if c.GRPC.Enabled && strings.TrimSpace(c.GRPC.Address) == "" {
		return fmt.Errorf("GRPC_ADDRESS must not be empty when GRPC_ENABLED is set")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Log.Level, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got '%s'", c.Log.Format)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got '%s'", c.Metrics.Path)
	}
	return nil
}

// loadEnvFiles loads the files that exist. Variables already set in the environment win.
func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// String returns a one-line summary of the config.
func (c *Config) String() string {
	grpcAddr := "disabled"
	if c.GRPC.Enabled {
		grpcAddr = c.GRPC.Address
	}
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, Log: %s/%s, Metrics: %t}",
		c.Database.Path, c.HTTP.Address, grpcAddr, c.Log.Level, c.Log.Format, c.Metrics.Enabled)
}
