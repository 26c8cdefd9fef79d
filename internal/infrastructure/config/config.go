package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// AllowedOrigins is the comma-separated CORS allowlist. "*" permits any
	// origin; requests without an Origin header (curl, devices) always pass.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=*"`

	// LogRetention caps the number of log entries kept in memory.
	LogRetention int `env:"LOG_RETENTION, default=50000"`

	// CommandQueueCap caps each device's pending command queue.
	CommandQueueCap int `env:"COMMAND_QUEUE_CAP, default=1000"`

	// SessionTTL is the fixed expiry window applied to new sessions.
	SessionTTL time.Duration `env:"SESSION_TTL, default=8h"`

	// Bootstrap admin seeded at startup so user management is reachable.
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
