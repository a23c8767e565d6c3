package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Client ClientConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=opstracker"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,   default=localhost:6379"`
	DB          int           `env:"REDIS_DB,     default=0"`
	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL, default=30s"`
}

// ClientConfig holds the knobs consumed by the client SDK when it runs inside
// the same deployment (dev tooling, smoke scripts).
type ClientConfig struct {
	BaseURL      string        `env:"API_BASE_URL,  default=http://localhost:8080"`
	PollInterval time.Duration `env:"POLL_INTERVAL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
// Configuration is resolved once at startup; a failure here is fatal.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
