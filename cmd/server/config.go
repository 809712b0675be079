package main

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

// Chain store backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the server configuration read from the environment. Flags override it.
type Config struct {
	GRPCPort     int           `env:"SPELLCHAIN_GRPC_PORT" envDefault:"50051"`
	Store        string        `env:"SPELLCHAIN_STORE" envDefault:"redis"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	SQLitePath   string        `env:"SPELLCHAIN_SQLITE_PATH" envDefault:"spellchain.db"`
	HistoryTTL   time.Duration `env:"SPELLCHAIN_HISTORY_TTL" envDefault:"24h"`
	HistoryLimit int           `env:"SPELLCHAIN_HISTORY_LIMIT" envDefault:"50"`
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	// history always lives in redis
	errors.ValidateRequired("redis_url", c.RedisURL, vb)
	if c.Store == StoreSQLite {
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}
	if c.HistoryTTL <= 0 {
		vb.InvalidField("history_ttl", "must be positive")
	}
	if c.HistoryLimit <= 0 {
		vb.InvalidField("history_limit", "must be positive")
	}

	return vb.Build()
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}
