package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	AppEnv           string   `env:"APP_ENV" envDefault:"development"`
	ServerPort       int      `env:"SERVER_PORT" envDefault:"10000"`
	StorageDriver    string   `env:"STORAGE_DRIVER" envDefault:"postgres"`
	MemoryTenants    []string `env:"MEMORY_TENANTS" envSeparator:","`
	MemoryAdminPass  string   `env:"MEMORY_ADMIN_PASSWORD"` // seeds an "admin" user into every memory tenant
	DefaultRateLimit int      `env:"DEFAULT_RATE_LIMIT" envDefault:"1000"`  // requests per minute per tenant
	GlobalRateLimit  int      `env:"GLOBAL_RATE_LIMIT" envDefault:"10000"`  // requests per minute per IP
	MaxRequestSize   int64    `env:"MAX_REQUEST_SIZE" envDefault:"1048576"` // bytes

	JWT      JWTConfig
	Database DatabaseSettings
	Redis    RedisConfig `envPrefix:"REDIS_"`
	SQS      SQSConfig
	S3       S3Config
}

type JWTConfig struct {
	SecretKey  string        `env:"JWT_SECRET_KEY,required,notEmpty"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"5m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"24h"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"tenant-items-api"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return &cfg, nil
}
