package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs first-party bearer tokens. ProviderSecret verifies
	// provider-issued tokens and doubles as the verification fallback.
	// Neither has a default: absence of both is a fatal state surfaced at
	// call time, never papered over with a constant.
	JWTSecret      string `env:"JWT_SECRET"`
	ProviderSecret string `env:"AUTH_PROVIDER_SECRET"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	// ProviderTokenMode selects the provider-token verification policy:
	// "lenient" (log and continue on verification errors) or "strict".
	ProviderTokenMode string `env:"PROVIDER_TOKEN_MODE, default=lenient"`

	Postgres PostgresConfig
	Redis    RedisConfig
	S3       S3Config
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/drive?sslmode=disable"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Endpoint   string        `env:"S3_ENDPOINT"`
	Region     string        `env:"S3_REGION,   default=us-east-1"`
	Bucket     string        `env:"S3_BUCKET,   default=drive-files"`
	AccessKey  string        `env:"S3_ACCESS_KEY"`
	SecretKey  string        `env:"S3_SECRET_KEY"`
	PresignTTL time.Duration `env:"PRESIGN_TTL, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
