package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full process configuration, read from environment variables.
type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=AdminPass123!"`
	BodyLimit     string        `env:"BODY_LIMIT,     default=2M"`
	CORSOrigins   []string      `env:"CORS_ORIGINS"`
	CatalogPath   string        `env:"CATALOG_PATH,   default=data/consumables.json"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`

	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// RateLimitConfig sets the fixed-window limiter. Login gets its own, stricter
// budget; everything else shares Max.
type RateLimitConfig struct {
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,    default=1m"`
	Max      int           `env:"RATE_LIMIT_MAX,       default=100"`
	LoginMax int           `env:"LOGIN_RATE_LIMIT_MAX, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=workshop_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Development reports whether the process runs in development mode, which
// relaxes the CSRF origin check.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
