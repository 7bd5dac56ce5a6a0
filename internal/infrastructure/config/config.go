package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Admin     AdminConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

// AdminConfig holds the single configured administrator. Leaving Email empty
// disables administrator login.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type JWTConfig struct {
	Secret  string        `env:"JWT_SECRET, required"`
	Expires time.Duration `env:"JWT_EXPIRES, default=24h"`
}

type CookieConfig struct {
	Name   string `env:"AUTH_COOKIE_NAME,   default=authToken"`
	Secure bool   `env:"AUTH_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ferreteria"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"LOGIN_RATE_LIMIT_ENABLED, default=true"`
	Limit   int           `env:"LOGIN_RATE_LIMIT,         default=10"`
	Window  time.Duration `env:"LOGIN_RATE_WINDOW,        default=1m"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS, default=http://localhost:5173"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Admin.Email != "" && cfg.Admin.Password == "" {
		return nil, errors.New("config: ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	return &cfg, nil
}
