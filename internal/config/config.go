package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"trip-planner-go/pkg/logger"
)

type Config struct {
	HTTPPort       string   `env:"HTTP_PORT" envDefault:"8080"`
	Env            string   `env:"ENV" envDefault:"development"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
	MetricsEnabled bool     `env:"METRICS_ENABLED" envDefault:"true"`
	Invites        InvitesConfig
	AccessCache    AccessCacheConfig
	DB             DBConfig
	Redis          RedisConfig
	Supabase       SupabaseConfig
}

type InvitesConfig struct {
	// DefaultTTL applies when an invite is created without an explicit expiry.
	// Zero means invites never expire unless asked to.
	DefaultTTL    time.Duration `env:"INVITE_DEFAULT_TTL" envDefault:"0s"`
	SweepInterval time.Duration `env:"INVITE_SWEEP_INTERVAL" envDefault:"5m"`
}

type AccessCacheConfig struct {
	Backend string        `env:"ACCESS_CACHE_BACKEND" envDefault:"memory"`
	TTL     time.Duration `env:"ACCESS_CACHE_TTL" envDefault:"30s"`
}

type DBConfig struct {
	DSN             string        `env:"DB_DSN"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Name            string        `env:"DB_NAME" envDefault:"trip_planner"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone        string        `env:"DB_TIMEZONE" envDefault:"UTC"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type SupabaseConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	PublishableKey string        `env:"SUPABASE_PUBLISHABLE_KEY"`
	AuthTimeout    time.Duration `env:"SUPABASE_AUTH_TIMEOUT" envDefault:"5s"`
	SkipAuth       bool          `env:"AUTH_SKIP" envDefault:"false"`
	MockUserID     string        `env:"AUTH_MOCK_USER_ID" envDefault:"00000000-0000-0000-0000-000000000001"`
	MockUserEmail  string        `env:"AUTH_MOCK_USER_EMAIL"`
	MockUserName   string        `env:"AUTH_MOCK_USER_NAME"`
	MockUserAvatar string        `env:"AUTH_MOCK_USER_AVATAR_URL"`
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AccessCache.Backend {
	case AccessCacheMemory, AccessCacheRedis, AccessCacheNone:
	default:
		return fmt.Errorf("config: unknown ACCESS_CACHE_BACKEND %q", c.AccessCache.Backend)
	}
	if c.Invites.DefaultTTL < 0 {
		return fmt.Errorf("config: INVITE_DEFAULT_TTL must not be negative")
	}
	if c.Invites.SweepInterval < 0 {
		return fmt.Errorf("config: INVITE_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

const (
	AccessCacheMemory = "memory"
	AccessCacheRedis  = "redis"
	AccessCacheNone   = "none"
)

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
