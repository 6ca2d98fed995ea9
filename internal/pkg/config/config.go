package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Schedule ScheduleConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type AuthConfig struct {
	JWTSecret  string `env:"JWT_SECRET, required"`
	JWTIssuer  string `env:"JWT_ISSUER, default=crms"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`
}

type ScheduleConfig struct {
	// TZ names the IANA zone used for calendar-day comparisons.
	TZ      string `env:"SCHEDULE_TZ,      default=Local"`
	Workers int    `env:"REMINDER_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(context.Background(), envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Schedule.Location(); err != nil {
		return nil, fmt.Errorf("config: SCHEDULE_TZ: %w", err)
	}
	return &cfg, nil
}

// Location resolves TZ into a time.Location.
func (s ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.TZ)
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
