package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is everything the API reads from the environment.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"*"`
	Host        string `envconfig:"HOST" default:"0.0.0.0"`
	Port        string `envconfig:"PORT" default:"5000"`
	Env         string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	AutoMigrate       bool          `envconfig:"AUTO_MIGRATE" default:"true"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
