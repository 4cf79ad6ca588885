package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	App struct {
		ENV string `env:"APP_ENV" envDefault:"production"`
	}

	Log struct {
		Level     string `env:"LOG_LEVEL" envDefault:"info"`
		Format    string `env:"LOG_FORMAT" envDefault:"text"`
		Component string `env:"LOG_COMPONENT" envDefault:"grpc_server"`
		Source    bool   `env:"LOG_SOURCE"`
	}

	DB struct {
		Driver     string `env:"DB_DRIVER" envDefault:"mysql"`
		DSN        string `env:"MYSQL_DSN"`
		Host       string `env:"DB_HOST" envDefault:"localhost"`
		Port       string `env:"DB_PORT" envDefault:"3306"`
		User       string `env:"DB_USER" envDefault:"root"`
		Password   string `env:"DB_PASSWORD" envDefault:"root"`
		Name       string `env:"DB_NAME" envDefault:"swipe"`
		SQLitePath string `env:"SQLITE_PATH" envDefault:"swipe.db"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	GRPC struct {
		Host string `env:"GRPC_HOST" envDefault:"127.0.0.1"`
		Port string `env:"GRPC_PORT" envDefault:"50051"`
	}

	Metrics struct {
		// Empty disables the admin listener.
		Addr string `env:"METRICS_ADDR" envDefault:"127.0.0.1:9090"`
	}

	Discovery struct {
		PoolSize           int           `env:"DISCOVERY_POOL_SIZE" envDefault:"120"`
		FollowersPageSize  int           `env:"DISCOVERY_FOLLOWERS_PAGE_SIZE" envDefault:"5"`
		FollowerCountTTL   time.Duration `env:"DISCOVERY_FOLLOWER_COUNT_TTL" envDefault:"1h"`
		CatalogEnrichLimit int           `env:"DISCOVERY_CATALOG_ENRICH_LIMIT" envDefault:"40"`
	}

	Catalog struct {
		BaseURL         string        `env:"CATALOG_BASE_URL"`
		RatePerSec      float64       `env:"CATALOG_RATE_PER_SEC" envDefault:"5"`
		Burst           int           `env:"CATALOG_BURST" envDefault:"5"`
		Timeout         time.Duration `env:"CATALOG_TIMEOUT" envDefault:"3s"`
		DefaultCooldown time.Duration `env:"CATALOG_DEFAULT_COOLDOWN" envDefault:"30s"`
		SharedCooldown  bool          `env:"CATALOG_SHARED_COOLDOWN"`
	}
}

// New reads the configuration from the environment. Unparseable values fall
// back to defaults so the binaries can still start with a partial environment.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		cfg = &Config{}
		_ = env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
		cfg.fillDSN()
	}
	return cfg
}

// Load parses the environment strictly.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.fillDSN()
	return cfg, nil
}

func (c *Config) fillDSN() {
	if c.DB.DSN != "" || c.DB.Driver != "mysql" {
		return
	}
	c.DB.DSN = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name,
	)
}
