package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	libconfig "voltfinder/backend/libs/config"
)

// Config defines stations service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"STATIONS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"STATIONS_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"STATIONS_REDIS_ADDR"`
		Password string `yaml:"password" env:"STATIONS_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"STATIONS_REDIS_DB"`
	} `yaml:"redis"`
	Catalog struct {
		Provider       string `yaml:"provider" env:"STATIONS_CATALOG_PROVIDER"`
		BaseURL        string `yaml:"baseUrl" env:"STATIONS_CATALOG_BASE_URL"`
		APIKey         string `yaml:"apiKey" env:"STATIONS_CATALOG_API_KEY"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"STATIONS_CATALOG_TIMEOUT"`
		Seed           int64  `yaml:"seed" env:"STATIONS_CATALOG_SEED"`
	} `yaml:"catalog"`
	Cache struct {
		TTLSeconds int `yaml:"ttlSeconds" env:"STATIONS_CACHE_TTL"`
		MaxEntries int `yaml:"maxEntries" env:"STATIONS_CACHE_MAX_ENTRIES"`
	} `yaml:"cache"`
	Tenant struct {
		DefaultOwnerID int64 `yaml:"defaultOwnerId" env:"STATIONS_DEFAULT_OWNER_ID"`
	} `yaml:"tenant"`
}

// Catalog provider values.
const (
	ProviderSynthetic     = "synthetic"
	ProviderOpenChargeMap = "openchargemap"
)

// Load reads configuration via shared helper. A local .env is applied first
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Port = "8084"
	cfg.Catalog.Provider = ProviderSynthetic
	cfg.Catalog.TimeoutSeconds = 10
	cfg.Cache.TTLSeconds = 300
	cfg.Cache.MaxEntries = 1024
	cfg.Tenant.DefaultOwnerID = 1

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	switch cfg.Catalog.Provider {
	case ProviderSynthetic:
	case ProviderOpenChargeMap:
		if strings.TrimSpace(cfg.Catalog.APIKey) == "" {
			return nil, errors.New("config: catalog api key required for openchargemap")
		}
	default:
		return nil, fmt.Errorf("config: unknown catalog provider %q", cfg.Catalog.Provider)
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = 1024
	}
	if cfg.Tenant.DefaultOwnerID <= 0 {
		cfg.Tenant.DefaultOwnerID = 1
	}
	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8084"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// CacheTTL converts configured cache expiry to duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CatalogTimeout converts the configured fetch timeout to duration.
func (c *Config) CatalogTimeout() time.Duration {
	if c.Catalog.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Catalog.TimeoutSeconds) * time.Second
}
