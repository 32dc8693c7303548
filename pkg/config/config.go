package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "SMARTSHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv       = "SMARTSHOP_APP_ENV"
	EnvPort         = "SMARTSHOP_APP_PORT"
	EnvCartDriver   = "SMARTSHOP_CART_DRIVER"
	EnvRedisURL     = "SMARTSHOP_REDIS_URL"
	EnvSQLitePath   = "SMARTSHOP_SQLITE_PATH"
	EnvJWTSecret    = "SMARTSHOP_JWT_SECRET"
	EnvJWTIssuer    = "SMARTSHOP_JWT_ISSUER"
	EnvDemoEmail    = "SMARTSHOP_DEMO_EMAIL"
	EnvDemoPassword = "SMARTSHOP_DEMO_PASSWORD"
)

// Cart storage drivers.
const (
	CartDriverRedis  = "redis"
	CartDriverSQLite = "sqlite"
)

type Config struct {
	App    AppConfig
	Cart   CartConfig
	Filter FilterConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
	JWT    JWTConfig
	Auth   AuthConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	if cfg.Cart.Driver == CartDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or SMARTSHOP_REDIS_ADDR is required when %s=%s", EnvRedisURL, EnvCartDriver, CartDriverRedis)
	}
	if _, err := cfg.Filter.Threshold(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CartConfig struct {
	Driver           string        `envconfig:"SMARTSHOP_CART_DRIVER" default:"redis"`
	StorageKey       string        `envconfig:"SMARTSHOP_CART_STORAGE_KEY" default:"smartshop:cart:v1"`
	PersistTimeout   time.Duration `envconfig:"SMARTSHOP_CART_PERSIST_TIMEOUT" default:"5s"`
	RehydrateTimeout time.Duration `envconfig:"SMARTSHOP_CART_REHYDRATE_TIMEOUT" default:"10s"`
	DuplicatePolicy  string        `envconfig:"SMARTSHOP_CART_DUPLICATE_POLICY" default:"increment"`
}

func (c CartConfig) validate() error {
	switch c.Driver {
	case CartDriverRedis, CartDriverSQLite:
	default:
		return fmt.Errorf("unsupported cart driver %q", c.Driver)
	}
	switch c.DuplicatePolicy {
	case "increment", "reject":
	default:
		return fmt.Errorf("unsupported duplicate policy %q", c.DuplicatePolicy)
	}
	return nil
}

// RejectsDuplicates reports whether a repeated add should be refused
// instead of incrementing the stored quantity.
func (c CartConfig) RejectsDuplicates() bool {
	return c.DuplicatePolicy == "reject"
}

type FilterConfig struct {
	PriceThreshold string `envconfig:"SMARTSHOP_FILTER_PRICE_THRESHOLD" default:"500"`
}

// Threshold parses the configured price-band boundary.
func (f FilterConfig) Threshold() (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(f.PriceThreshold))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing price threshold: %w", err)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("price threshold must be non-negative")
	}
	return value, nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSHOP_REDIS_URL"`
	Address      string        `envconfig:"SMARTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SQLiteConfig struct {
	Path string `envconfig:"SMARTSHOP_SQLITE_PATH" default:"smartshop.db"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SMARTSHOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SMARTSHOP_JWT_ISSUER" default:"smartshop"`
	ExpirationMinutes int    `envconfig:"SMARTSHOP_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token TTL configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AuthConfig struct {
	DemoEmail    string `envconfig:"SMARTSHOP_DEMO_EMAIL" default:"demo@smartshop.local"`
	DemoPassword string `envconfig:"SMARTSHOP_DEMO_PASSWORD" default:"letmein123"`
}
