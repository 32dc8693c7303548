package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if got := cfg.Cart.PersistTimeout; got != 5*time.Second {
		t.Fatalf("expected persist timeout 5s, got %v", got)
	}

	if cfg.Cart.StorageKey != "smartshop:cart:v1" {
		t.Fatalf("unexpected storage key %q", cfg.Cart.StorageKey)
	}

	threshold, err := cfg.Filter.Threshold()
	if err != nil {
		t.Fatalf("Threshold() returned unexpected error: %v", err)
	}
	if !threshold.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected default threshold 500, got %s", threshold)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvAppEnv, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RedisRequiredForRedisDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisURL, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected redis driver without redis url to return an error")
	}
}

func TestLoad_SQLiteDriverSkipsRedis(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvCartDriver, "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.SQLite.Path != "smartshop.db" {
		t.Fatalf("unexpected sqlite path %q", cfg.SQLite.Path)
	}
}

func TestLoad_RejectsUnknownDriverAndPolicy(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartDriver, "flatfile")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown driver to return an error")
	}

	setMinimalEnv(t)
	t.Setenv("SMARTSHOP_CART_DUPLICATE_POLICY", "merge")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown duplicate policy to return an error")
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvCartDriver, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "smartshop")
	t.Setenv("SMARTSHOP_CART_DUPLICATE_POLICY", "increment")
}
