package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"payment-gateway/internal/database"
	"payment-gateway/internal/logger"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr            string
	AllowedOrigins      []string
	Log                 logger.Config
	SupportedCurrencies []string
	ExpiryLocation      *time.Location
	Bank                BankConfig
	StoreBackend        string
	Database            database.Config
}

type BankConfig struct {
	URL            string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	// SimulatorAddr is where cmd/bank listens.
	SimulatorAddr string
}

// Load reads the configuration from the environment. Variables found in the
// given .env files (default ".env") are applied first without overriding
// what is already set; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8090"),
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "*")),
		Log: logger.Config{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		SupportedCurrencies: splitList(strings.ToUpper(getenv("SUPPORTED_CURRENCIES", "USD,GBP,EUR"))),
		Bank: BankConfig{
			URL:           getenv("BANK_URL", "http://localhost:8080/payments"),
			SimulatorAddr: getenv("BANK_SIMULATOR_ADDR", ":8080"),
		},
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		Database: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			Username: getenv("DB_USERNAME", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: getenv("DB_DATABASE", "payments"),
			Schema:   getenv("DB_SCHEMA", "public"),
		},
	}

	var err error
	if cfg.Log.Development, err = strconv.ParseBool(getenv("LOG_DEVELOPMENT", "false")); err != nil {
		return nil, fmt.Errorf("parsing LOG_DEVELOPMENT: %w", err)
	}
	if cfg.Bank.ConnectTimeout, err = time.ParseDuration(getenv("BANK_CONNECT_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("parsing BANK_CONNECT_TIMEOUT: %w", err)
	}
	if cfg.Bank.ReadTimeout, err = time.ParseDuration(getenv("BANK_READ_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("parsing BANK_READ_TIMEOUT: %w", err)
	}
	if cfg.ExpiryLocation, err = time.LoadLocation(getenv("EXPIRY_TZ", "UTC")); err != nil {
		return nil, fmt.Errorf("loading EXPIRY_TZ: %w", err)
	}

	if len(cfg.SupportedCurrencies) == 0 {
		return nil, errors.New("SUPPORTED_CURRENCIES must list at least one currency")
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND=%s", cfg.StoreBackend)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
