package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disckocrip/retro-backend/internal/entity"
	pkgRetry "github.com/disckocrip/retro-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":3000"`

	// Static frontend bundle; empty disables the file server
	StaticDir string `env:"STATIC_DIR" envDefault:"dist"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration (log-only delivery, no SMTP)
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Persistence store configuration
	StoreCfg StoreConfig `envPrefix:"STORE_"`

	// Session controller configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Mail delivery configuration
	MailCfg MailConfig `envPrefix:"SMTP_"`

	// Question catalog override (loaded from JSON file)
	CatalogPath string `env:"CATALOG_PATH"`
	Catalog     *entity.Catalog

	// Environment (set from flag, not from env var)
	Environment string
}

// StoreConfig holds the local snapshot store settings. QuotaBytes caps a
// single stored value, mirroring the storage quota of the original medium.
type StoreConfig struct {
	Path       string `env:"PATH" envDefault:"retrospective.sqlite"`
	QuotaBytes int    `env:"QUOTA_BYTES" envDefault:"1048576"`
}

// SessionConfig holds the session controller settings.
type SessionConfig struct {
	SaveDebounce time.Duration `env:"SAVE_DEBOUNCE" envDefault:"1s"`
}

// MailConfig holds SMTP relay settings. Credentials may be blank: startup
// verification then logs an error and submissions fail at send time.
type MailConfig struct {
	Host      string               `env:"HOST" envDefault:"smtp.gmail.com"`
	Port      int                  `env:"PORT" envDefault:"587"`
	User      string               `env:"USER"`
	Password  string               `env:"PASS"`
	Recipient string               `env:"RECIPIENT" envDefault:"disckocrip@gmail.com"`
	Retry     pkgRetry.RetryConfig `envPrefix:"VERIFY_RETRY_"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load question catalog: %w", err)
	}
	cfg.Catalog = catalog

	return cfg, nil
}

// ValidateConfig checks value ranges, collecting every violation.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerAddr == "" {
		errs = append(errs, "SERVER_ADDR must not be empty")
	}

	if cfg.StoreCfg.Path == "" {
		errs = append(errs, "STORE_PATH must not be empty")
	}

	if cfg.StoreCfg.QuotaBytes < 0 {
		errs = append(errs, fmt.Sprintf("STORE_QUOTA_BYTES must not be negative, got %d", cfg.StoreCfg.QuotaBytes))
	}

	if cfg.SessionCfg.SaveDebounce <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_SAVE_DEBOUNCE must be positive, got %s", cfg.SessionCfg.SaveDebounce))
	}

	if cfg.MailCfg.Port < 1 || cfg.MailCfg.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SMTP_PORT must be between 1 and 65535, got %d", cfg.MailCfg.Port))
	}

	if cfg.MailCfg.Recipient == "" {
		errs = append(errs, "SMTP_RECIPIENT must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LoadCatalog reads the question catalog from a JSON file, falling back to
// the built-in set when no path is given or the file does not exist.
func LoadCatalog(path string) (*entity.Catalog, error) {
	if path == "" {
		return entity.DefaultCatalog(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Warning: catalog file not found at %s, using default questions\n", path)
		return entity.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var catalog entity.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog JSON: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	return &catalog, nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
