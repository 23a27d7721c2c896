package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "ilp-kit"
	defaultAppEnv          = "development"
	defaultPort            = "3100"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultIdempotencyTTL  = 24 * time.Hour
	idemTTLSecondsEnvVar   = "IDEMPOTENCY_TTL_SECONDS"
	idemTTLDurEnvVar       = "IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Ledger holds the connection parameters for the ledger this process fronts.
// URI is used for server-to-server calls; PublicURI is the base under which
// account identifiers are minted and validated.
type Ledger struct {
	URI       string
	PublicURI string
	AdminName string
	AdminPass string
}

// Config captures application runtime configuration loaded from environment
// variables. It is immutable for the process lifetime and handed explicitly to
// every component that needs it.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	BaseURI        string
	Ledger         Ledger
	SenderURI      string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:  getEnv("APP_NAME", defaultAppName),
		AppEnv:   getEnv("APP_ENV", defaultAppEnv),
		Port:     getEnv("PORT", defaultPort),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		BaseURI:  strings.TrimSuffix(os.Getenv("API_BASE_URI"), "/"),
		Ledger: Ledger{
			URI:       strings.TrimSuffix(os.Getenv("LEDGER_URI"), "/"),
			PublicURI: strings.TrimSuffix(os.Getenv("LEDGER_PUBLIC_URI"), "/"),
			AdminName: getEnv("LEDGER_ADMIN_NAME", "admin"),
			AdminPass: os.Getenv("LEDGER_ADMIN_PASS"),
		},
		SenderURI:      strings.TrimSuffix(os.Getenv("SENDER_URI"), "/"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ShutdownPeriod: defaultShutdownDelay,
		IdempotencyTTL: defaultIdempotencyTTL,
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv(idemTTLSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLSecondsEnvVar, err)
		}
		cfg.IdempotencyTTL = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(idemTTLDurEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", idemTTLDurEnvVar, err)
		}
		cfg.IdempotencyTTL = d
	}

	if cfg.Ledger.URI == "" {
		return Config{}, fmt.Errorf("LEDGER_URI must be set")
	}

	if cfg.Ledger.PublicURI == "" {
		cfg.Ledger.PublicURI = cfg.Ledger.URI
	}

	if cfg.Ledger.AdminPass == "" {
		return Config{}, fmt.Errorf("LEDGER_ADMIN_PASS must be set")
	}

	if cfg.BaseURI == "" {
		return Config{}, fmt.Errorf("API_BASE_URI must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
