package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8787
	defaultEnv        = "development"
	defaultRelayVsn   = "1.0.0"

	defaultHandshakeTimeout = 5 * time.Second
	defaultTokenTTLDays     = 30
)

// AppConfig holds runtime startup configuration loaded from YAML and
// overridden by environment variables. Environment always wins, so the
// service can run config-file-less on a serverless platform.
type AppConfig struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"` // "development" | "production"

	// Backing store (PostgREST dialect).
	StoreURL   string `yaml:"store_url"`
	AnonKey    string `yaml:"anon_key"`
	ServiceKey string `yaml:"service_key"`

	// Realtime relay.
	RelayURL         string        `yaml:"relay_url"`
	RelayVsn         string        `yaml:"relay_vsn"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`

	// Token issuance.
	JWTSecret    string `yaml:"jwt_secret"`
	TokenTTLDays int    `yaml:"token_ttl_days"`

	// Optional: enables the duplicate-mutation guard when set.
	RedisURL string `yaml:"redis_url"`

	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the YAML file at path (missing file is not an error) and then
// applies environment overrides.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:             defaultPort,
		Env:              defaultEnv,
		RelayVsn:         defaultRelayVsn,
		HandshakeTimeout: defaultHandshakeTimeout,
		TokenTTLDays:     defaultTokenTTLDays,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// env-only deployment
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.RelayVsn == "" {
		cfg.RelayVsn = defaultRelayVsn
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	if cfg.TokenTTLDays <= 0 {
		cfg.TokenTTLDays = defaultTokenTTLDays
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.StoreURL == "" {
		return errors.New("store_url (STORE_URL) is required")
	}
	if c.AnonKey == "" {
		return errors.New("anon_key (STORE_ANON_KEY) is required")
	}
	if c.ServiceKey == "" {
		return errors.New("service_key (STORE_SERVICE_KEY) is required")
	}
	if c.RelayURL == "" {
		return errors.New("relay_url (RELAY_URL) is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret (JWT_SECRET) is required")
	}
	return nil
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("STORE_URL"); v != "" {
		cfg.StoreURL = v
	}
	if v := os.Getenv("STORE_ANON_KEY"); v != "" {
		cfg.AnonKey = v
	}
	if v := os.Getenv("STORE_SERVICE_KEY"); v != "" {
		cfg.ServiceKey = v
	}
	if v := os.Getenv("RELAY_URL"); v != "" {
		cfg.RelayURL = v
	}
	if v := os.Getenv("RELAY_VSN"); v != "" {
		cfg.RelayVsn = v
	}
	if v := os.Getenv("RELAY_HANDSHAKE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HandshakeTimeout = d
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("DEVICE_TOKEN_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TokenTTLDays = n
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
}
