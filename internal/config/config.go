// Package config loads console settings from an optional YAML file and
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/formdesk/console/pkg/apiclient"
	"github.com/formdesk/console/pkg/cookie"
)

// State backends.
const (
	BackendCookie = "cookie"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

var (
	ErrReadFile         = errors.New("config: failed to read file")
	ErrParse            = errors.New("config: failed to parse YAML")
	ErrInvalidAPIURL    = errors.New("config: api_url must be an absolute http(s) URL")
	ErrUnknownBackend   = errors.New("config: unknown state backend")
	ErrRedisURLRequired = errors.New("config: redis backend requires redis_url")
	ErrSecretTooShort   = errors.New("config: cookie_secret must be at least 32 bytes")
	ErrUnknownPolicy    = errors.New("config: unknown form error policy")
	ErrInvalidDuration  = errors.New("config: invalid duration")
	ErrEmptyAddress     = errors.New("config: address must not be empty")
)

// Config is the complete console configuration.
type Config struct {
	Address string `yaml:"address"`
	APIURL  string `yaml:"api_url"`
	// APITimeout bounds each upstream call. Zero leaves calls unbounded;
	// the request Timeout middleware still applies.
	APITimeout      time.Duration `yaml:"api_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	FormErrorPolicy string        `yaml:"form_error_policy"`
	State           State         `yaml:"state"`
	Log             Log           `yaml:"log"`
	Sentry          Sentry        `yaml:"sentry"`
}

// State selects where session slots persist.
type State struct {
	Backend      string        `yaml:"backend"`
	RedisURL     string        `yaml:"redis_url"`
	CookieSecret string        `yaml:"cookie_secret"`
	TTL          time.Duration `yaml:"ttl"`
	Strict       bool          `yaml:"strict"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Sentry struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Address:         ":8080",
		APIURL:          apiclient.DefaultBaseURL,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		FormErrorPolicy: "preserve_status",
		State:           State{Backend: BackendCookie, TTL: 30 * 24 * time.Hour},
		Log:             Log{Level: "info", Format: "json"},
	}
}

// Load reads path (if not empty), applies environment overrides and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadFile, err)
		}
		if err := decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode rejects unknown keys so typos surface at startup.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrParse, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("CONSOLE_ADDRESS", &c.Address)
	str("CONSOLE_API_URL", &c.APIURL)
	str("CONSOLE_STATE_BACKEND", &c.State.Backend)
	str("REDIS_URL", &c.State.RedisURL)
	str("COOKIE_SECRET", &c.State.CookieSecret)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("SENTRY_DSN", &c.Sentry.DSN)
	str("SENTRY_ENVIRONMENT", &c.Sentry.Environment)
	str("FORM_ERROR_POLICY", &c.FormErrorPolicy)

	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Join(ErrInvalidDuration, fmt.Errorf("%s: %w", key, err))
		}
		*dst = d
		return nil
	}
	return errors.Join(
		dur("CONSOLE_REQUEST_TIMEOUT", &c.RequestTimeout),
		dur("CONSOLE_API_TIMEOUT", &c.APITimeout),
	)
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, ErrEmptyAddress)
	}
	if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ErrInvalidAPIURL)
	}

	switch c.State.Backend {
	case BackendCookie, BackendNone:
	case BackendRedis:
		if c.State.RedisURL == "" {
			errs = append(errs, ErrRedisURLRequired)
		}
	default:
		errs = append(errs, ErrUnknownBackend)
	}

	if c.State.CookieSecret != "" && len(c.State.CookieSecret) < cookie.MinSecretLen {
		errs = append(errs, ErrSecretTooShort)
	}

	switch c.FormErrorPolicy {
	case "", "preserve_status", "always_not_found":
	default:
		errs = append(errs, ErrUnknownPolicy)
	}

	return errors.Join(errs...)
}
