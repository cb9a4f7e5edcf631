// Package config loads the web server configuration from defaults, an
// optional YAML file and SHUTTERS_WEB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment override. Sections are separated by a
// double underscore: SHUTTERS_WEB_SERVER__ADDR sets server.addr.
const EnvPrefix = "SHUTTERS_WEB_"

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Session   SessionConfig   `yaml:"session" koanf:"session"`
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Analytics AnalyticsConfig `yaml:"analytics" koanf:"analytics"`
	Portfolio PortfolioConfig `yaml:"portfolio" koanf:"portfolio"`
	CORS      CORSConfig      `yaml:"cors" koanf:"cors"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	Dev             bool          `yaml:"dev" koanf:"dev"`
	TemplatesDir    string        `yaml:"templates_dir" koanf:"templates_dir"`
	PublicDir       string        `yaml:"public_dir" koanf:"public_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// SessionConfig controls the signed session cookie.
type SessionConfig struct {
	SigningKey string `yaml:"signing_key" koanf:"signing_key"`
	Secure     bool   `yaml:"secure" koanf:"secure"`
}

// SiteConfig holds public site identity.
type SiteConfig struct {
	BaseURL  string `yaml:"base_url" koanf:"base_url"`
	Name     string `yaml:"name" koanf:"name"`
	Language string `yaml:"language" koanf:"language"`
}

// Lang returns the canonical BCP 47 form of Language, "en" when unset or
// unparseable.
func (s SiteConfig) Lang() string {
	tag, err := canonicalLanguage(s.Language)
	if err != nil || tag == "" {
		return "en"
	}
	return tag
}

func canonicalLanguage(tag string) (string, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "", nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// AnalyticsConfig holds optional tracking identifiers.
type AnalyticsConfig struct {
	GA4MeasurementID string `yaml:"ga4_measurement_id" koanf:"ga4_measurement_id"`
}

// PortfolioConfig tunes the portfolio grid.
type PortfolioConfig struct {
	Columns int `yaml:"columns" koanf:"columns"`
}

// CORSConfig lists origins allowed to call /api/*.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// LogConfig sets the logger level.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site: SiteConfig{
			BaseURL:  "http://localhost:8080",
			Name:     "Shutters by Senators",
			Language: "en",
		},
		Portfolio: PortfolioConfig{Columns: 3},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		Log:       LogConfig{Level: "info"},
	}
}

// Load layers the YAML file at path (skipped when path is empty or missing)
// and the environment over Default. PORT is honoured when no explicit
// server address override is present.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: access %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("config: load env overrides: %w", err)
	}

	// Loaded values replace defaults wholesale, so a list such as
	// cors.allowed_origins can shrink or be emptied.
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !k.Exists("server.addr") {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}

func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "cors.allowed_origins" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return key, out
	}
	return key, value
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.idle_timeout":     c.Server.IdleTimeout,
		"server.request_timeout":  c.Server.RequestTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("site.base_url %q must be an absolute URL", c.Site.BaseURL)
		}
	}
	if _, err := canonicalLanguage(c.Site.Language); err != nil {
		return fmt.Errorf("site.language %q: %w", c.Site.Language, err)
	}
	if c.Portfolio.Columns < 1 || c.Portfolio.Columns > 6 {
		return fmt.Errorf("portfolio.columns must be between 1 and 6, got %d", c.Portfolio.Columns)
	}
	if c.Session.Secure && len(c.Session.SigningKey) < 32 {
		return errors.New("session.signing_key must be at least 32 bytes when session.secure is set")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	return nil
}
