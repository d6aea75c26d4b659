package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig points the client at the REST backend
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero leaves the transport default in place.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig contains the browser UI server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SessionConfig controls where the credential lives
type SessionConfig struct {
	// StorePath is the badger directory used by the terminal client and CLI.
	StorePath    string        `mapstructure:"store_path"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieMaxAge time.Duration `mapstructure:"cookie_max_age"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// UIConfig holds list and search tuning shared by both front ends
type UIConfig struct {
	PageGroupSize  int           `mapstructure:"page_group_size"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`
	Chips          []string      `mapstructure:"chips"`
	Domains        []Domain      `mapstructure:"domains"`
}

// Domain is one entry of the source filter
type Domain struct {
	Value string `mapstructure:"value"`
	Label string `mapstructure:"label"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
	Output string `mapstructure:"output"` // stderr or a file path
}

// Load loads configuration from file and environment variables.
// Priority: ENV vars > config file > defaults. An empty path searches
// ./configs and the working directory for config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("BIZBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout", "0s")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("session.store_path", "./data/session")
	v.SetDefault("session.cookie_name", "authToken")
	v.SetDefault("session.cookie_max_age", "24h")
	v.SetDefault("session.cookie_secure", false)

	v.SetDefault("ui.page_group_size", 10)
	v.SetDefault("ui.search_debounce", "300ms")
	v.SetDefault("ui.chips", []string{"Banking", "Markets", "Economy", "Startups", "Tax"})
	v.SetDefault("ui.domains", []map[string]string{
		{"value": "livemint", "label": "Livemint"},
		{"value": "investopedia", "label": "Investopedia"},
		{"value": "economictimes", "label": "Economic Times"},
		{"value": "timesofindia", "label": "Times of India"},
		{"value": "outlookbusiness", "label": "Outlook Business"},
		{"value": "financialexpress", "label": "Financial Express"},
		{"value": "deccanherald", "label": "Deccan Herald"},
		{"value": "businesstoday", "label": "Business Today"},
		{"value": "hindustantimes", "label": "Hindustan Times"},
		{"value": "hindubusinessline", "label": "Hindu Business Line"},
		{"value": "moneycontrol", "label": "Money Control"},
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url must be an absolute URL, got: %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}

	if cfg.Server.Mode != "debug" && cfg.Server.Mode != "release" && cfg.Server.Mode != "test" {
		return fmt.Errorf("server.mode must be 'debug', 'release' or 'test', got: %s", cfg.Server.Mode)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}

	if cfg.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name is required")
	}
	if cfg.Session.StorePath == "" {
		return fmt.Errorf("session.store_path is required")
	}

	if cfg.UI.PageGroupSize < 1 {
		return fmt.Errorf("ui.page_group_size must be positive, got: %d", cfg.UI.PageGroupSize)
	}
	if cfg.UI.SearchDebounce <= 0 {
		return fmt.Errorf("ui.search_debounce must be positive")
	}
	for _, d := range cfg.UI.Domains {
		if d.Value == "" {
			return fmt.Errorf("ui.domains entries need a value")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got: %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be 'json' or 'text', got: %s", cfg.Logging.Format)
	}

	return nil
}

// Addr returns the listen address of the browser UI
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
