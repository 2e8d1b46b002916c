// Package config loads console settings from flags, MOVEDESK_* environment
// variables and an optional YAML file, in that precedence order.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DevBaseURL is the fixed address a local development backend listens on.
const DevBaseURL = "http://localhost:8787/api"

type Config struct {
	// BaseURL overrides resolution entirely when set.
	BaseURL string `mapstructure:"base_url"`
	// Origin is the deployed platform origin; the API lives under /api on it.
	Origin string `mapstructure:"origin"`
	// Dev targets the fixed local development port instead of Origin.
	Dev bool `mapstructure:"dev"`

	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	RateBurst    int           `mapstructure:"rate_burst"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	SessionFile  string        `mapstructure:"session_file"`
	Debug        bool          `mapstructure:"debug"`
}

// Load reads configuration, optionally from an explicit file path. A missing
// config file is not an error; defaults and the environment cover everything.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Every key needs a registered default so environment overrides are
	// picked up by Unmarshal.
	v.SetDefault("base_url", "")
	v.SetDefault("dev", false)
	v.SetDefault("debug", false)
	v.SetDefault("origin", "https://app.movedesk.io")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("cache_ttl", 5*time.Minute)
	v.SetDefault("rate_limit", 20.0)
	v.SetDefault("rate_burst", 40)
	v.SetDefault("poll_interval", 30*time.Second)
	v.SetDefault("session_file", defaultSessionFile())

	v.SetEnvPrefix("MOVEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
	} else {
		v.SetConfigName(".movedesk")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config file")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	return cfg, nil
}

// ResolveBaseURL picks the API root: an explicit override wins, development
// mode targets the fixed local port, otherwise the platform origin serves the
// API under /api.
func (c *Config) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Dev {
		return DevBaseURL
	}
	return strings.TrimRight(c.Origin, "/") + "/api"
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".movedesk-session.json"
	}
	return filepath.Join(home, ".movedesk", "session.json")
}
