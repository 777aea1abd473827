// Package config loads seoprobe settings from defaults, an optional YAML
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/gaurav-prasanna/seoprobe/core/pagespeed"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces automatic environment lookups (SEOPROBE_FETCH_TIMEOUT).
const EnvPrefix = "SEOPROBE"

// Keys read by Load.
const (
	KeyFetchTimeout     = "fetch.timeout"
	KeyFetchUserAgent   = "fetch.user_agent"
	KeySiteFilesTimeout = "site_files.timeout"
	KeyPageSpeedAPIKey  = "pagespeed.api_key"
	KeyPageSpeedURL     = "pagespeed.endpoint"
	KeyPageSpeedTimeout = "pagespeed.timeout"
	KeyLogLevel         = "log.level"
	KeyLogDevelopment   = "log.development"
	KeyServerAddr       = "server.addr"
	KeyServerMode       = "server.mode"
	KeyServerRateLimit  = "server.rate_limit"
	KeyServerBurst      = "server.burst"
)

// Config is the resolved application configuration.
type Config struct {
	Fetch     FetchConfig
	SiteFiles SiteFilesConfig
	PageSpeed PageSpeedConfig
	Log       LogConfig
	Server    ServerConfig
}

// FetchConfig covers the primary page request.
type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// SiteFilesConfig covers the robots.txt and sitemap.xml requests.
type SiteFilesConfig struct {
	Timeout time.Duration
}

// PageSpeedConfig covers the PageSpeed Insights client.
// An empty APIKey disables the PageSpeed section.
type PageSpeedConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// LogConfig covers the zap logger.
type LogConfig struct {
	Level       string
	Development bool
}

// ServerConfig covers the serve command.
type ServerConfig struct {
	Addr      string
	Mode      string
	RateLimit float64 // requests per second per client
	Burst     int
}

// Setup prepares v: loads .env, enables environment lookups, applies
// defaults and reads cfgFile (or ./config.yaml when present).
func Setup(v *viper.Viper, cfgFile string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.BindEnv(KeyPageSpeedAPIKey, EnvPrefix+"_PAGESPEED_API_KEY", "PAGESPEED_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind PAGESPEED_API_KEY: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFetchTimeout, fetch.DefaultTimeout)
	v.SetDefault(KeyFetchUserAgent, fetch.DefaultUserAgent)
	v.SetDefault(KeySiteFilesTimeout, 10*time.Second)
	v.SetDefault(KeyPageSpeedAPIKey, "")
	v.SetDefault(KeyPageSpeedURL, pagespeed.DefaultEndpoint)
	v.SetDefault(KeyPageSpeedTimeout, pagespeed.DefaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDevelopment, false)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyServerMode, "release")
	v.SetDefault(KeyServerRateLimit, 1.0)
	v.SetDefault(KeyServerBurst, 5)
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Fetch: FetchConfig{
			Timeout:   v.GetDuration(KeyFetchTimeout),
			UserAgent: v.GetString(KeyFetchUserAgent),
		},
		SiteFiles: SiteFilesConfig{
			Timeout: v.GetDuration(KeySiteFilesTimeout),
		},
		PageSpeed: PageSpeedConfig{
			APIKey:   strings.TrimSpace(v.GetString(KeyPageSpeedAPIKey)),
			Endpoint: v.GetString(KeyPageSpeedURL),
			Timeout:  v.GetDuration(KeyPageSpeedTimeout),
		},
		Log: LogConfig{
			Level:       v.GetString(KeyLogLevel),
			Development: v.GetBool(KeyLogDevelopment),
		},
		Server: ServerConfig{
			Addr:      v.GetString(KeyServerAddr),
			Mode:      v.GetString(KeyServerMode),
			RateLimit: v.GetFloat64(KeyServerRateLimit),
			Burst:     v.GetInt(KeyServerBurst),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	durations := []struct {
		key string
		val time.Duration
	}{
		{KeyFetchTimeout, c.Fetch.Timeout},
		{KeySiteFilesTimeout, c.SiteFiles.Timeout},
		{KeyPageSpeedTimeout, c.PageSpeed.Timeout},
	}
	for _, d := range durations {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.val)
		}
	}

	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("%s must be positive, got %v", KeyServerRateLimit, c.Server.RateLimit)
	}
	if c.Server.Burst < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyServerBurst, c.Server.Burst)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%s must be debug, release or test, got %q", KeyServerMode, c.Server.Mode)
	}
	return nil
}
