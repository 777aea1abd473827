package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/seoprobe/core/fetch"
	"github.com/gaurav-prasanna/seoprobe/core/pagespeed"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Setup(v, cfgFile))
	return Load(v)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAGESPEED_API_KEY", "")

	cfg, err := load(t, "")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, fetch.DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.SiteFiles.Timeout)
	assert.Equal(t, pagespeed.DefaultEndpoint, cfg.PageSpeed.Endpoint)
	assert.Equal(t, 20*time.Second, cfg.PageSpeed.Timeout)
	assert.Empty(t, cfg.PageSpeed.APIKey)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.InDelta(t, 1.0, cfg.Server.RateLimit, 0)
	assert.Equal(t, 5, cfg.Server.Burst)
}

func TestLoad_PageSpeedKeyFromEnv(t *testing.T) {
	t.Setenv("PAGESPEED_API_KEY", "  from-env ")

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.PageSpeed.APIKey)
}

func TestLoad_PrefixedEnvOverride(t *testing.T) {
	t.Setenv("SEOPROBE_FETCH_TIMEOUT", "5s")
	t.Setenv("SEOPROBE_SERVER_ADDR", ":9090")

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seoprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pagespeed:
  timeout: 45s
log:
  level: debug
server:
  burst: 10
`), 0o600))

	cfg, err := load(t, path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.PageSpeed.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Server.Burst)
}

func TestSetup_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Setup(v, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want string
	}{
		{name: "zero fetch timeout", key: KeyFetchTimeout, val: "0s", want: "fetch.timeout must be positive"},
		{name: "negative pagespeed timeout", key: KeyPageSpeedTimeout, val: "-1s", want: "pagespeed.timeout must be positive"},
		{name: "zero rate", key: KeyServerRateLimit, val: 0, want: "server.rate_limit must be positive"},
		{name: "zero burst", key: KeyServerBurst, val: 0, want: "server.burst must be at least 1"},
		{name: "bad mode", key: KeyServerMode, val: "prod", want: "server.mode must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
