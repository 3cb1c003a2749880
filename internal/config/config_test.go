package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Host: "localhost", Port: 9000},
		Upstream: UpstreamConfig{Network: "testnet", APIKey: "KEY", Timeout: time.Second},
		Log:      LogConfig{Level: LogLevelInfo, Format: LogFormatJSON},
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  HTTPConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  HTTPConfig{Host: "localhost", Port: 8080},
			wantErr: false,
		},
		{
			name:    "empty host",
			config:  HTTPConfig{Host: "", Port: 8080},
			wantErr: true,
		},
		{
			name:    "port too low",
			config:  HTTPConfig{Host: "localhost", Port: 0},
			wantErr: true,
		},
		{
			name:    "port too high",
			config:  HTTPConfig{Host: "localhost", Port: MaxPort + 1},
			wantErr: true,
		},
		{
			name:    "negative request size",
			config:  HTTPConfig{Host: "localhost", Port: 8080, MaxRequestSizeMB: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("HTTPConfig.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfig_DefaultRequestSize(t *testing.T) {
	c := HTTPConfig{Host: "localhost", Port: 8080}
	require.NoError(t, c.Validate())
	assert.Equal(t, DefaultMaxRequestSizeMB*1024*1024, c.MaxRequestSize())
}

func TestUpstreamConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  UpstreamConfig
		wantErr string
	}{
		{
			name:   "valid config",
			config: UpstreamConfig{Network: "mainnet", APIKey: "KEY", Timeout: time.Second},
		},
		{
			name:   "network is case insensitive",
			config: UpstreamConfig{Network: "TestNet", APIKey: "KEY", Timeout: time.Second},
		},
		{
			name:    "unknown network",
			config:  UpstreamConfig{Network: "devnet", APIKey: "KEY", Timeout: time.Second},
			wantErr: "upstream-network",
		},
		{
			name:    "missing api key",
			config:  UpstreamConfig{Network: "mainnet", Timeout: time.Second},
			wantErr: "upstream-api-key",
		},
		{
			name:    "api key with path separator",
			config:  UpstreamConfig{Network: "mainnet", APIKey: "a/b", Timeout: time.Second},
			wantErr: "upstream-api-key",
		},
		{
			name:    "relative base url",
			config:  UpstreamConfig{Network: "mainnet", APIKey: "KEY", BaseURL: "tonxapi.com", Timeout: time.Second},
			wantErr: "upstream-base-url",
		},
		{
			name:    "zero timeout",
			config:  UpstreamConfig{Network: "mainnet", APIKey: "KEY"},
			wantErr: "upstream-timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	assert.NoError(t, (&AuthConfig{}).Validate())
	assert.NoError(t, (&AuthConfig{Enabled: true, Secret: "s"}).Validate())
	assert.Error(t, (&AuthConfig{Enabled: true}).Validate())
}

func TestLogConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  LogConfig
		wantErr bool
	}{
		{"debug text", LogConfig{Level: "debug", Format: "text"}, false},
		{"upper case", LogConfig{Level: "INFO", Format: "JSON"}, false},
		{"bad level", LogConfig{Level: "trace", Format: "text"}, true},
		{"bad format", LogConfig{Level: "info", Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("LogConfig.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Log = LogConfig{}
	cfg.Upstream.Timeout = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.Equal(t, DefaultUpstreamTimeout, cfg.Upstream.Timeout)
}

func TestConfig_StringRedactsSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Upstream.APIKey = "super-secret-key"
	cfg.Auth = AuthConfig{Enabled: true, Secret: "gateway-secret"}

	s := cfg.String()
	assert.NotContains(t, s, "super-secret-key")
	assert.NotContains(t, s, "gateway-secret")
	assert.Contains(t, s, "Network: testnet")
	assert.Equal(t, 2, strings.Count(s, "[REDACTED]"))
}

func TestLoad(t *testing.T) {
	v := viper.New()
	v.Set("http.host", "0.0.0.0")
	v.Set("http.port", 8545)
	v.Set("upstream.network", "testnet")
	v.Set("upstream.api-key", "KEY")
	v.Set("upstream.timeout", "3s")
	v.Set("log.level", "debug")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8545, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "testnet", cfg.Upstream.NetworkID().String())
	assert.Equal(t, LogFormatText, cfg.Log.Format)
}

func TestLoad_InvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set("http.host", "localhost")
	v.Set("http.port", 9000)
	v.Set("upstream.network", "mainnet")

	_, err := Load(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}
