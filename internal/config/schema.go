package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds lumio dashboard configuration.
// Stored at: ~/.lumio/config.yaml or ./config.yaml
type Config struct {
	// APIURL is the base URL of the extraction backend.
	APIURL  string     `mapstructure:"api_url" yaml:"api_url"`
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	Session SessionCfg `mapstructure:"session" yaml:"session"`
	HTTP    HTTPCfg    `mapstructure:"http" yaml:"http"`
	Upload  UploadCfg  `mapstructure:"upload" yaml:"upload"`
}

// ServerCfg configures the dashboard listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// SessionCfg configures form sessions.
type SessionCfg struct {
	// TTL is how long an idle form session is kept.
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// HTTPCfg configures outbound backend calls.
type HTTPCfg struct {
	// Timeout bounds one backend call, extraction included.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UploadCfg limits uploaded form files.
type UploadCfg struct {
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL: DefaultAPIURL,
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Session: SessionCfg{TTL: 30 * time.Minute},
		HTTP:    HTTPCfg{Timeout: 10 * time.Minute},
		Upload:  UploadCfg{MaxBytes: 256 << 20},
	}
}

// Addr returns the host:port the dashboard listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// BackendURL returns the backend base URL with ${ENV_VAR} references
// resolved, falling back to the default when empty.
func (c *Config) BackendURL() string {
	if u := ResolveEnvVars(c.APIURL); u != "" {
		return u
	}
	return DefaultAPIURL
}
