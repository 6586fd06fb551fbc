// Package config handles configuration for the API stand-in, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the API stand-in.
//
// Fields:
//   - ListenAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: access token lifetime, reported as expires_in.
//   - ClientID / ClientSecret: expected OAuth client; empty accepts any client.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ListenAddr                  string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ClientID                    string
	ClientSecret                string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
