// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the REST client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. The saga enforces none of its own.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-projects/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ClientConfig holds settings for talking to the project REST services.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of the REST API (e.g. "http://localhost:8080").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxRetries bounds transport retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// SecretsDir is the directory holding the api-token file (default .secrets/).
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// ServerConfig holds settings for the development REST backend.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// DBPath is the SQLite database file. ":memory:" keeps everything in memory.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// AuthToken, when set, is the bearer token every API request must carry.
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token,omitempty" mapstructure:"auth_token"`

	// MaxUploadBytes caps the request body size for attachment uploads.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// Config groups all configuration sections.
type Config struct {
	Client ClientConfig `json:"client" yaml:"client" mapstructure:"client"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}
