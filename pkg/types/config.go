package types

import "time"

// HTTPConfig holds shared HTTP settings used by clients that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "docmerge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BackendConfig holds settings for the conversion backend client.
type BackendConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the conversion backend base URL. When unset the
	// hardcoded fallback is used.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// StorageConfig holds settings for the object storage client.
type StorageConfig struct {
	// Endpoint is the S3-compatible endpoint host:port.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// AccessKey and SecretKey authenticate against the object store.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`

	// UseSSL selects TLS for the storage connection.
	UseSSL bool `json:"use_ssl" yaml:"use_ssl"`

	// Bucket is the fixed bucket documents are persisted into.
	Bucket string `json:"bucket" yaml:"bucket"`
}

// AuthConfig holds settings for the identity provider client.
type AuthConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the identity provider base URL.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// AnonKey is the provider's public API key sent with auth requests.
	AnonKey string `json:"anon_key,omitempty" yaml:"anon_key,omitempty"`

	// SessionFile is the path the current session is persisted to.
	// Empty selects the default under the user config directory.
	SessionFile string `json:"session_file,omitempty" yaml:"session_file,omitempty"`
}

// HistoryConfig holds settings for the local operation history.
type HistoryConfig struct {
	// Dir is the directory holding the history database.
	Dir string `json:"dir" yaml:"dir"`
}

// ClientConfig groups all concern configurations for the client.
type ClientConfig struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Auth    AuthConfig    `json:"auth" yaml:"auth"`
	History HistoryConfig `json:"history" yaml:"history"`
}
