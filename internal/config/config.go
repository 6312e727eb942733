// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration values.
const (
	defaultAddr         = ":9080"
	defaultMaxBatchSize = 1000
	defaultCacheSize    = 10_000
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxBatchSize caps the number of subject lines accepted per
	// request. Zero means unlimited.
	MaxBatchSize int `koanf:"max_batch_size"`

	// CacheSize bounds the report memoization cache. Zero disables it.
	CacheSize int `koanf:"cache_size"`

	// SpamTerms overrides the built-in spam term list. Leave empty to
	// keep the defaults.
	SpamTerms []string `koanf:"spam_terms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         defaultAddr,
		MaxBatchSize: defaultMaxBatchSize,
		CacheSize:    defaultCacheSize,
		SpamTerms:    nil,
	}
}
