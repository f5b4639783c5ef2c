package dsarc

import "log/slog"

// Option configures loading.
type Option func(*loadConfig)

type loadConfig struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// WithLogger sets the logger used while loading and extracting.
// Each entry is logged at debug level with its filename, offset and size.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithProgress sets a callback that receives a StageLoading event per entry.
func WithProgress(fn ProgressFunc) Option {
	return func(c *loadConfig) {
		c.progress = fn
	}
}
