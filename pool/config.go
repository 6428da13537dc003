package pool

import (
	"github.com/sirupsen/logrus"

	"github.com/coredrift/taskrt/metrics"
)

// Config holds the parameters a Pool is constructed with. Use Option
// functions with New rather than constructing Config directly.
type Config struct {
	Size    uint
	Logger  *logrus.Logger
	Metrics metrics.Provider
}

// defaultConfig centralizes default values, mirroring the split between a
// base configuration and the options that adjust it.
func defaultConfig() Config {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return Config{
		Size:    0, // 0 means "size to GOMAXPROCS", resolved in New
		Logger:  logger,
		Metrics: metrics.NewNoopProvider(),
	}
}

// Option configures a Pool at construction time.
type Option func(*Config)

// WithSize fixes the number of workers. n == 0 (the default) sizes the
// pool to runtime.GOMAXPROCS(0) at construction time.
func WithSize(n uint) Option {
	return func(c *Config) { c.Size = n }
}

// WithLogger sets the logger the pool and its workers use for lifecycle
// and recovered-panic diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithMetrics sets the metrics.Provider the pool reports through. The
// default is a no-op provider.
func WithMetrics(provider metrics.Provider) Option {
	return func(c *Config) { c.Metrics = provider }
}
