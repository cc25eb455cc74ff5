package sfnt

import (
	"go.uber.org/zap"

	"github.com/gopherfonts/sfntoutline/cff"
)

// Option sets a field of the config that newConfig assembles. The core
// takes no CLI flags, environment variables, or filesystem paths; a logger
// is the only configurable surface.
type Option func(*config)

type config struct {
	logger cff.Logger
}

func newConfig(opts []Option) *config {
	c := &config{logger: cff.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type zapCffLogger struct {
	z *zap.SugaredLogger
}

func (l zapCffLogger) Warnf(format string, args ...interface{}) {
	l.z.Warnf(format, args...)
}

// WithLogger makes z, through a cff.Logger adapter, the config's logger in
// place of the default cff.NopLogger, which discards every message.
func WithLogger(z *zap.Logger) Option {
	return func(c *config) { c.logger = zapCffLogger{z.Sugar()} }
}
