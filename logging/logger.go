// Package logging provides the zap logger used by the qseries engine for
// diagnostics.
package logging

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tuneinsight/qseries/config"
)

// Name is the root name of every qseries logger.
const Name = "qseries"

// Logger wraps zap.Logger.
type Logger struct {
	*zap.Logger
}

// Config is the logger configuration.
type Config struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string
	// Development selects the console encoder with colored levels.
	Development bool
	// OutputPaths are zap sink URLs or file paths, stderr when empty.
	OutputPaths []string
}

// DefaultConfig logs warnings and above to stderr, so that diagnostics
// never mix with rendered results on stdout.
func DefaultConfig() Config {
	return Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	}
}

// FromConfig maps the environment configuration onto a logger Config.
func FromConfig(cfg config.LogConfig) Config {
	c := DefaultConfig()
	c.Level = cfg.Level
	c.Development = cfg.Development
	return c
}

// New returns a Logger for cfg.
// Production output is one JSON object per diagnostic, without sampling so
// that repeated conversion warnings are all kept.
func New(cfg Config) (*Logger, error) {

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	zl, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logging")
	}

	return &Logger{Logger: zl.Named(Name)}, nil
}

// NewDefault returns New(DefaultConfig()), or a no-op logger if stderr cannot be opened.
func NewDefault() *Logger {
	if l, err := New(DefaultConfig()); err == nil {
		return l
	}
	return NewNop()
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Component returns the child logger of a package, e.g. "qseries.convert".
func (l *Logger) Component(name string) *zap.Logger {
	return l.Named(name)
}

func parseLevel(s string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.WarnLevel, errors.Wrapf(err, "logging: level %q", s)
	}
	return level, nil
}
