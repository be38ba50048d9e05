package auth

import (
	"io"
	"time"

	"crypto/rand"

	"github.com/sirupsen/logrus"
)

// Config gathers the engine's tunables. Zero-value Config is not ready
// to use; build one with NewConfig, which fills in defaults.
type Config struct {
	// MaxAttempts bounds how many times the surrounding HTTP engine should
	// retry a request for this session before surfacing the class's failure.
	MaxAttempts int

	// RequireCSPRNG, when true (the default), makes the Digest driver fail
	// closed with liberrors.ErrCSPRNGUnavailable rather than ever falling
	// back to a weaker entropy source.
	RequireCSPRNG bool

	// Clock returns the current time, stamped onto lifecycle log entries.
	// Overridable for deterministic test output; it has no bearing on
	// cnonce generation, which draws only from Rand.
	Clock func() time.Time

	// Rand is the entropy source used to build cnonces. Defaults to
	// crypto/rand.Reader.
	Rand io.Reader

	// Logger is a base logger entry carried on the Config. The lifecycle
	// hooks do not read it: they log through the entry attached to the
	// request context (internal/authlog), or authlog's package-level
	// default when the context carries none.
	Logger *logrus.Entry
}

// Option mutates a Config being built by NewConfig.
type Option func(*Config)

// WithMaxAttempts overrides the default retry budget (must be >= 2).
func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

// WithClock overrides the clock stamped onto lifecycle log entries.
func WithClock(clock func() time.Time) Option {
	return func(c *Config) { c.Clock = clock }
}

// WithRand overrides the entropy source used for cnonce generation.
func WithRand(r io.Reader) Option {
	return func(c *Config) { c.Rand = r }
}

// WithLogger overrides the default logger entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *Config) { c.Logger = entry }
}

// AllowWeakEntropy disables the CSPRNG-required policy. Not recommended:
// a short or failed read from Rand is then not fatal, and the cnonce is
// built from whatever bytes were read plus a random UUID, so cnonces are
// still not deterministic.
func AllowWeakEntropy() Option {
	return func(c *Config) { c.RequireCSPRNG = false }
}

// NewConfig builds a Config from the given options, starting from the
// engine's documented defaults.
func NewConfig(opts ...Option) Config {
	c := Config{
		MaxAttempts:   2,
		RequireCSPRNG: true,
		Clock:         time.Now,
		Rand:          rand.Reader,
		Logger:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
