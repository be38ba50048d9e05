// Package authlog carries a structured logger through a context.Context,
// the same way the digest-auth request flow this engine is grounded on
// threads a *logrus.Entry through its requests: callers that care about
// correlated logging attach one with WithLogger; everything else falls
// back to a package-level default so the engine works unconfigured.
package authlog

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey struct{}

var loggerKey = contextKey{}

var defaultEntry = logrus.NewEntry(logrus.StandardLogger())

// WithLogger returns a context carrying entry for later retrieval by From.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, entry)
}

// From returns the *logrus.Entry attached to ctx, or a package-level
// default entry if none was attached.
func From(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if e, ok := ctx.Value(loggerKey).(*logrus.Entry); ok && e != nil {
			return e
		}
	}
	return defaultEntry
}
