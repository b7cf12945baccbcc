package main

import (
	"context"
	"io"
	"log/slog"
)

// shutdowner abstracts the authenticator so tests can verify cleanup order.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup drains the authenticator's pending last_used_at updates, then
// closes the store and any other resources in order. Nil closers are skipped.
func newCleanup(ctx context.Context, authenticator shutdowner, closers ...io.Closer) func() {
	return func() {
		if authenticator != nil {
			if err := authenticator.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down authenticator", slog.String("error", err.Error()))
			}
		}

		for _, c := range closers {
			if c == nil {
				continue
			}
			if err := c.Close(); err != nil {
				slog.Error("failed to close resource", slog.String("error", err.Error()))
			}
		}
	}
}
