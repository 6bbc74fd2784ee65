// Package slog decorates mensa services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/mensa"
)

// Ensure LoggingFetcher implements mensa.Fetcher.
var _ mensa.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   mensa.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mensa.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// PostForm delegates to the wrapped fetcher and logs the request with its
// form fields.
func (f *LoggingFetcher) PostForm(ctx context.Context, url string, form url.Values) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("post",
			"url", url,
			"form", form.Encode(),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.PostForm(ctx, url, form)
}
