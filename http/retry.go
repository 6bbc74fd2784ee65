package http

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/mensa"
)

// Ensure RetryFetcher implements mensa.Fetcher at compile time.
var _ mensa.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries network failures of the wrapped Fetcher with
// backoff. Other failures are returned immediately.
type RetryFetcher struct {
	next   mensa.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next. It makes one attempt plus one retry per delay;
// without delays DefaultRetryDelays is used. A nil logger discards retry
// logs.
func NewRetryFetcher(next mensa.Fetcher, logger *slog.Logger, delays ...time.Duration) *RetryFetcher {
	if len(delays) == 0 {
		delays = DefaultRetryDelays()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch delegates to the wrapped fetcher, retrying network failures.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.retry(ctx, url, func(ctx context.Context) (string, error) {
		return f.next.Fetch(ctx, url)
	})
}

// PostForm delegates to the wrapped fetcher, retrying network failures.
func (f *RetryFetcher) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	return f.retry(ctx, url, func(ctx context.Context) (string, error) {
		return f.next.PostForm(ctx, url, form)
	})
}

func (f *RetryFetcher) retry(ctx context.Context, url string, fetch func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(f.delays); attempt++ {
		html, err := fetch(ctx)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if mensa.ErrorCode(err) != mensa.ENETWORK || attempt == len(f.delays) {
			break
		}

		f.logger.Warn("retry",
			"url", url,
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}
