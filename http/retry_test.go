package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/mensa"
	mensahttp "github.com/fwojciec/mensa/http"
	"github.com/fwojciec/mensa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRetryFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("retries network failures until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if calls.Add(1) < 3 {
					return "", mensa.Errorf(mensa.ENETWORK, "HTTP 503 for %s", url)
				}
				return "<html></html>", nil
			},
		}

		f := mensahttp.NewRetryFetcher(inner, discard(), time.Millisecond, time.Millisecond, time.Millisecond)
		html, err := f.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", mensa.Errorf(mensa.ENETWORK, "connection refused")
			},
		}

		f := mensahttp.NewRetryFetcher(inner, discard(), time.Millisecond, time.Millisecond)
		_, err := f.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

		require.Error(t, err)
		assert.Equal(t, mensa.ENETWORK, mensa.ErrorCode(err))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry other failures", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				calls.Add(1)
				return "", errors.New("boom")
			},
		}

		f := mensahttp.NewRetryFetcher(inner, discard(), time.Millisecond)
		_, err := f.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops waiting when the context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				cancel()
				return "", mensa.Errorf(mensa.ENETWORK, "timeout")
			},
		}

		f := mensahttp.NewRetryFetcher(inner, discard(), time.Hour)
		_, err := f.Fetch(ctx, "https://www.stw.berlin/mensen.html")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryFetcher_PostForm(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := &mock.Fetcher{
		PostFormFn: func(ctx context.Context, u string, form url.Values) (string, error) {
			if calls.Add(1) == 1 {
				return "", mensa.Errorf(mensa.ENETWORK, "HTTP 502 for %s", u)
			}
			return form.Get("resources_id"), nil
		},
	}

	f := mensahttp.NewRetryFetcher(inner, discard(), time.Millisecond)
	got, err := f.PostForm(context.Background(), "https://www.stw.berlin/xhr/speiseplan-wochentag.html", url.Values{"resources_id": {"191"}})

	require.NoError(t, err)
	assert.Equal(t, "191", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRetryFetcher_NilLogger(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, u string) (string, error) {
			if calls.Add(1) == 1 {
				return "", mensa.Errorf(mensa.ENETWORK, "HTTP 503 for %s", u)
			}
			return "<html></html>", nil
		},
	}

	f := mensahttp.NewRetryFetcher(inner, nil, time.Millisecond)
	got, err := f.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

	require.NoError(t, err)
	assert.Equal(t, "<html></html>", got)
	assert.Equal(t, int32(2), calls.Load())
}
