package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/fwojciec/mensa/mock"
	mensaslog "github.com/fwojciec/mensa/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := mensaslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://www.stw.berlin/mensen.html")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := mensaslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://www.stw.berlin/mensen.html")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingFetcher_PostForm(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var gotForm url.Values
	inner := &mock.Fetcher{
		PostFormFn: func(ctx context.Context, u string, form url.Values) (string, error) {
			gotForm = form
			return "<div></div>", nil
		},
	}

	form := url.Values{"resources_id": {"191"}}
	fetcher := mensaslog.NewLoggingFetcher(inner, logger)
	html, err := fetcher.PostForm(context.Background(), "https://www.stw.berlin/xhr/speiseplan-wochentag.html", form)

	require.NoError(t, err)
	assert.Equal(t, "<div></div>", html)
	assert.Equal(t, form, gotForm)
	output := buf.String()
	assert.Contains(t, output, "msg=post")
	assert.Contains(t, output, `form="resources_id=191"`)
	assert.Contains(t, output, "bytes=11")
}
