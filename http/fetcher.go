// Package http provides an HTTP-based implementation of mensa.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/mensa"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. The site rejects requests
// without a browser-like user agent.
const DefaultUserAgent = "Mozilla/5.0"

// Ensure Fetcher implements mensa.Fetcher at compile time.
var _ mensa.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page text using plain HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a GET request and returns the decoded response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", mensa.Errorf(mensa.EINVALID, "invalid request for %s: %v", url, err)
	}
	return f.do(req)
}

// PostForm submits form to url and returns the decoded response body.
func (f *Fetcher) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", mensa.Errorf(mensa.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func (f *Fetcher) do(req *http.Request) (string, error) {
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", mensa.Errorf(mensa.ENETWORK, "%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", mensa.Errorf(mensa.ENETWORK, "HTTP %d for %s", resp.StatusCode, req.URL)
	}

	// Pages may be served in a legacy encoding; convert to UTF-8.
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", mensa.Errorf(mensa.ENETWORK, "decode body of %s: %v", req.URL, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", mensa.Errorf(mensa.ENETWORK, "read body of %s: %v", req.URL, err)
	}

	return string(b), nil
}
