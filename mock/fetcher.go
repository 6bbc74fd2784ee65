package mock

import (
	"context"
	"net/url"

	"github.com/fwojciec/mensa"
)

var _ mensa.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of mensa.Fetcher.
type Fetcher struct {
	FetchFn    func(ctx context.Context, url string) (string, error)
	PostFormFn func(ctx context.Context, url string, form url.Values) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	return f.PostFormFn(ctx, url, form)
}
