package mensa

import (
	"context"
	"net/url"
)

// Fetcher retrieves raw page text from the site.
// Non-2xx responses are reported with the ENETWORK code.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	Fetch(ctx context.Context, url string) (string, error)

	// PostForm submits form as application/x-www-form-urlencoded and
	// returns the response body.
	PostForm(ctx context.Context, url string, form url.Values) (string, error)
}
