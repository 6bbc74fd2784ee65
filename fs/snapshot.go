// Package fs records fetched pages to disk and serves them back, so the
// parsers can run against saved pages without touching the website.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mensa"
)

// Ensure Recorder and Fetcher implement mensa.Fetcher at compile time.
var (
	_ mensa.Fetcher = (*Recorder)(nil)
	_ mensa.Fetcher = (*Fetcher)(nil)
)

// SnapshotPath converts a request to a relative file path.
//
//	GET  https://www.stw.berlin/mensen.html → mensen.html
//	POST https://www.stw.berlin/xhr/speiseplan-wochentag.html
//	     with resources_id=191, date=2026-10-16, week=now
//	     → xhr/speiseplan-wochentag/date=2026-10-16&resources_id=191&week=now.html
func SnapshotPath(rawURL string, form url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", mensa.Errorf(mensa.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if p == "" {
		p = "index"
	}
	p = strings.TrimSuffix(p, path.Ext(p))

	if len(form) > 0 {
		p = path.Join(p, form.Encode())
	}
	return filepath.FromSlash(p + ".html"), nil
}

// Recorder wraps a Fetcher and saves every successful response below a
// directory.
type Recorder struct {
	next mensa.Fetcher
	dir  string
}

// NewRecorder creates a Recorder saving to dir.
func NewRecorder(next mensa.Fetcher, dir string) *Recorder {
	return &Recorder{next: next, dir: dir}
}

// Fetch delegates to the wrapped fetcher and saves the page.
func (r *Recorder) Fetch(ctx context.Context, url string) (string, error) {
	html, err := r.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return html, r.save(url, nil, html)
}

// PostForm delegates to the wrapped fetcher and saves the page.
func (r *Recorder) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	html, err := r.next.PostForm(ctx, url, form)
	if err != nil {
		return "", err
	}
	return html, r.save(url, form, html)
}

// save writes through a temporary file so readers never see a partial page.
func (r *Recorder) save(rawURL string, form url.Values, html string) error {
	rel, err := SnapshotPath(rawURL, form)
	if err != nil {
		return err
	}
	full := filepath.Join(r.dir, rel)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

// Fetcher serves pages saved by a Recorder.
type Fetcher struct {
	dir string
}

// NewFetcher creates a Fetcher reading from dir.
func NewFetcher(dir string) *Fetcher {
	return &Fetcher{dir: dir}
}

// Fetch returns the saved page for url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.load(url, nil)
}

// PostForm returns the saved page for url and form.
func (f *Fetcher) PostForm(ctx context.Context, url string, form url.Values) (string, error) {
	return f.load(url, form)
}

func (f *Fetcher) load(rawURL string, form url.Values) (string, error) {
	rel, err := SnapshotPath(rawURL, form)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(filepath.Join(f.dir, rel))
	if errors.Is(err, fs.ErrNotExist) {
		return "", mensa.Errorf(mensa.ENOTFOUND, "no snapshot %s", rel)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}
