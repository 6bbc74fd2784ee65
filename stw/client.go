// Package stw retrieves menus, facilities and allergens from the
// Studierendenwerk Berlin website. It composes a mensa.Fetcher for transport
// with the page parsers and knows the site's URLs and form fields.
package stw

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/mensa"
)

// DefaultBaseURL is the root of the Studierendenwerk Berlin website.
const DefaultBaseURL = "https://www.stw.berlin"

// Site paths.
const (
	menuPath       = "/xhr/speiseplan-wochentag.html"
	facilitiesPath = "/mensen.html"
)

// DateLayout is the date format the menu endpoint expects.
const DateLayout = "2006-01-02"

var (
	_ mensa.MenuService     = (*Client)(nil)
	_ mensa.FacilityService = (*Client)(nil)
	_ mensa.AllergenService = (*Client)(nil)
)

// Parser is the set of page parsers a Client needs.
type Parser interface {
	mensa.MenuParser
	mensa.FacilityParser
	mensa.AllergenParser
}

// Client retrieves and parses pages from the website.
type Client struct {
	Fetcher mensa.Fetcher
	Parser  Parser

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Now returns the current time; used when a query has no date.
	Now func() time.Time
}

// NewClient returns a Client for the live website.
func NewClient(fetcher mensa.Fetcher, parser Parser) *Client {
	return &Client{
		Fetcher: fetcher,
		Parser:  parser,
		BaseURL: DefaultBaseURL,
		Now:     time.Now,
	}
}

// FindMenu fetches and parses one facility's menu.
func (c *Client) FindMenu(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
	if q.Facility <= 0 {
		return nil, mensa.Errorf(mensa.EINVALID, "facility code required")
	}

	html, err := c.Fetcher.PostForm(ctx, c.url(menuPath), c.menuForm(q))
	if err != nil {
		return nil, err
	}

	menu, err := c.Parser.ParseMenu(html)
	if err != nil {
		return nil, fmt.Errorf("menu of facility %d: %w", q.Facility, err)
	}
	return menu, nil
}

func (c *Client) menuForm(q mensa.MenuQuery) url.Values {
	date := q.Date
	if date.IsZero() {
		date = c.now()
	}
	return url.Values{
		"week":         {"now"},
		"date":         {date.Format(DateLayout)},
		"resources_id": {strconv.Itoa(q.Facility)},
	}
}

// FindFacilities fetches and parses the facility list.
func (c *Client) FindFacilities(ctx context.Context) (mensa.Response[mensa.Facility], error) {
	html, err := c.Fetcher.Fetch(ctx, c.url(facilitiesPath))
	if err != nil {
		return nil, err
	}

	list, err := c.Parser.ParseFacilities(html)
	if err != nil {
		return nil, fmt.Errorf("facility list: %w", err)
	}
	return list, nil
}

// FindAllergens fetches the facility list page and parses its allergen
// registry.
func (c *Client) FindAllergens(ctx context.Context) ([]mensa.Allergen, error) {
	html, err := c.Fetcher.Fetch(ctx, c.url(facilitiesPath))
	if err != nil {
		return nil, err
	}

	allergens, err := c.Parser.ParseAllergens(html)
	if err != nil {
		return nil, fmt.Errorf("allergen list: %w", err)
	}
	return allergens, nil
}

func (c *Client) url(path string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return base + path
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
