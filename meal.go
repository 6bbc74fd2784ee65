package mensa

import (
	"context"
	"slices"
	"strings"
	"time"
)

// Color is the traffic-light rating printed next to every meal.
type Color string

// Traffic-light colors.
const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

// Colors lists every Color in display order.
var Colors = []Color{ColorGreen, ColorYellow, ColorRed}

// ParseColor parses the lower-case English spelling of a color.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Colors, c) {
		return "", Errorf(EINVALID, "unknown color %q, use green, yellow or red", s)
	}
	return c, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Tag is a dietary or sustainability label attached to a meal.
type Tag string

// Meal tags.
const (
	TagVegetarian         Tag = "vegetarian"
	TagVegan              Tag = "vegan"
	TagOrganic            Tag = "organic"
	TagSustainableFishing Tag = "sustainable fishing"
	TagClimateFriendly    Tag = "climate friendly"
)

// Tags lists every Tag in canonical order.
var Tags = []Tag{TagVegetarian, TagVegan, TagOrganic, TagSustainableFishing, TagClimateFriendly}

// ParseTag parses the lower-case English spelling of a tag.
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Tags, t) {
		return "", Errorf(EINVALID, "unknown tag %q, use vegetarian, vegan, organic, sustainable fishing or climate friendly", s)
	}
	return t, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(text []byte) error {
	v, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// NewTagSet returns tags without duplicates, in canonical order.
func NewTagSet(tags ...Tag) []Tag {
	set := make([]Tag, 0, len(tags))
	for _, t := range Tags {
		if slices.Contains(tags, t) {
			set = append(set, t)
		}
	}
	return set
}

// NewAllergenSet returns codes without duplicates or blanks, sorted.
func NewAllergenSet(codes ...string) []string {
	set := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c != "" {
			set = append(set, c)
		}
	}
	slices.Sort(set)
	return slices.Compact(set)
}

// Price holds the three prices printed for every meal.
type Price struct {
	Student  Cents `json:"student"`
	Employee Cents `json:"employee"`
	Guest    Cents `json:"guest"`
}

// Meal is one line of a daily menu.
type Meal struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`

	// Tags and Allergens are sets: no duplicates, canonical order.
	// Allergen codes are kept as printed and not checked against the
	// allergen registry.
	Tags      []Tag    `json:"tags"`
	Price     *Price   `json:"price"`
	Allergens []string `json:"allergens"`
}

// HasTag reports whether the meal carries tag.
func (m *Meal) HasTag(tag Tag) bool {
	return slices.Contains(m.Tags, tag)
}

// MenuQuery identifies one facility's menu on one day.
type MenuQuery struct {
	Facility int
	Date     time.Time // zero means today
}

// MenuService retrieves daily menus.
type MenuService interface {
	// FindMenu returns the menu of one facility on one day.
	FindMenu(ctx context.Context, q MenuQuery) (Response[Meal], error)
}

// MenuParser turns a menu fragment into meals grouped by menu section.
type MenuParser interface {
	ParseMenu(html string) (Response[Meal], error)
}
