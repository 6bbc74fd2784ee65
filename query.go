package mensa

import (
	"slices"
	"strings"
)

// MealFilter selects meals. The zero value matches every meal; each set
// field narrows the selection further.
type MealFilter struct {
	Colors    []Color
	Tags      []Tag
	MaxPrice  *Cents   // compared against the student price
	Allergens []string // meals containing any of these codes are excluded
}

// Match reports whether m satisfies every constraint of f.
//
// A vegan meal satisfies a vegetarian tag constraint even though the page
// does not label it vegetarian.
func (f MealFilter) Match(m Meal) bool {
	return f.matchPrice(m) && f.matchColor(m) && f.matchTags(m) && f.matchAllergens(m)
}

func (f MealFilter) matchPrice(m Meal) bool {
	if f.MaxPrice == nil {
		return true
	}
	return m.Price != nil && m.Price.Student <= *f.MaxPrice
}

func (f MealFilter) matchColor(m Meal) bool {
	return len(f.Colors) == 0 || slices.Contains(f.Colors, m.Color)
}

func (f MealFilter) matchTags(m Meal) bool {
	if len(f.Tags) == 0 {
		return true
	}
	for _, tag := range m.Tags {
		if slices.Contains(f.Tags, tag) {
			return true
		}
		if tag == TagVegan && slices.Contains(f.Tags, TagVegetarian) {
			return true
		}
	}
	return false
}

func (f MealFilter) matchAllergens(m Meal) bool {
	for _, code := range m.Allergens {
		if slices.Contains(f.Allergens, code) {
			return false
		}
	}
	return true
}

// FilterMenu applies f to every meal of menu.
func FilterMenu(menu Response[Meal], f MealFilter) Response[Meal] {
	return Filter(menu, f.Match)
}

// FacilityFilter selects facilities by a case-insensitive substring.
type FacilityFilter struct {
	Pattern string

	// IncludeAddress also matches the pattern against the address.
	IncludeAddress bool
}

// Match reports whether fac matches the pattern. An empty pattern matches
// every facility.
func (f FacilityFilter) Match(fac Facility) bool {
	if f.Pattern == "" {
		return true
	}
	pattern := strings.ToLower(f.Pattern)
	if strings.Contains(strings.ToLower(fac.Name), pattern) {
		return true
	}
	return f.IncludeAddress && strings.Contains(strings.ToLower(fac.Address), pattern)
}

// FilterFacilities applies f to every facility of list.
func FilterFacilities(list Response[Facility], f FacilityFilter) Response[Facility] {
	return Filter(list, f.Match)
}
