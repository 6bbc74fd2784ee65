package goquery

import (
	"cmp"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mensa"
)

const allergenItemSelector = "div.col-sm-6 > ul > li"

// ParseAllergens parses the allergen registry from the facility list page.
// A list item may hold any number of entries; the result is sorted by
// number, keeping page order for equal numbers.
func (p *Parser) ParseAllergens(html string) ([]mensa.Allergen, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	allergens := []mensa.Allergen{}
	var parseErr error
	doc.Find(allergenItemSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		inner, err := li.Html()
		if err != nil {
			parseErr = mensa.NewParseError("Allergens", err)
			return false
		}
		entries, err := ParseAllergenEntries(inner)
		if err != nil {
			parseErr = mensa.NewParseError("Allergens", err)
			return false
		}
		allergens = append(allergens, entries...)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	slices.SortStableFunc(allergens, func(a, b mensa.Allergen) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return allergens, nil
}
