package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mensa"
)

// Selectors for the daily menu fragment.
const (
	menuGroupSelector     = ".splGroupWrapper"
	menuGroupNameSelector = ".splGroup"
	mealSelector          = ".splMeal"
	mealIconSelector      = "img[src].splIcon"
	mealNameSelector      = "span.bold"
	mealPriceSelector     = "div.text-right"
	mealAllergenSelector  = ".toolt"
)

// ParseMenu parses a daily menu fragment. Sections without meals are
// skipped. Any structural mismatch fails the whole menu.
func (p *Parser) ParseMenu(html string) (mensa.Response[mensa.Meal], error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	menu := mensa.Response[mensa.Meal]{}
	var parseErr error
	doc.Find(menuGroupSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		group, ok, err := parseMealGroup(sel)
		if err != nil {
			parseErr = mensa.NewParseError("Menu.groups", err)
			return false
		}
		if ok {
			menu = append(menu, group)
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return menu, nil
}

// parseMealGroup parses one menu section. It reports false for a section
// without meals.
func parseMealGroup(sel *goquery.Selection) (mensa.Group[mensa.Meal], bool, error) {
	heading, err := first(sel, menuGroupNameSelector, "Group.name")
	if err != nil {
		return mensa.Group[mensa.Meal]{}, false, err
	}
	group := mensa.Group[mensa.Meal]{Name: strings.TrimSpace(heading.Text())}

	var mealErr error
	sel.Find(mealSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		meal, err := parseMeal(s)
		if err != nil {
			mealErr = mensa.NewParseError("Group.items", err)
			return false
		}
		group.Items = append(group.Items, meal)
		return true
	})
	if mealErr != nil {
		return mensa.Group[mensa.Meal]{}, false, mealErr
	}

	return group, len(group.Items) > 0, nil
}

func parseMeal(sel *goquery.Selection) (mensa.Meal, error) {
	var srcs []string
	sel.Find(mealIconSelector).Each(func(_ int, img *goquery.Selection) {
		src, _ := img.Attr("src")
		srcs = append(srcs, src)
	})
	color, tags, err := PartitionIcons(srcs)
	if err != nil {
		return mensa.Meal{}, err
	}

	name, err := first(sel, mealNameSelector, "Meal.name")
	if err != nil {
		return mensa.Meal{}, err
	}

	price, err := parseMealPrice(sel)
	if err != nil {
		return mensa.Meal{}, mensa.NewParseError("Meal.price", err)
	}

	allergens := mensa.NewAllergenSet()
	if tooltip := sel.Find(mealAllergenSelector).First(); tooltip.Length() > 0 {
		allergens = ParseParenList(tooltip.Text())
	}

	return mensa.Meal{
		Name:      strings.TrimSpace(name.Text()),
		Color:     color,
		Tags:      tags,
		Price:     price,
		Allergens: allergens,
	}, nil
}

// parseMealPrice returns nil for meals without a price block. A price block
// that is present but malformed is an error.
func parseMealPrice(sel *goquery.Selection) (*mensa.Price, error) {
	block := sel.Find(mealPriceSelector).First()
	if block.Length() == 0 {
		return nil, nil
	}
	text := strings.TrimSpace(block.Text())
	if text == "" {
		return nil, nil
	}
	return ParsePrice(text)
}
