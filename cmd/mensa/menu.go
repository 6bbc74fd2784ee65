package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/mensa"
	"github.com/fwojciec/mensa/stw"
)

// Run executes the menu command.
func (c *MenuCmd) Run(deps *Dependencies) error {
	filter, date, err := c.query()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	menus, err := stw.NewBatch(deps.Menus).FindMenus(deps.Ctx, c.Mensa, date)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}
	for i := range menus {
		menus[i].Menu = mensa.FilterMenu(menus[i].Menu, filter)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if len(menus) == 1 {
			return enc.Encode(menus[0].Menu)
		}
		return enc.Encode(menus)
	}

	for _, m := range menus {
		if len(menus) > 1 {
			fmt.Fprintf(deps.Stdout, "== %d ==\n", m.Facility)
		}
		if len(m.Menu) == 0 {
			fmt.Fprintln(deps.Stdout, "No meals found.")
			continue
		}
		fmt.Fprint(deps.Stdout, deps.Formatter.Menu(m.Menu))
	}
	return nil
}

// query turns the flags into a meal filter and a menu date.
func (c *MenuCmd) query() (mensa.MealFilter, time.Time, error) {
	filter := mensa.MealFilter{
		Colors:    c.Colors,
		Tags:      c.Tags,
		Allergens: mensa.NewAllergenSet(c.Allergens...),
	}

	if c.MaxPrice != "" {
		price, err := mensa.ParseCents(c.MaxPrice)
		if err != nil {
			return filter, time.Time{}, err
		}
		filter.MaxPrice = &price
	}

	var date time.Time
	if c.Date != "" {
		d, err := time.Parse(stw.DateLayout, c.Date)
		if err != nil {
			return filter, time.Time{}, mensa.Errorf(mensa.EINVALID, "invalid date %q, use YYYY-MM-DD", c.Date)
		}
		date = d
	}

	if len(c.Mensa) == 0 {
		return filter, date, mensa.Errorf(mensa.EINVALID, "at least one mensa code required")
	}
	return filter, date, nil
}
