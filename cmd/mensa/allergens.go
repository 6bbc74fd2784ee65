package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/mensa"
)

// Run executes the allergens command.
func (c *AllergensCmd) Run(deps *Dependencies) error {
	allergens, err := deps.Allergens.FindAllergens(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(allergens)
	}

	fmt.Fprint(deps.Stdout, deps.Formatter.Allergens(allergens))
	return nil
}
