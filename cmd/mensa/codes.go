package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/mensa"
)

// Run executes the codes command.
func (c *CodesCmd) Run(deps *Dependencies) error {
	list, err := deps.Facilities.FindFacilities(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	list = mensa.FilterFacilities(list, mensa.FacilityFilter{
		Pattern:        c.Pattern,
		IncludeAddress: true,
	})

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		fmt.Fprintf(deps.Stdout, "No dining halls match %q.\n", c.Pattern)
		return nil
	}
	fmt.Fprint(deps.Stdout, deps.Formatter.Facilities(list))
	return nil
}
