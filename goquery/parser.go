package goquery

import "github.com/fwojciec/mensa"

var (
	_ mensa.MenuParser     = (*Parser)(nil)
	_ mensa.FacilityParser = (*Parser)(nil)
	_ mensa.AllergenParser = (*Parser)(nil)
)

// Parser extracts menus, facilities and the allergen registry from the
// Studierendenwerk Berlin pages. It holds no state and is safe for
// concurrent use.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}
