package mock

import "github.com/fwojciec/mensa"

var (
	_ mensa.MenuParser     = (*Parser)(nil)
	_ mensa.FacilityParser = (*Parser)(nil)
	_ mensa.AllergenParser = (*Parser)(nil)
)

// Parser is a mock implementation of the mensa page parsers.
type Parser struct {
	ParseMenuFn       func(html string) (mensa.Response[mensa.Meal], error)
	ParseFacilitiesFn func(html string) (mensa.Response[mensa.Facility], error)
	ParseAllergensFn  func(html string) ([]mensa.Allergen, error)
}

func (p *Parser) ParseMenu(html string) (mensa.Response[mensa.Meal], error) {
	return p.ParseMenuFn(html)
}

func (p *Parser) ParseFacilities(html string) (mensa.Response[mensa.Facility], error) {
	return p.ParseFacilitiesFn(html)
}

func (p *Parser) ParseAllergens(html string) ([]mensa.Allergen, error) {
	return p.ParseAllergensFn(html)
}
