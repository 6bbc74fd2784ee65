package mock

import (
	"context"

	"github.com/fwojciec/mensa"
)

var _ mensa.MenuService = (*MenuService)(nil)

// MenuService is a mock implementation of mensa.MenuService.
type MenuService struct {
	FindMenuFn func(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error)
}

func (s *MenuService) FindMenu(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
	return s.FindMenuFn(ctx, q)
}

var _ mensa.FacilityService = (*FacilityService)(nil)

// FacilityService is a mock implementation of mensa.FacilityService.
type FacilityService struct {
	FindFacilitiesFn func(ctx context.Context) (mensa.Response[mensa.Facility], error)
}

func (s *FacilityService) FindFacilities(ctx context.Context) (mensa.Response[mensa.Facility], error) {
	return s.FindFacilitiesFn(ctx)
}

var _ mensa.AllergenService = (*AllergenService)(nil)

// AllergenService is a mock implementation of mensa.AllergenService.
type AllergenService struct {
	FindAllergensFn func(ctx context.Context) ([]mensa.Allergen, error)
}

func (s *AllergenService) FindAllergens(ctx context.Context) ([]mensa.Allergen, error) {
	return s.FindAllergensFn(ctx)
}
