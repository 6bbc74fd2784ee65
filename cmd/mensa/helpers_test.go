package main_test

import (
	"bytes"
	"context"

	"github.com/fwojciec/mensa"
	main "github.com/fwojciec/mensa/cmd/mensa"
	"github.com/fwojciec/mensa/lipgloss"
	"github.com/fwojciec/mensa/mock"
	"github.com/muesli/termenv"
)

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Formatter: lipgloss.NewFormatter(stdout, lipgloss.WithColorProfile(termenv.Ascii)),
	}
}

func price(student mensa.Cents) *mensa.Price {
	return &mensa.Price{Student: student, Employee: student + 100, Guest: student + 200}
}

// menuService serves the same two-group menu for every facility and records
// the queries it receives.
func menuService(queries chan<- mensa.MenuQuery) *mock.MenuService {
	return &mock.MenuService{
		FindMenuFn: func(_ context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
			if queries != nil {
				queries <- q
			}
			return mensa.Response[mensa.Meal]{
				{Name: "Essen", Items: []mensa.Meal{
					{Name: "Linseneintopf", Color: mensa.ColorGreen, Tags: []mensa.Tag{mensa.TagVegan}, Price: price(195), Allergens: []string{}},
					{Name: "Schnitzel", Color: mensa.ColorRed, Tags: []mensa.Tag{}, Price: price(450), Allergens: []string{"22a"}},
				}},
				{Name: "Desserts", Items: []mensa.Meal{
					{Name: "Pudding", Color: mensa.ColorYellow, Tags: []mensa.Tag{mensa.TagVegetarian}, Price: price(75), Allergens: []string{"23"}},
				}},
			}, nil
		},
	}
}

func facilityService() *mock.FacilityService {
	return &mock.FacilityService{
		FindFacilitiesFn: func(_ context.Context) (mensa.Response[mensa.Facility], error) {
			return mensa.Response[mensa.Facility]{
				{Name: "Humboldt-Universität", Items: []mensa.Facility{
					{Code: 191, Name: "Mensa HU Süd", Address: "Unter den Linden 6"},
					{Code: 147, Name: "Mensa HU Nord", Address: "Hannoversche Str. 7"},
				}},
				{Name: "Technische Universität", Items: []mensa.Facility{
					{Code: 321, Name: "Mensa TU Hardenbergstraße", Address: "Hardenbergstr. 34"},
				}},
			}, nil
		},
	}
}

func allergenService() *mock.AllergenService {
	return &mock.AllergenService{
		FindAllergensFn: func(_ context.Context) ([]mensa.Allergen, error) {
			return []mensa.Allergen{
				{Number: 9, Name: "Sellerie"},
				{Number: 22, Index: "a", Name: "Weizen"},
			}, nil
		},
	}
}
