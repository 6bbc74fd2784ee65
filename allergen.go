package mensa

import (
	"context"
	"encoding/json"
	"strconv"
)

// Allergen is one entry of the allergen and additive registry, e.g.
// "22a - Weizen" has Number 22, Index "a" and Name "Weizen".
type Allergen struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Index  string `json:"index"` // empty or a single letter
}

// allergenJSON is the wire form of Allergen. A missing index is null.
type allergenJSON struct {
	Name   string  `json:"name"`
	Number int     `json:"number"`
	Index  *string `json:"index"`
}

// MarshalJSON encodes an empty Index as null.
func (a Allergen) MarshalJSON() ([]byte, error) {
	v := allergenJSON{Name: a.Name, Number: a.Number}
	if a.Index != "" {
		v.Index = &a.Index
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts null or a missing key as an empty Index.
func (a *Allergen) UnmarshalJSON(data []byte) error {
	var v allergenJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Allergen{Name: v.Name, Number: v.Number}
	if v.Index != nil {
		a.Index = *v.Index
	}
	return nil
}

// Code returns the code as printed in meal allergen lists, e.g. "22a".
func (a Allergen) Code() string {
	return strconv.Itoa(a.Number) + a.Index
}

// AllergenService retrieves the allergen registry.
type AllergenService interface {
	// FindAllergens returns all registry entries sorted by number.
	FindAllergens(ctx context.Context) ([]Allergen, error)
}

// AllergenParser extracts the allergen registry from the facility list page.
type AllergenParser interface {
	ParseAllergens(html string) ([]Allergen, error)
}
