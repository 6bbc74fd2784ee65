package mensa

import "context"

// Facility is a dining location. Code is the site's internal resource ID and
// is what menus are requested by.
type Facility struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// FacilityService retrieves the list of dining locations.
type FacilityService interface {
	// FindFacilities returns all facilities grouped by institution.
	FindFacilities(ctx context.Context) (Response[Facility], error)
}

// FacilityParser turns the facility list page into facilities grouped by
// institution.
type FacilityParser interface {
	ParseFacilities(html string) (Response[Facility], error)
}
