// Package mensa provides a scraper and query engine for the daily menus of
// the Studierendenwerk Berlin canteens. It turns the site's HTML pages into
// typed menus, facility lists and the allergen registry, and filters them by
// color, tag, price, allergens and free text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, lipgloss/).
package mensa
