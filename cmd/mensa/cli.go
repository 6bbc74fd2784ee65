package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/mensa"
	"github.com/fwojciec/mensa/lipgloss"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Menus      mensa.MenuService
	Facilities mensa.FacilityService
	Allergens  mensa.AllergenService
	Formatter  *lipgloss.Formatter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL string        `name:"base-url" env:"MENSA_BASE_URL" default:"${base_url}" help:"Website root"`
	Timeout time.Duration `env:"MENSA_TIMEOUT" default:"10s" help:"HTTP request timeout"`
	Verbose bool          `short:"v" help:"Log requests to stderr"`
	NoColor bool          `name:"no-color" help:"Disable colored output"`
	Record  string        `type:"path" xor:"snapshot" help:"Save fetched pages to this directory"`
	Replay  string        `type:"path" xor:"snapshot" help:"Read pages saved with --record instead of the website"`

	Menu      MenuCmd      `cmd:"" help:"Show the menu of one or more dining halls"`
	Codes     CodesCmd     `cmd:"" help:"List dining halls and their codes"`
	Allergens AllergensCmd `cmd:"" help:"List allergen and additive codes"`
}

// MenuCmd is the "menu" subcommand.
type MenuCmd struct {
	Colors    []mensa.Color `short:"c" name:"color" help:"Only meals with these colors (green, yellow, red)"`
	Tags      []mensa.Tag   `short:"t" name:"tag" help:"Only meals with these tags (vegetarian, vegan, organic, sustainable fishing, climate friendly)"`
	MaxPrice  string        `short:"p" name:"max-price" help:"Only meals up to this student price, e.g. 3.50"`
	Allergens []string      `short:"a" name:"allergen" help:"Exclude meals containing these allergen codes"`
	Date      string        `short:"d" help:"Menu date (YYYY-MM-DD), defaults to today"`
	Mensa     []int         `short:"m" default:"191" env:"MENSA_FACILITY" help:"Dining hall code (repeatable)"`
	JSON      bool          `help:"Print JSON instead of text"`
}

// CodesCmd is the "codes" subcommand.
type CodesCmd struct {
	Pattern string `arg:"" optional:"" help:"Case-insensitive substring of name or address"`
	JSON    bool   `help:"Print JSON instead of text"`
}

// AllergensCmd is the "allergens" subcommand.
type AllergensCmd struct {
	JSON bool `help:"Print JSON instead of text"`
}
