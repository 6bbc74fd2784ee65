package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mensa"
	"github.com/fwojciec/mensa/fs"
	"github.com/fwojciec/mensa/goquery"
	mensahttp "github.com/fwojciec/mensa/http"
	"github.com/fwojciec/mensa/lipgloss"
	mensaslog "github.com/fwojciec/mensa/slog"
	"github.com/fwojciec/mensa/stw"
	"github.com/muesli/termenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Run wires the live website for any
	// left nil.
	MenuService     mensa.MenuService
	FacilityService mensa.FacilityService
	AllergenService mensa.AllergenService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mensa"),
		kong.Description("Daily menus of the Studierendenwerk Berlin dining halls."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"base_url": stw.DefaultBaseURL},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mensa --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	menus, facilities, allergens := m.MenuService, m.FacilityService, m.AllergenService
	if menus == nil || facilities == nil || allergens == nil {
		var fetcher mensa.Fetcher = mensahttp.NewRetryFetcher(
			mensahttp.NewFetcher(mensahttp.WithTimeout(cli.Timeout)), logger)
		switch {
		case cli.Replay != "":
			fetcher = fs.NewFetcher(cli.Replay)
		case cli.Record != "":
			fetcher = fs.NewRecorder(fetcher, cli.Record)
		}
		client := stw.NewClient(mensaslog.NewLoggingFetcher(fetcher, logger), goquery.NewParser())
		client.BaseURL = cli.BaseURL
		if menus == nil {
			menus = client
		}
		if facilities == nil {
			facilities = client
		}
		if allergens == nil {
			allergens = client
		}
	}

	deps.Menus = mensaslog.NewLoggingMenuService(menus, logger)
	deps.Facilities = mensaslog.NewLoggingFacilityService(facilities, logger)
	deps.Allergens = mensaslog.NewLoggingAllergenService(allergens, logger)

	var opts []lipgloss.Option
	if cli.NoColor {
		opts = append(opts, lipgloss.WithColorProfile(termenv.Ascii))
	}
	deps.Formatter = lipgloss.NewFormatter(stdout, opts...)

	return kongCtx.Run(deps)
}
