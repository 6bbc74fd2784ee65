// Package lipgloss renders menus, facilities and allergens as styled
// terminal text.
package lipgloss

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mensa"
	"github.com/muesli/termenv"
)

// noPrice stands in for the student price of meals without a price block.
const noPrice = "n/a"

// Option configures a Formatter.
type Option func(*Formatter)

// WithColorProfile overrides the color profile detected from the output.
// termenv.Ascii disables all styling.
func WithColorProfile(p termenv.Profile) Option {
	return func(f *Formatter) {
		f.renderer.SetColorProfile(p)
	}
}

// Formatter renders domain values as text. Styling follows the capabilities
// of the output it was created for.
type Formatter struct {
	renderer *lipgloss.Renderer

	heading lipgloss.Style
	tag     lipgloss.Style
	code    lipgloss.Style
	name    lipgloss.Style
	colors  map[mensa.Color]lipgloss.Style
}

// NewFormatter creates a Formatter for text written to out.
func NewFormatter(out io.Writer, opts ...Option) *Formatter {
	f := &Formatter{renderer: lipgloss.NewRenderer(out)}
	for _, opt := range opts {
		opt(f)
	}

	r := f.renderer
	f.heading = r.NewStyle().Bold(true).Transform(strings.ToUpper)
	f.tag = r.NewStyle().Italic(true)
	f.code = r.NewStyle().Foreground(lipgloss.Color("2"))
	f.name = r.NewStyle().Italic(true)
	f.colors = map[mensa.Color]lipgloss.Style{
		mensa.ColorGreen:  r.NewStyle().Foreground(lipgloss.Color("2")),
		mensa.ColorYellow: r.NewStyle().Foreground(lipgloss.Color("3")),
		mensa.ColorRed:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
	return f
}

// Menu renders every group as an upper-case heading followed by one line
// per meal and a blank line.
func (f *Formatter) Menu(menu mensa.Response[mensa.Meal]) string {
	var b strings.Builder
	for _, g := range menu {
		b.WriteString(f.heading.Render(g.Name))
		b.WriteByte('\n')
		for _, m := range g.Items {
			b.WriteString(f.Meal(m))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Meal renders one meal as "[student price] name tags", with the name in
// the meal's traffic-light color.
func (f *Formatter) Meal(m mensa.Meal) string {
	price := noPrice
	if m.Price != nil {
		price = m.Price.Student.String()
	}

	parts := []string{"[" + price + "]", f.colors[m.Color].Render(m.Name)}
	for _, t := range m.Tags {
		parts = append(parts, f.tag.Render(string(t)))
	}
	return strings.Join(parts, " ")
}

// Facilities renders every institution as a heading followed by its
// facilities, one per line, code first.
func (f *Formatter) Facilities(list mensa.Response[mensa.Facility]) string {
	var b strings.Builder
	for _, g := range list {
		b.WriteString(f.heading.Render(g.Name))
		b.WriteByte('\n')
		for _, fac := range g.Items {
			fmt.Fprintf(&b, "%s %s\n", f.code.Render(fmt.Sprintf("%4d", fac.Code)), f.name.Render(fac.Name))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Allergens renders the registry one entry per line, e.g. "22a Weizen".
func (f *Formatter) Allergens(allergens []mensa.Allergen) string {
	var b strings.Builder
	for _, a := range allergens {
		index := a.Index
		if index == "" {
			index = " "
		}
		fmt.Fprintf(&b, "%s %s\n", f.code.Render(fmt.Sprintf("%2d", a.Number)+index), f.name.Render(a.Name))
	}
	return b.String()
}
