// Package goquery implements the mensa page parsers using CSS selectors
// over the parsed HTML tree.
package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mensa"
	"golang.org/x/net/html"
)

// colorMarker identifies traffic-light icons among a meal's icons.
const colorMarker = "ampel"

// colorIcons maps traffic-light icon paths to colors.
var colorIcons = map[string]mensa.Color{
	"/vendor/infomax/mensen/icons/ampel_gruen_70x65.png": mensa.ColorGreen,
	"/vendor/infomax/mensen/icons/ampel_gelb_70x65.png":  mensa.ColorYellow,
	"/vendor/infomax/mensen/icons/ampel_rot_70x65.png":   mensa.ColorRed,
}

// tagIcons maps label icon paths to tags.
var tagIcons = map[string]mensa.Tag{
	"/vendor/infomax/mensen/icons/1.png":  mensa.TagVegetarian,
	"/vendor/infomax/mensen/icons/15.png": mensa.TagVegan,
	"/vendor/infomax/mensen/icons/18.png": mensa.TagOrganic,
	"/vendor/infomax/mensen/icons/38.png": mensa.TagSustainableFishing,
	"/vendor/infomax/mensen/icons/43.png": mensa.TagClimateFriendly,
}

var (
	parenthesizedRe = regexp.MustCompile(`\((.*?)\)`)
	handlerCodeRe   = regexp.MustCompile(`xhrLoad\('(\d+)'\)`)
	allergenRe      = regexp.MustCompile(`(\d+)(\p{L}?) - ([\p{L}\p{M}\p{N}_\s.()]+)`)
)

// PartitionIcons splits icon sources into the meal's color and its tags.
// Exactly the icons containing the "ampel" marker are color icons; the first
// one decides the color. A missing color icon or any icon outside the known
// tables is an error.
func PartitionIcons(srcs []string) (mensa.Color, []mensa.Tag, error) {
	var colorSrcs, tagSrcs []string
	for _, src := range srcs {
		if strings.Contains(src, colorMarker) {
			colorSrcs = append(colorSrcs, src)
		} else {
			tagSrcs = append(tagSrcs, src)
		}
	}

	if len(colorSrcs) == 0 {
		return "", nil, mensa.NewParseError("Meal.color", mensa.Errorf(mensa.ENOTFOUND, "no color icon"))
	}
	color, ok := colorIcons[iconPath(colorSrcs[0])]
	if !ok {
		return "", nil, mensa.NewParseError("Meal.color", mensa.Errorf(mensa.EINVALID, "unknown color icon %q", colorSrcs[0]))
	}

	tags := make([]mensa.Tag, 0, len(tagSrcs))
	for _, src := range tagSrcs {
		tag, ok := tagIcons[iconPath(src)]
		if !ok {
			return "", nil, mensa.NewParseError("Meal.tags", mensa.Errorf(mensa.EINVALID, "unknown tag icon %q", src))
		}
		tags = append(tags, tag)
	}

	return color, mensa.NewTagSet(tags...), nil
}

// iconPath strips scheme, host and query so absolute and relative icon
// references resolve to the same table key.
func iconPath(src string) string {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return src
	}
	return u.Path
}

// ParsePrice parses a price block such as "3,50/4,20/5,00 €" into student,
// employee and guest prices.
func ParsePrice(text string) (*mensa.Price, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "€", ""))
	text = strings.ReplaceAll(text, ",", ".")
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return nil, mensa.Errorf(mensa.EINVALID, "expected 3 prices in %q, got %d", text, len(parts))
	}

	var amounts [3]mensa.Cents
	for i, field := range []string{"Price.student", "Price.employee", "Price.guest"} {
		c, err := mensa.ParseCents(parts[i])
		if err != nil {
			return nil, mensa.NewParseError(field, err)
		}
		amounts[i] = c
	}

	return &mensa.Price{Student: amounts[0], Employee: amounts[1], Guest: amounts[2]}, nil
}

// ParseParenList returns the comma separated values inside the first pair
// of parentheses in text. Text without parentheses yields an empty set.
func ParseParenList(text string) []string {
	m := parenthesizedRe.FindStringSubmatch(text)
	if m == nil {
		return mensa.NewAllergenSet()
	}
	return mensa.NewAllergenSet(strings.Split(m[1], ", ")...)
}

// ParseHandlerCode extracts the numeric argument of an inline event handler
// of the form xhrLoad('123').
func ParseHandlerCode(attr string) (int, error) {
	m := handlerCodeRe.FindStringSubmatch(attr)
	if m == nil {
		return 0, mensa.Errorf(mensa.ENOTFOUND, "no code in handler %q", attr)
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, mensa.Errorf(mensa.EINVALID, "invalid code %q: %v", m[1], err)
	}
	return code, nil
}

// ParseAllergenEntries returns every "number[index] - name" entry in text,
// in order of appearance.
func ParseAllergenEntries(text string) ([]mensa.Allergen, error) {
	var entries []mensa.Allergen
	for _, m := range allergenRe.FindAllStringSubmatch(text, -1) {
		number, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, mensa.NewParseError("Allergen.number", err)
		}
		entries = append(entries, mensa.Allergen{
			Name:   strings.TrimSpace(m[3]),
			Number: number,
			Index:  m[2],
		})
	}
	return entries, nil
}

// newDocument parses page or fragment text.
func newDocument(text string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, mensa.Errorf(mensa.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// first returns the first descendant of sel matching selector, or a
// ParseError naming field.
func first(sel *goquery.Selection, selector, field string) (*goquery.Selection, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, mensa.NewParseError(field, mensa.Errorf(mensa.ENOTFOUND, "no element matches %q", selector))
	}
	return found, nil
}

// textNodes returns the data of every text node below n in document order,
// including whitespace-only nodes.
func textNodes(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
