package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mensa"
)

// Selectors for the facility list page.
const (
	facilityGroupSelector     = "#itemsHochschulen .container-fluid"
	facilityGroupNameSelector = "h4"
	facilitySelector          = ".row.row-top-percent-1.ptr[onclick]"
	facilityAddressSelector   = ".addrcard"
	facilityNameSelector      = "a.dummy div"
)

// addressSkip is the number of leading text nodes of an address card that
// precede the address lines.
const addressSkip = 2

// ParseFacilities parses the facility list page, grouped by institution.
func (p *Parser) ParseFacilities(html string) (mensa.Response[mensa.Facility], error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}

	list := mensa.Response[mensa.Facility]{}
	var parseErr error
	doc.Find(facilityGroupSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		group, err := parseFacilityGroup(sel)
		if err != nil {
			parseErr = mensa.NewParseError("Facilities.groups", err)
			return false
		}
		if len(group.Items) > 0 {
			list = append(list, group)
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return list, nil
}

func parseFacilityGroup(sel *goquery.Selection) (mensa.Group[mensa.Facility], error) {
	heading, err := first(sel, facilityGroupNameSelector, "Group.name")
	if err != nil {
		return mensa.Group[mensa.Facility]{}, err
	}
	group := mensa.Group[mensa.Facility]{Name: strings.TrimSpace(heading.Text())}

	var rowErr error
	sel.Find(facilitySelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		fac, err := parseFacility(row)
		if err != nil {
			rowErr = mensa.NewParseError("Group.items", err)
			return false
		}
		group.Items = append(group.Items, fac)
		return true
	})

	return group, rowErr
}

func parseFacility(row *goquery.Selection) (mensa.Facility, error) {
	onclick, ok := row.Attr("onclick")
	if !ok {
		return mensa.Facility{}, mensa.NewParseError("Facility.code", mensa.Errorf(mensa.ENOTFOUND, "missing onclick attribute"))
	}
	code, err := ParseHandlerCode(onclick)
	if err != nil {
		return mensa.Facility{}, mensa.NewParseError("Facility.code", err)
	}

	card, err := first(row, facilityAddressSelector, "Facility.address")
	if err != nil {
		return mensa.Facility{}, err
	}
	name, err := first(card, facilityNameSelector, "Facility.name")
	if err != nil {
		return mensa.Facility{}, err
	}

	return mensa.Facility{
		Code:    code,
		Name:    strings.TrimSpace(name.Text()),
		Address: addressLines(card),
	}, nil
}

// addressLines joins the address card's text nodes after the leading ones,
// trimmed and without blanks, with ", ".
func addressLines(card *goquery.Selection) string {
	nodes := textNodes(card.Get(0))
	if len(nodes) <= addressSkip {
		return ""
	}
	var lines []string
	for _, t := range nodes[addressSkip:] {
		if t = strings.TrimSpace(t); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, ", ")
}
