package mensa

import (
	"fmt"
	"strconv"
	"strings"
)

// Cents is an exact amount of money in euro cents.
type Cents int64

// ParseCents converts a decimal euro amount such as "3.50", "3,5" or "12" to
// cents. Digits beyond the second decimal place are truncated. The
// conversion works on the decimal digits directly, so it never suffers from
// binary floating-point rounding.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Errorf(EINVALID, "empty amount")
	}

	whole, frac, _ := strings.Cut(strings.Replace(s, ",", ".", 1), ".")
	if whole == "" && frac == "" {
		return 0, Errorf(EINVALID, "invalid amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, Errorf(EINVALID, "invalid amount %q", s)
	}

	euros, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, Errorf(EINVALID, "invalid amount %q: %v", s, err)
	}
	if euros > (1<<63-1)/100 {
		return 0, Errorf(EINVALID, "amount %q out of range", s)
	}

	frac = (frac + "00")[:2]
	cents, _ := strconv.ParseInt(frac, 10, 64)

	return Cents(euros*100 + cents), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats c the way prices are printed on German menus, e.g. "3,50 €".
func (c Cents) String() string {
	return fmt.Sprintf("%d,%02d €", int64(c)/100, int64(c)%100)
}
