package zone

import (
	"fmt"
	"strings"
	"unicode"

	"pricing/internal/pkg/errs"
)

// NormalizePostalCode strips separators and whitespace and upper-cases the
// remaining characters, so "00-001", "00 001" and "00001" compare equal.
func NormalizePostalCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// PostalRange is an inclusive range of normalized postal codes of equal length.
// Codes are compared lexicographically, which matches numeric order for the
// fixed-width numeric codes used by most countries.
type PostalRange struct {
	from string
	to   string
}

// NewPostalRange normalizes both bounds and checks from ≤ to.
//
// Example:
//
//	warsaw, _ := zone.NewPostalRange("00-001", "04-999")
//	warsaw.Contains("02-495") // true
func NewPostalRange(from, to string) (PostalRange, error) {
	nFrom, nTo := NormalizePostalCode(from), NormalizePostalCode(to)
	if nFrom == "" {
		return PostalRange{}, errs.NewValueIsRequiredError("postalRange.from")
	}
	if nTo == "" {
		return PostalRange{}, errs.NewValueIsRequiredError("postalRange.to")
	}
	if len(nFrom) != len(nTo) {
		return PostalRange{}, errs.NewValueIsInvalidErrorWithCause("postalRange",
			fmt.Errorf("bounds %q and %q differ in length", from, to))
	}
	if nFrom > nTo {
		return PostalRange{}, errs.NewValueIsInvalidErrorWithCause("postalRange",
			fmt.Errorf("from %q is after to %q", from, to))
	}
	return PostalRange{from: nFrom, to: nTo}, nil
}

// MustPostalRange is NewPostalRange for static tables. It panics on error.
func MustPostalRange(from, to string) PostalRange {
	r, err := NewPostalRange(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

// From returns the normalized lower bound.
func (r PostalRange) From() string { return r.from }

// To returns the normalized upper bound.
func (r PostalRange) To() string { return r.to }

// Contains reports whether the code falls within the range. The code is
// normalized first; codes of a different length never match.
func (r PostalRange) Contains(code string) bool {
	n := NormalizePostalCode(code)
	if len(n) != len(r.from) {
		return false
	}
	return n >= r.from && n <= r.to
}

func (r PostalRange) String() string {
	return r.from + "-" + r.to
}
