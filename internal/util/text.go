package util

import (
	"strconv"
	"strings"
)

// NormalizeProduct trims and upper-cases a product name. Source files mix
// case freely; every downstream table keys on the upper-cased form.
func NormalizeProduct(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// ParseQuantity coerces a raw quantity cell to a number. Brazilian exports
// write decimal commas; those become decimal points before parsing. The
// second return is false when the cell is not numeric.
func ParseQuantity(input string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(input, ",", "."))
	if s == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
