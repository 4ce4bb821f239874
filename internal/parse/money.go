package parse

import (
	"strconv"
	"strings"
)

const (
	// MinPrice and MaxPrice bound plausible vehicle asking prices in whole
	// USD. Anything outside is treated as "not a price", not an error.
	MinPrice = 500
	MaxPrice = 250000
)

// Money parses a currency string ("$23,450", "23450.00") into whole dollars.
// Returns false for non-numeric input or values outside [MinPrice, MaxPrice].
func Money(text string) (int, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.NewReplacer("$", "", ",", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	dollars := int(f)
	if dollars < MinPrice || dollars > MaxPrice {
		return 0, false
	}
	return dollars, true
}
