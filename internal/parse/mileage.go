package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxMileage bounds plausible odometer readings.
const MaxMileage = 400000

var (
	milesRe     = regexp.MustCompile(`(?i)([\d,]+)\s*(?:mi\b|miles\b)`)
	thousandsRe = regexp.MustCompile(`(?i)\b(\d{1,3})k\b`)
)

// Mileage parses free text into an odometer reading. It matches
// "<number> mi|miles" first, then the "<number>k" shorthand, and rejects
// values outside [0, MaxMileage].
func Mileage(text string) (int, bool) {
	if m := milesRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && n >= 0 && n <= MaxMileage {
			return n, true
		}
	}

	if m := thousandsRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			n *= 1000
			if n >= 0 && n <= MaxMileage {
				return n, true
			}
		}
	}

	return 0, false
}
