package parse

import (
	"regexp"
	"strings"
)

// VINs are 17 characters drawn from an alphabet that excludes I, O, and Q.
var vinRe = regexp.MustCompile(`\b[A-HJ-NPR-Za-hj-npr-z0-9]{17}\b`)

// VIN finds the first plausible vehicle identification number in text and
// returns it uppercased. A token of 17 letters/digits that includes I, O, or
// Q is rejected rather than trimmed.
func VIN(text string) (string, bool) {
	for _, m := range vinRe.FindAllString(text, -1) {
		upper := strings.ToUpper(m)
		// All-digit or all-letter runs of 17 are almost always phone
		// numbers or tracking IDs, not VINs.
		if !strings.ContainsAny(upper, "0123456789") {
			continue
		}
		if !strings.ContainsAny(upper, "ABCDEFGHJKLMNPRSTUVWXYZ") {
			continue
		}
		return upper, true
	}
	return "", false
}

// IsVIN reports whether s is already a well-formed VIN.
func IsVIN(s string) bool {
	if len(s) != 17 {
		return false
	}
	return vinRe.MatchString(s) && vinRe.FindString(s) == s
}
