package extractor

import "strings"

// blockIndicators are markup phrases that mean the fetch hit a bot wall
// rather than a listing. Phrases are deliberately multi-word where a single
// token would false-positive (every page mentions "robots" in its meta tags).
var blockIndicators = []string{
	"captcha",
	"access denied",
	"403 forbidden",
	"bot detection",
	"are you a robot",
	"are you a human",
	"robot check",
	"pardon our interruption",
	"request blocked",
	"attention required",
	"verify you are human",
}

// Blocked reports whether markup is a bot-blocking interstitial. Checked
// before any strategy runs; a blocked page short-circuits extraction.
func Blocked(markup string) bool {
	lower := strings.ToLower(markup)
	for _, ind := range blockIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
