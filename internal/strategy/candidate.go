package strategy

import (
	"strings"

	"github.com/taylorp5/dealwise/internal/model"
)

// contextRadius bounds the window of surrounding text kept on a candidate.
const contextRadius = 80

// Context keyword vocabularies. Immutable after load; shared across calls.
var (
	monthlyWords = []string{
		"/mo", "per month", "a month", "monthly", "/month", "lease",
		"per mo", "biweekly", "bi-weekly", "per week",
	}
	conditionalWords = []string{
		"with approved credit", "starting at", "as low as", "estimate",
		"calculator", "w.a.c", "on approved", "down payment", " apr",
	}
	saleLabelWords = []string{
		"internet price", "sale price", "our price", "dealer price",
		"final price", "today's price", "selling price", "e-price",
		"eprice", "internet special", "your price", "net price",
	}
	msrpWords = []string{"msrp", "sticker", "retail price", "manufacturer's suggested"}
	listWords = []string{"list price", "listed at"}
	discountWords = []string{
		"savings", "discount", "off msrp", "you save", "price drop", "reduced",
	}

	warrantyWords = []string{
		"warranty", "coverage", "powertrain", "bumper-to-bumper", "bumper to bumper",
	}
	serviceWords = []string{
		"oil change", "service interval", "maintenance", "tire rotation",
	}
	estimateWords = []string{"estimated", "approximately", "approx", "about "}
	odometerWords = []string{"mileage", "odometer", "miles:"}
)

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// NewPriceCandidate builds a price candidate, inferring its label and flags
// from the surrounding context. Flags are fixed at creation; scoring later
// reads them but never rewrites them.
func NewPriceCandidate(value float64, source model.CandidateSource, context string) model.Candidate {
	lower := strings.ToLower(context)

	c := model.Candidate{
		Value:   value,
		Source:  source,
		Context: clip(context),
	}

	switch {
	case containsAny(lower, saleLabelWords):
		c.Label = "Internet Price"
	case containsAny(lower, msrpWords):
		c.Label = "MSRP"
		c.IsLikelyMSRP = true
	case containsAny(lower, listWords):
		c.Label = "List Price"
	default:
		c.Label = "Price"
	}

	c.IsLikelyMonthlyPayment = containsAny(lower, monthlyWords)
	c.IsLikelyConditional = containsAny(lower, conditionalWords)

	return c
}

// NewMileageCandidate builds a mileage candidate with flags inferred from
// context.
func NewMileageCandidate(value float64, source model.CandidateSource, context string) model.Candidate {
	lower := strings.ToLower(context)

	c := model.Candidate{
		Value:   value,
		Source:  source,
		Context: clip(context),
		Label:   "Mileage",
	}

	switch {
	case containsAny(lower, warrantyWords):
		c.Label = "Warranty"
		c.IsLikelyWarranty = true
	case containsAny(lower, serviceWords):
		c.Label = "Service Interval"
		c.IsLikelyServiceInterval = true
	}
	c.IsLikelyEstimated = containsAny(lower, estimateWords)

	return c
}

// HasSaleLabel reports whether a candidate carries an explicit sale/internet
// price label. Used by the MSRP tie-break rule.
func HasSaleLabel(c model.Candidate) bool {
	return c.Label == "Internet Price"
}

// HasOdometerContext reports whether a mileage candidate's context mentions
// the odometer explicitly.
func HasOdometerContext(c model.Candidate) bool {
	return containsAny(strings.ToLower(c.Context), odometerWords)
}

// HasDiscountContext reports whether a price candidate's context suggests a
// discount off MSRP without itself being the MSRP figure.
func HasDiscountContext(c model.Candidate) bool {
	return !c.IsLikelyMSRP && containsAny(strings.ToLower(c.Context), discountWords)
}

// clip bounds context text to the candidate window.
func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > contextRadius*2 {
		s = s[:contextRadius*2]
	}
	return s
}

// window returns up to radius bytes either side of [start, end) in text,
// snapped to rune-safe offsets.
func window(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	for lo > 0 && text[lo]&0xC0 == 0x80 {
		lo--
	}
	for hi < len(text) && text[hi]&0xC0 == 0x80 {
		hi++
	}
	return text[lo:hi]
}
