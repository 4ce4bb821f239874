package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

var (
	fallbackPriceRe   = regexp.MustCompile(`\$\s?([\d,]{3,})(?:\.\d{2})?`)
	fallbackMileageRe = regexp.MustCompile(`(?i)[\d,]+\s*(?:mi\b|miles\b)`)
)

// preferredFallbackWords mark contexts worth trusting over MSRP when the
// whole-document scan is all we have.
var preferredFallbackWords = []string{"internet", "our price", "sale"}

// RegexFallback is the last-resort whole-document scan. The engine runs it
// only when no earlier strategy produced a price, so its noisy candidates
// don't dilute higher-quality ones.
func RegexFallback(markup string) *Partial {
	p := NewPartial()

	if vin, ok := parse.VIN(markup); ok {
		p.VIN = vin
	}
	if mi, ok := parse.Mileage(markup); ok {
		p.MileageCandidates = append(p.MileageCandidates,
			NewMileageCandidate(float64(mi), model.SourceRegex, mileageContext(markup)))
	}

	for _, m := range fallbackPriceRe.FindAllStringSubmatchIndex(markup, -1) {
		raw := markup[m[2]:m[3]]
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		if f < parse.MinPrice || f > parse.MaxPrice {
			continue
		}
		ctx := window(markup, m[0], m[1], contextRadius)
		c := NewPriceCandidate(f, model.SourceRegex, ctx)
		if containsAny(strings.ToLower(ctx), preferredFallbackWords) && c.Label == "Price" {
			c.Label = "Internet Price"
		}
		p.PriceCandidates = append(p.PriceCandidates, c)
	}

	return p
}

func mileageContext(markup string) string {
	if loc := fallbackMileageRe.FindStringIndex(markup); loc != nil {
		return window(markup, loc[0], loc[1], contextRadius)
	}
	return "document scan"
}
