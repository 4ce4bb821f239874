package strategy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

// MetaTags extracts from social/SEO page metadata. This is a weak source:
// titles are reliable, prices sometimes, descriptions barely — mileage and
// condition from a description only ever arrive as a fallback.
func MetaTags(doc *goquery.Document) *Partial {
	p := NewPartial()
	if doc == nil {
		return p
	}

	if title, ok := metaContent(doc, "og:title", "twitter:title"); ok {
		p.applyTitle(title)
	} else if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		p.applyTitle(t)
	}

	if raw, ok := metaContent(doc, "og:price:amount", "product:price:amount", "twitter:data1"); ok {
		if dollars, valid := parse.Money(raw); valid {
			p.Price = dollars
			p.PriceCandidates = append(p.PriceCandidates,
				NewPriceCandidate(float64(dollars), model.SourceMeta, "meta price "+raw))
		}
	}

	if desc, ok := metaContent(doc, "og:description", "description"); ok {
		if mi, valid := parse.Mileage(desc); valid {
			p.Mileage = mi
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(float64(mi), model.SourceMeta, desc))
		}
		if cond := parse.Condition(desc); cond != model.ConditionUnknown {
			p.Condition = cond
		}
	}

	return p
}

// metaContent returns the first nonempty content attribute among meta tags
// matched by property or name.
func metaContent(doc *goquery.Document, keys ...string) (string, bool) {
	for _, key := range keys {
		sel := doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`)
		if content, ok := sel.First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}
