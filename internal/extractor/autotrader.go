package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
	"github.com/taylorp5/dealwise/internal/strategy"
)

// Autotrader VDP markup tags components with data-cmp attributes; these are
// stable across their redesigns in a way classes are not.
var autotraderFieldSelectors = []struct {
	selector string
	apply    func(p *strategy.Partial, text string)
}{
	{`h1[data-cmp="heading"]`, func(p *strategy.Partial, text string) {
		applyAutotraderTitle(p, text)
	}},
	{`[data-cmp="firstPrice"]`, func(p *strategy.Partial, text string) {
		if dollars, ok := parse.Money(text); ok {
			p.Price = dollars
			p.PriceCandidates = append(p.PriceCandidates,
				strategy.NewPriceCandidate(float64(dollars), model.SourceDOM, "firstPrice "+text))
		}
	}},
	{`[data-cmp="mileageSpecification"]`, func(p *strategy.Partial, text string) {
		if mi, ok := parse.Mileage(text); ok {
			p.Mileage = mi
			p.MileageCandidates = append(p.MileageCandidates,
				strategy.NewMileageCandidate(float64(mi), model.SourceDOM, "mileage "+text))
		}
	}},
	{`[data-cmp="dealerName"]`, func(p *strategy.Partial, text string) {
		if len(text) < 100 {
			p.DealerName = text
		}
	}},
}

// autotraderPartial is the site-specific pass for the one marketplace with a
// dedicated extractor. It only biases the merge: whatever it misses, the
// generic strategies fill in afterwards.
func autotraderPartial(doc *goquery.Document, markup string) *strategy.Partial {
	p := strategy.NewPartial()
	if doc == nil {
		return p
	}

	for _, field := range autotraderFieldSelectors {
		text := strings.TrimSpace(doc.Find(field.selector).First().Text())
		if text != "" {
			field.apply(p, text)
		}
	}

	return p
}

func applyAutotraderTitle(p *strategy.Partial, heading string) {
	if len(heading) > 200 {
		return
	}
	p.Title = heading
	tf := parse.Title(heading)
	p.Year = tf.Year
	p.Make = tf.Make
	p.Model = tf.Model
	p.Trim = tf.Trim
	if cond := parse.Condition(heading); cond != model.ConditionUnknown {
		p.Condition = cond
	}
}
