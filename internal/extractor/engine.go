// Package extractor is the listing extraction engine: it routes a URL plus
// already-fetched markup (or pasted text) through the candidate extraction
// strategies, commits fields first-writer-wins, scores the ambiguous ones,
// and attaches a centrally computed confidence plus issue list. It performs
// no network, file, or database I/O and is safe for concurrent use.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/confidence"
	"github.com/taylorp5/dealwise/internal/config"
	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/platform"
	"github.com/taylorp5/dealwise/internal/score"
	"github.com/taylorp5/dealwise/internal/strategy"
)

// Engine holds the per-process extraction settings. A single Engine may be
// shared by any number of goroutines; every call allocates its own output.
type Engine struct {
	// MaxMarkupBytes truncates oversized pages before scanning. Zero
	// means no limit.
	MaxMarkupBytes int
}

// New builds an Engine from configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{MaxMarkupBytes: cfg.Extract.MaxMarkupBytes}
}

// Extract produces a listing record from a URL and its already-fetched
// markup. It never returns an error: adversarial or missing input degrades
// to a low-confidence record with itemized issues.
func (e *Engine) Extract(rawURL, markup string) *model.ListingRecord {
	rec := model.NewListingRecord(rawURL, ClassifySite(rawURL))

	if strings.TrimSpace(markup) == "" {
		rec.AddIssue("HTML content not provided")
		return rec
	}

	if e.MaxMarkupBytes > 0 && len(markup) > e.MaxMarkupBytes {
		markup = markup[:e.MaxMarkupBytes]
		rec.AddIssue("Markup truncated before scanning")
	}

	if Blocked(markup) {
		rec.Blocked = true
		rec.AddIssue("Page appears to be blocking automated access; paste the listing text instead")
		return rec
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		doc = nil // strategies degrade to raw-text scanning
	}

	var sitePartial *strategy.Partial
	if rec.SourceSite == model.SiteAutotrader {
		sitePartial = autotraderPartial(doc, markup)
	}
	e.run(rec, doc, markup, sitePartial)
	return rec
}

// run executes the strategy pipeline and fills rec in place. sitePartial,
// when non-nil, is merged ahead of every generic strategy so the
// site-specific extractor keeps first-writer priority.
func (e *Engine) run(rec *model.ListingRecord, doc *goquery.Document, markup string, sitePartial *strategy.Partial) {
	plat := platform.Detect(markup)

	merged := strategy.NewPartial()
	var contributing []string

	if sitePartial != nil && strategy.Merge(merged, sitePartial) {
		contributing = append(contributing, "autotrader")
	}

	passes := []struct {
		name string
		run  func() *strategy.Partial
	}{
		{"structured-data", func() *strategy.Partial { return strategy.StructuredData(doc) }},
		{"embedded-state", func() *strategy.Partial { return strategy.EmbeddedState(doc, markup, plat) }},
		{"meta", func() *strategy.Partial { return strategy.MetaTags(doc) }},
		{"dom", func() *strategy.Partial { return strategy.DOM(doc) }},
	}
	for _, pass := range passes {
		if strategy.Merge(merged, pass.run()) {
			contributing = append(contributing, pass.name)
		}
	}

	rankedPrices := score.RankPrices(merged.PriceCandidates)

	if merged.Price == 0 {
		if sel, ok := score.SelectPrice(rankedPrices); ok {
			merged.Price = sel
			contributing = markContributor(contributing, rankedPrices, sel)
		} else {
			// Last resort: whole-document pattern scan. Gated on the
			// missing price so its noise can't dilute better candidates.
			fb := strategy.RegexFallback(markup)
			if strategy.Merge(merged, fb) || len(fb.PriceCandidates) > 0 || len(fb.MileageCandidates) > 0 {
				contributing = append(contributing, "regex")
			}
			rankedPrices = score.RankPrices(merged.PriceCandidates)
			if sel, ok := score.SelectPrice(rankedPrices); ok {
				merged.Price = sel
				contributing = markContributor(contributing, rankedPrices, sel)
			}
		}
	}

	rankedMileages := score.RankMileages(merged.MileageCandidates)
	if merged.Mileage < 0 {
		if sel, ok := score.SelectMileage(rankedMileages); ok {
			merged.Mileage = sel
			contributing = markContributor(contributing, rankedMileages, sel)
		}
	}

	applyPartial(rec, merged)

	conf, issues := confidence.Score(confidence.Input{
		Record:        rec,
		Strategies:    contributing,
		PriceConflict: score.Conflicting(rankedPrices),
	})
	rec.Confidence = conf
	for _, iss := range issues {
		rec.AddIssue(iss)
	}

	rec.Raw = &model.Diagnostics{
		Strategies:        contributing,
		Platform:          plat.String(),
		PriceCandidates:   rankedPrices,
		MileageCandidates: rankedMileages,
	}
}

// markContributor records the strategy whose candidate was ultimately
// selected. A strategy that commits no field directly (DOM on a page where
// everything else is ambiguous) still contributed when its candidate wins.
func markContributor(contributing []string, ranked []model.Candidate, selected int) []string {
	for _, c := range ranked {
		if c.Score <= 0 || int(c.Value) != selected {
			continue
		}
		name := string(c.Source)
		for _, existing := range contributing {
			if existing == name {
				return contributing
			}
		}
		return append(contributing, name)
	}
	return contributing
}

// applyPartial copies committed fields from the merged partial onto the
// output record.
func applyPartial(rec *model.ListingRecord, p *strategy.Partial) {
	rec.Price = p.Price
	rec.Year = p.Year
	rec.Make = p.Make
	rec.Model = p.Model
	rec.Trim = p.Trim
	rec.Mileage = p.Mileage
	rec.Condition = p.Condition
	rec.VIN = p.VIN
	rec.StockNumber = p.Stock
	rec.DealerName = p.DealerName
	rec.DealerCity = p.DealerCity
	rec.DealerState = p.DealerState
	rec.Zip = p.Zip
	rec.Title = p.Title
}
