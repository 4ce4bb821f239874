package extractor

import (
	"strings"

	"github.com/taylorp5/dealwise/internal/confidence"
	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/score"
	"github.com/taylorp5/dealwise/internal/strategy"
)

// pasteSourceURL marks records built from pasted text, which has no URL.
const pasteSourceURL = "pasted-text"

// minPasteLength rejects pastes too short to possibly describe a listing.
const minPasteLength = 10

// ExtractFromText is the markup-free entry point, used when live fetching is
// blocked or unavailable and a human pastes the listing text instead.
func (e *Engine) ExtractFromText(text string) *model.ListingRecord {
	rec := model.NewListingRecord(pasteSourceURL, model.SiteOther)

	if len(strings.TrimSpace(text)) < minPasteLength {
		rec.AddIssue("Pasted text too short to extract from")
		return rec
	}

	p := strategy.FreeText(text)

	rankedPrices := score.RankPrices(p.PriceCandidates)
	if sel, ok := score.SelectPrice(rankedPrices); ok {
		p.Price = sel
	}
	rankedMileages := score.RankMileages(p.MileageCandidates)
	if sel, ok := score.SelectMileage(rankedMileages); ok {
		p.Mileage = sel
	}

	applyPartial(rec, p)

	var contributing []string
	if !p.Empty() {
		contributing = append(contributing, "text")
	}

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
		PriceCandidates:   rankedPrices,
		MileageCandidates: rankedMileages,
	}
	return rec
}
