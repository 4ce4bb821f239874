package score

import (
	"sort"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/strategy"
)

// RankPrices scores and sorts price candidates descending. The input is
// never mutated; the returned slice holds scored copies, including
// disqualified (score ≤ 0) candidates for the diagnostic trail.
func RankPrices(candidates []model.Candidate) []model.Candidate {
	ranked := make([]model.Candidate, len(candidates))
	for i, c := range candidates {
		c.Score = priceScore(c)
		ranked[i] = c
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectPrice picks the committed price from a ranked list, or false if no
// candidate survives scoring. Encodes the domain rule "never quote MSRP when
// an explicit lower sale price is visible nearby".
func SelectPrice(ranked []model.Candidate) (int, bool) {
	eligible := ranked[:0:0]
	for _, c := range ranked {
		if c.Score > 0 {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}

	top := eligible[0]
	if top.IsLikelyMSRP {
		for _, next := range eligible[1:] {
			if strategy.HasSaleLabel(next) && next.Value >= top.Value*msrpTieBreakRatio {
				return int(next.Value), true
			}
		}
	}
	return int(top.Value), true
}

// Conflicting reports whether surviving candidates disagree by more than
// 1.5x between min and max — a signal the page shows several "prices".
func Conflicting(ranked []model.Candidate) bool {
	var min, max float64
	n := 0
	for _, c := range ranked {
		if c.Score <= 0 {
			continue
		}
		if n == 0 || c.Value < min {
			min = c.Value
		}
		if n == 0 || c.Value > max {
			max = c.Value
		}
		n++
	}
	return n > 1 && min > 0 && max/min > 1.5
}

func priceScore(c model.Candidate) float64 {
	s := float64(baseScore)

	if c.IsLikelyMonthlyPayment {
		s += priceMonthlyPenalty
	}
	if c.IsLikelyConditional {
		s += priceConditionalPenalty
	}

	switch {
	case strategy.HasSaleLabel(c):
		s += priceSaleLabelBonus
	case c.IsLikelyMSRP:
		s += priceMSRPPenalty
	case c.Label == "List Price":
		s += priceListLabelPenalty
	}

	switch c.Source {
	case model.SourceStructuredData:
		s += priceSourceStructuredBonus
	case model.SourceEmbeddedState:
		s += priceSourceStateBonus
	case model.SourceMeta:
		s += priceSourceMetaBonus
	case model.SourceRegex:
		s += priceSourceRegexPenalty
	}

	if c.Value < priceLowValueFloor {
		s += priceLowValuePenalty
	}
	if strategy.HasDiscountContext(c) {
		s += priceDiscountBonus
	}

	return s
}
