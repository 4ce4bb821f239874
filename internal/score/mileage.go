package score

import (
	"sort"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/strategy"
)

// RankMileages scores and sorts mileage candidates descending without
// mutating the input.
func RankMileages(candidates []model.Candidate) []model.Candidate {
	ranked := make([]model.Candidate, len(candidates))
	for i, c := range candidates {
		c.Score = mileageScore(c)
		ranked[i] = c
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectMileage picks the committed odometer reading; only positive-score
// candidates are eligible.
func SelectMileage(ranked []model.Candidate) (int, bool) {
	for _, c := range ranked {
		if c.Score > 0 && c.Value >= 0 && c.Value <= mileageHighCutoff {
			return int(c.Value), true
		}
	}
	return 0, false
}

func mileageScore(c model.Candidate) float64 {
	s := float64(baseScore)

	if c.IsLikelyWarranty {
		s += mileageWarrantyPenalty
	}
	if c.IsLikelyServiceInterval {
		s += mileageServicePenalty
	}
	if c.IsLikelyEstimated {
		s += mileageEstimatePenalty
	}
	if strategy.HasOdometerContext(c) {
		s += mileageOdometerBonus
	}
	if c.Value > mileageHighCutoff {
		s += mileageHighPenalty
	}

	return s
}
