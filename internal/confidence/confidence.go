// Package confidence computes the calibrated [0,1] trust score for a merged
// listing record. Strategies never assert confidence themselves; it is
// derived centrally from field completeness and strategy provenance, with a
// specific human-readable issue for every unmet precondition.
package confidence

import (
	"github.com/taylorp5/dealwise/internal/model"
)

// Additive weights; the final score is clamped to [0,1].
const (
	priceWeight        = 0.30
	identityWeight     = 0.20
	mileageUsedWeight  = 0.15
	mileageOtherWeight = 0.10
	conditionWeight    = 0.10
	vinOrStockWeight   = 0.10
	dealerPartial      = 0.05
	dealerFull         = 0.10
	provenanceStrong   = 0.20
	provenanceDOM      = 0.05
	provenanceRegex    = -0.10
	conflictPenalty    = -0.10
)

// Input carries everything the calculator needs: the merged record, which
// strategies contributed committed fields, and whether the surviving price
// candidates disagree.
type Input struct {
	Record        *model.ListingRecord
	Strategies    []string
	PriceConflict bool
}

// Score computes the confidence and the ordered issue list. It never
// inspects the diagnostic candidate bag beyond the conflict flag the engine
// already derived.
func Score(in Input) (float64, []string) {
	rec := in.Record
	score := 0.0
	var issues []string

	if rec.Price > 0 {
		score += priceWeight
	} else {
		issues = append(issues, "No price found")
	}

	if rec.Year > 0 && rec.Make != "" && rec.Model != "" {
		score += identityWeight
	} else {
		issues = append(issues, "Incomplete vehicle identity (year/make/model)")
	}

	usedOrCPO := rec.Condition == model.ConditionUsed || rec.Condition == model.ConditionCPO
	switch {
	case rec.HasMileage() && usedOrCPO:
		score += mileageUsedWeight
	case rec.HasMileage():
		score += mileageOtherWeight
	case usedOrCPO:
		issues = append(issues, "Mileage missing for used vehicle")
	}

	if rec.Condition != model.ConditionUnknown {
		score += conditionWeight
	} else {
		issues = append(issues, "Vehicle condition unknown")
	}

	if rec.VIN != "" || rec.StockNumber != "" {
		score += vinOrStockWeight
	} else {
		issues = append(issues, "No VIN or stock number found")
	}

	hasIdentity := rec.DealerName != ""
	hasLocation := rec.DealerCity != "" || rec.DealerState != "" || rec.Zip != ""
	switch {
	case hasIdentity && hasLocation:
		score += dealerFull
	case hasIdentity || hasLocation:
		score += dealerPartial
	default:
		issues = append(issues, "No dealer identity or location found")
	}

	score += provenanceAdjustment(in.Strategies, &issues)

	if in.PriceConflict {
		issues = append(issues, "Price candidates disagree widely; verify the listed price")
		score += conflictPenalty
	}

	return clamp(score), issues
}

func provenanceAdjustment(strategies []string, issues *[]string) float64 {
	set := map[string]bool{}
	for _, s := range strategies {
		set[s] = true
	}

	switch {
	case set["structured-data"] || set["embedded-state"] || set["autotrader"]:
		return provenanceStrong
	case set["dom"] || set["meta"] || set["text"]:
		return provenanceDOM
	case set["regex"]:
		*issues = append(*issues, "Extraction relied on raw pattern scan only; fields may be unreliable")
		return provenanceRegex
	}
	return 0
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
