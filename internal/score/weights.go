// Package score ranks price and mileage candidates. Naive "first dollar
// amount on the page" extraction is wrong most of the time — monthly
// payments, MSRP, conditional financing figures, and warranty mileage all
// masquerade as the target value — so every candidate gets a context-driven
// score and only positive scorers are eligible for selection.
package score

// Tunable scoring weights. Kept together so calibration changes never touch
// extraction logic.
const (
	baseScore = 50

	// Price.
	priceMonthlyPenalty     = -100
	priceConditionalPenalty = -80
	priceSaleLabelBonus     = 40
	priceMSRPPenalty        = -20
	priceListLabelPenalty   = -10
	priceLowValuePenalty    = -30
	priceDiscountBonus      = 10

	priceSourceStructuredBonus = 20
	priceSourceStateBonus      = 15
	priceSourceMetaBonus       = 10
	priceSourceRegexPenalty    = -10

	// The lowest value still plausible as a full vehicle price rather
	// than a down payment or monthly-figure fragment.
	priceLowValueFloor = 2000

	// MSRP tie-break: prefer an explicit sale label over a top-ranked
	// MSRP when the sale figure is within this fraction below it.
	msrpTieBreakRatio = 0.75

	// Mileage.
	mileageWarrantyPenalty = -100
	mileageServicePenalty  = -100
	mileageEstimatePenalty = -50
	mileageOdometerBonus   = 30
	mileageHighPenalty     = -50
	mileageHighCutoff      = 400000
)
