package model

// SourceSite classifies where a listing came from.
type SourceSite string

const (
	SiteAutotrader SourceSite = "autotrader"
	SiteOther      SourceSite = "other"
)

// Condition classifies a vehicle's sale condition.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionUsed    Condition = "used"
	ConditionCPO     Condition = "cpo"
	ConditionUnknown Condition = "unknown"
)

// CandidateSource identifies which extraction strategy produced a candidate.
type CandidateSource string

const (
	SourceStructuredData CandidateSource = "structured-data"
	SourceEmbeddedState  CandidateSource = "embedded-state"
	SourceMeta           CandidateSource = "meta"
	SourceDOM            CandidateSource = "dom"
	SourceRegex          CandidateSource = "regex"

	// SourceText marks candidates from the pasted-text path, which has no
	// markup to attribute a strategy to.
	SourceText CandidateSource = "text"
)

// Candidate is a provisional extraction of an ambiguous field (price or
// mileage) before the engine commits to a single value. Candidates are
// immutable once produced; scoring builds new ranked slices rather than
// mutating in place.
type Candidate struct {
	Value   float64         `json:"value"`
	Label   string          `json:"label"`
	Source  CandidateSource `json:"source"`
	Context string          `json:"context"`
	Score   float64         `json:"score"`

	// Price flags.
	IsLikelyMonthlyPayment bool `json:"is_likely_monthly_payment,omitempty"`
	IsLikelyMSRP           bool `json:"is_likely_msrp,omitempty"`
	IsLikelyConditional    bool `json:"is_likely_conditional,omitempty"`

	// Mileage flags.
	IsLikelyWarranty        bool `json:"is_likely_warranty,omitempty"`
	IsLikelyServiceInterval bool `json:"is_likely_service_interval,omitempty"`
	IsLikelyEstimated       bool `json:"is_likely_estimated,omitempty"`
}

// Diagnostics is the raw provenance bag attached to a record. It exists for
// review and debugging UIs only and must never feed negotiation logic.
type Diagnostics struct {
	Strategies        []string    `json:"strategies,omitempty"`
	Platform          string      `json:"platform,omitempty"`
	PriceCandidates   []Candidate `json:"price_candidates,omitempty"`
	MileageCandidates []Candidate `json:"mileage_candidates,omitempty"`
}

// ListingRecord is the structured output of an extraction. Zero values mean
// "not found" — Mileage uses -1 as its unset sentinel since 0 miles is a real
// odometer reading. SourceURL and SourceSite are always populated, even on
// total extraction failure.
type ListingRecord struct {
	SourceURL  string     `json:"source_url"`
	SourceSite SourceSite `json:"source_site"`

	Price   int    `json:"price,omitempty"`
	Year    int    `json:"year,omitempty"`
	Make    string `json:"make,omitempty"`
	Model   string `json:"model,omitempty"`
	Trim    string `json:"trim,omitempty"`
	Mileage int    `json:"mileage"`

	Condition   Condition `json:"condition"`
	VIN         string    `json:"vin,omitempty"`
	StockNumber string    `json:"stock_number,omitempty"`

	DealerName  string `json:"dealer_name,omitempty"`
	DealerCity  string `json:"dealer_city,omitempty"`
	DealerState string `json:"dealer_state,omitempty"`
	Zip         string `json:"zip,omitempty"`

	Title string `json:"title,omitempty"`

	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
	Blocked    bool     `json:"blocked"`

	Raw *Diagnostics `json:"raw,omitempty"`
}

// NewListingRecord returns an empty record with the always-set fields
// populated and unset sentinels in place.
func NewListingRecord(sourceURL string, site SourceSite) *ListingRecord {
	return &ListingRecord{
		SourceURL:  sourceURL,
		SourceSite: site,
		Mileage:    -1,
		Condition:  ConditionUnknown,
		Issues:     []string{},
	}
}

// HasMileage reports whether a mileage value was actually found.
func (r *ListingRecord) HasMileage() bool {
	return r.Mileage >= 0
}

// AddIssue appends a human-readable gap or ambiguity. Insertion order is
// detection order.
func (r *ListingRecord) AddIssue(msg string) {
	r.Issues = append(r.Issues, msg)
}
