package extractor

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/taylorp5/dealwise/internal/config"
	"github.com/taylorp5/dealwise/internal/model"
)

func testEngine() *Engine {
	return New(config.Defaults())
}

const dealerPageHTML = `<html><head>
<script type="application/ld+json">{"@type":"Vehicle","name":"2024 Honda Accord EX","offers":{"price":"23450"}}</script>
</head><body>
<h1>2024 Honda Accord EX</h1>
<div class="pricing"><span>MSRP</span> <span>$26,000</span></div>
<div class="pricing"><span>Internet Price</span> <span>$23,450</span></div>
<p>Odometer reading: 12,500 miles</p>
</body></html>`

func TestExtract_StructuredBeatsDOM(t *testing.T) {
	rec := testEngine().Extract("https://www.smithhonda.com/vdp/123", dealerPageHTML)

	if rec.Price != 23450 {
		t.Errorf("price = %d, want structured-data price", rec.Price)
	}
	if rec.Year != 2024 || rec.Make != "Honda" || rec.Model != "Accord" {
		t.Errorf("identity = %d %q %q", rec.Year, rec.Make, rec.Model)
	}
	if rec.Mileage != 12500 {
		t.Errorf("mileage = %d, want 12500 selected from DOM candidates", rec.Mileage)
	}
	if rec.SourceSite != model.SiteOther {
		t.Errorf("site = %q", rec.SourceSite)
	}

	if rec.Raw == nil {
		t.Fatal("diagnostics missing")
	}
	if len(rec.Raw.Strategies) == 0 || rec.Raw.Strategies[0] != "structured-data" {
		t.Errorf("strategies = %v", rec.Raw.Strategies)
	}
	if len(rec.Raw.PriceCandidates) != 3 {
		t.Errorf("price candidates = %+v", rec.Raw.PriceCandidates)
	}

	want := 0.30 + 0.20 + 0.10 + 0.20 // price, identity, mileage, provenance
	if math.Abs(rec.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", rec.Confidence, want)
	}
	for _, iss := range rec.Issues {
		if strings.Contains(iss, "disagree") {
			t.Errorf("false price-conflict issue: %v", rec.Issues)
		}
	}
}

func TestExtract_SalePriceSuppressesMSRP(t *testing.T) {
	markup := `<html><body>
<div><span>MSRP</span> <span>$26,000</span></div>
<div><span>Internet Price</span> <span>$23,450</span></div>
</body></html>`

	rec := testEngine().Extract("https://example.com/vdp", markup)

	if rec.Price != 23450 {
		t.Errorf("price = %d, want the sale price over MSRP", rec.Price)
	}
	// DOM committed nothing directly; its selected candidate still marks
	// it as a contributor.
	found := false
	for _, s := range rec.Raw.Strategies {
		if s == "dom" {
			found = true
		}
	}
	if !found {
		t.Errorf("strategies = %v, want dom credited", rec.Raw.Strategies)
	}
}

func TestExtract_SharedLineMSRPSuppression(t *testing.T) {
	// MSRP and sale price in a single text node: the sale figure must
	// still win.
	markup := `<html><body><p>MSRP $26,000 / Internet Price $23,450</p></body></html>`

	rec := testEngine().Extract("https://example.com/vdp", markup)
	if rec.Price != 23450 {
		t.Errorf("price = %d, want the sale price over MSRP", rec.Price)
	}
}

func TestExtract_SparseStructuredPageConfidence(t *testing.T) {
	// A page carrying nothing but a structured price and the pricing
	// line still clears 0.5: the committed price plus strong provenance.
	markup := `<html><head>
<script type="application/ld+json">{"@type":"Vehicle","offers":{"price":"23450"}}</script>
</head><body>
<p>MSRP $26,000 / Internet Price $23,450</p>
</body></html>`

	rec := testEngine().Extract("https://example.com/vdp", markup)

	if rec.Price != 23450 {
		t.Fatalf("price = %d", rec.Price)
	}
	if rec.Confidence < 0.5 {
		t.Errorf("confidence = %v, want at least 0.5", rec.Confidence)
	}
}

func TestExtract_MonthlyPaymentNeverBecomesPrice(t *testing.T) {
	markup := `<html><body>
<div><span>Finance price</span> <span>$599/mo with approved credit</span></div>
</body></html>`

	rec := testEngine().Extract("https://example.com/vdp", markup)

	if rec.Price != 0 {
		t.Fatalf("price = %d, monthly payment leaked through", rec.Price)
	}
	if !hasIssue(rec, "No price found") {
		t.Errorf("issues = %v", rec.Issues)
	}
	// The rejected figure stays visible in diagnostics.
	if len(rec.Raw.PriceCandidates) == 0 {
		t.Error("disqualified candidates dropped from diagnostics")
	}
	for _, c := range rec.Raw.PriceCandidates {
		if c.Score > 0 {
			t.Errorf("candidate %v scored positive: %v", c.Value, c.Score)
		}
	}
}

func TestExtract_EmptyMarkup(t *testing.T) {
	rec := testEngine().Extract("https://example.com/vdp", "   ")

	if len(rec.Issues) != 1 || rec.Issues[0] != "HTML content not provided" {
		t.Errorf("issues = %v", rec.Issues)
	}
	if rec.Confidence != 0 || rec.Mileage != -1 {
		t.Errorf("confidence = %v, mileage = %d", rec.Confidence, rec.Mileage)
	}
	if rec.SourceURL != "https://example.com/vdp" || rec.SourceSite == "" {
		t.Errorf("source fields = %q %q", rec.SourceURL, rec.SourceSite)
	}
}

func TestExtract_BlockedPageShortCircuits(t *testing.T) {
	markup := `<html><head><title>Pardon Our Interruption</title></head>
<body>As you were browsing something about your browser made us think you were a bot.</body></html>`

	rec := testEngine().Extract("https://www.autotrader.com/cars-for-sale/123", markup)

	if !rec.Blocked {
		t.Fatal("blocked flag not set")
	}
	if len(rec.Issues) != 1 || !strings.Contains(rec.Issues[0], "paste the listing text") {
		t.Errorf("issues = %v", rec.Issues)
	}
	if rec.Raw != nil {
		t.Error("strategies ran on a blocked page")
	}
	if rec.SourceSite != model.SiteAutotrader {
		t.Errorf("site = %q", rec.SourceSite)
	}
}

func TestExtract_RobotsMetaTagNotBlocked(t *testing.T) {
	markup := `<html><head><meta name="robots" content="index,follow"></head>
<body><h1>2020 Ford Escape SE</h1></body></html>`

	rec := testEngine().Extract("https://example.com/vdp", markup)
	if rec.Blocked {
		t.Error("robots meta tag misread as a bot wall")
	}
}

func TestExtract_Truncation(t *testing.T) {
	e := &Engine{MaxMarkupBytes: 64}
	rec := e.Extract("https://example.com/vdp", "<html><body>"+strings.Repeat("x", 200)+"</body></html>")

	if !hasIssue(rec, "Markup truncated before scanning") {
		t.Errorf("issues = %v", rec.Issues)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	e := testEngine()
	a, err := json.Marshal(e.Extract("https://example.com/vdp", dealerPageHTML))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(e.Extract("https://example.com/vdp", dealerPageHTML))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("same input produced different records:\n%s\n%s", a, b)
	}
}

func TestExtract_AutotraderSelectors(t *testing.T) {
	markup := `<html><body>
<h1 data-cmp="heading">Used 2022 Toyota Tundra Limited</h1>
<div data-cmp="firstPrice">$41,500</div>
<div data-cmp="mileageSpecification">12,500 miles</div>
<div data-cmp="dealerName">Victory Toyota of Midtown</div>
</body></html>`

	rec := testEngine().Extract("https://www.autotrader.com/cars-for-sale/vehicle/123", markup)

	if rec.SourceSite != model.SiteAutotrader {
		t.Fatalf("site = %q", rec.SourceSite)
	}
	if rec.Price != 41500 {
		t.Errorf("price = %d", rec.Price)
	}
	if rec.Mileage != 12500 {
		t.Errorf("mileage = %d", rec.Mileage)
	}
	if rec.Condition != model.ConditionUsed {
		t.Errorf("condition = %q", rec.Condition)
	}
	if rec.DealerName != "Victory Toyota of Midtown" {
		t.Errorf("dealer = %q", rec.DealerName)
	}
	if len(rec.Raw.Strategies) == 0 || rec.Raw.Strategies[0] != "autotrader" {
		t.Errorf("strategies = %v", rec.Raw.Strategies)
	}
}

func TestClassifySite(t *testing.T) {
	tests := []struct {
		url  string
		want model.SourceSite
	}{
		{"https://www.autotrader.com/cars-for-sale/123", model.SiteAutotrader},
		{"https://www.cars.com/vehicledetail/abc", model.SiteOther},
		{"https://www.cargurus.com/Cars/link", model.SiteOther},
		{"https://smithtoyota.com/vdp/1", model.SiteOther},
		{"not a url but mentions autotrader", model.SiteAutotrader},
		{"", model.SiteOther},
	}
	for _, tt := range tests {
		if got := ClassifySite(tt.url); got != tt.want {
			t.Errorf("ClassifySite(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func hasIssue(rec *model.ListingRecord, want string) bool {
	for _, iss := range rec.Issues {
		if iss == want {
			return true
		}
	}
	return false
}
