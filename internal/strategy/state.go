package strategy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
	"github.com/taylorp5/dealwise/internal/platform"
)

// stateSignatures are global-variable assignment patterns that mark a
// serialized front-end state blob. Scanned in order; the first one that
// yields valid JSON wins.
var stateSignatures = []string{
	"window.__INITIAL_STATE__",
	"window.__PRELOADED_STATE__",
	"window.__BONNET_STATE__",
	"window.DDC.dataLayer",
	"window.ClientContexts",
	"window.vdpData",
	"var inventoryData",
}

// vehiclePaths are the object paths tried, in order, when walking a state
// blob for a vehicle-shaped object.
var vehiclePaths = [][]string{
	{"props", "pageProps", "vehicle"},
	{"props", "pageProps", "listing"},
	{"props", "pageProps", "inventory"},
	{"props", "initialState", "inventory", "vehicle"},
	{"vehicle"},
	{"listing"},
	{"inventory"},
	{"vdp", "vehicle"},
	{"detail"},
	{"page", "vehicle"},
}

// platformPaths biases the walk order per detected dealer platform. Unknown
// platforms just use the full list.
var platformPaths = map[platform.Platform][][]string{
	platform.DealerDotCom:  {{"vehicle"}, {"inventory"}},
	platform.DealerInspire: {{"vdp", "vehicle"}, {"vehicle"}},
	platform.DealerOn:      {{"detail"}, {"vehicle"}},
	platform.DealerSocket:  {{"listing"}, {"vehicle"}},
	platform.SM360:         {{"resourceData", "vehicle"}, {"vehicle"}},
}

// priceKeys is the fixed key-priority order for reading a price out of a
// vehicle-shaped object.
var priceKeys = []string{
	"price", "internetPrice", "salePrice", "yourPrice", "finalPrice",
	"listPrice", "askingPrice",
}

// EmbeddedState extracts from serialized front-end state blobs inlined in
// the markup. The platform hint only reorders which paths are tried first;
// it never gates the strategy.
func EmbeddedState(doc *goquery.Document, markup string, plat platform.Platform) *Partial {
	p := NewPartial()

	root, ok := findStateBlob(doc, markup)
	if !ok {
		return p
	}

	paths := append([][]string{}, platformPaths[plat]...)
	paths = append(paths, vehiclePaths...)

	var vehicle map[string]any
	for _, path := range paths {
		v, found := dig(root, path...)
		if !found {
			continue
		}
		if m, isMap := asMap(v); isMap && isVehicleShaped(m) {
			vehicle = m
			break
		}
	}
	if vehicle == nil {
		// Last try: the blob root itself may be the vehicle object.
		if m, isMap := asMap(root); isMap && isVehicleShaped(m) {
			vehicle = m
		}
	}
	if vehicle == nil {
		return p
	}

	applyVehicleObject(p, vehicle)
	return p
}

// findStateBlob locates the first parseable state blob: the Next.js data
// script first (clean JSON by construction), then raw assignment scans.
func findStateBlob(doc *goquery.Document, markup string) (any, bool) {
	if doc != nil {
		if txt := doc.Find(`script#__NEXT_DATA__`).First().Text(); strings.TrimSpace(txt) != "" {
			if v, ok := decodeLoose(txt); ok {
				return v, true
			}
		}
	}

	for _, sig := range stateSignatures {
		idx := strings.Index(markup, sig)
		if idx < 0 {
			continue
		}
		blob, ok := braceSlice(markup[idx:])
		if !ok {
			continue
		}
		if v, ok := decodeLoose(blob); ok {
			return v, true
		}
	}
	return nil, false
}

// braceSlice returns the first balanced {...} block following an assignment,
// tracking string literals and escapes so braces inside values don't
// terminate the scan early.
func braceSlice(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	var quote byte
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// isVehicleShaped reports whether an object looks like a vehicle record
// rather than arbitrary page state.
func isVehicleShaped(m map[string]any) bool {
	hits := 0
	for _, key := range []string{"vin", "make", "model", "price", "mileage", "odometer", "year", "stockNumber"} {
		if _, ok := m[key]; ok {
			hits++
		}
	}
	return hits >= 2
}

func applyVehicleObject(p *Partial, m map[string]any) {
	if val, ok := firstNum(m, priceKeys...); ok {
		dollars := int(val)
		if dollars >= parse.MinPrice && dollars <= parse.MaxPrice {
			p.Price = dollars
			p.PriceCandidates = append(p.PriceCandidates,
				NewPriceCandidate(val, model.SourceEmbeddedState, "state price"))
		}
	}

	if mi, ok := firstNum(m, "mileage", "miles", "odometer"); ok {
		n := int(mi)
		if n >= 0 && n <= parse.MaxMileage {
			p.Mileage = n
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(mi, model.SourceEmbeddedState, "state mileage"))
		}
	}

	if vin, ok := str(m, "vin"); ok {
		if upper := strings.ToUpper(strings.TrimSpace(vin)); parse.IsVIN(upper) {
			p.VIN = upper
		}
	}
	if stock, ok := firstStr(m, "stockNumber", "stock", "stockNum"); ok {
		p.Stock = stock
	}

	if y, ok := num(m, "year"); ok && int(y) >= 1990 && int(y) <= 2100 {
		p.Year = int(y)
	}
	if mk, ok := str(m, "make"); ok {
		p.Make = parse.CanonicalMake(mk)
	}
	if mdl, ok := str(m, "model"); ok {
		p.Model = mdl
	}
	if tr, ok := firstStr(m, "trim", "trimLevel"); ok {
		p.Trim = tr
	}

	if cond, ok := firstStr(m, "condition", "inventoryType", "listingType"); ok {
		p.Condition = parse.Condition(cond)
	}

	if dealer, ok := asMap(m["dealer"]); ok {
		if name, found := str(dealer, "name"); found {
			p.DealerName = name
		}
		if city, found := str(dealer, "city"); found {
			p.DealerCity = city
		}
		if state, found := str(dealer, "state"); found && len(state) == 2 {
			p.DealerState = strings.ToUpper(state)
		}
		if zip, found := firstStr(dealer, "zip", "postalCode"); found {
			p.Zip = zip
		}
	} else if name, found := str(m, "dealerName"); found {
		p.DealerName = name
	}

	if p.Title == "" {
		if title, ok := firstStr(m, "title", "heading"); ok {
			p.applyTitle(title)
		}
	}
}
