package strategy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

// vehicleTypes are the schema.org entity types accepted as a listable
// vehicle. Anything else (BreadcrumbList, AutoDealer, FAQPage...) is skipped.
var vehicleTypes = map[string]bool{
	"vehicle": true, "car": true, "product": true, "motorcycle": true,
	"usedvehicle": true,
}

// StructuredData extracts from schema.org JSON-LD blocks. Each block is
// parsed independently; a malformed block is skipped, never fatal.
func StructuredData(doc *goquery.Document) *Partial {
	p := NewPartial()
	if doc == nil {
		return p
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		v, ok := decodeLoose(s.Text())
		if !ok {
			return
		}
		for _, entity := range flattenEntities(v) {
			if isVehicleEntity(entity) {
				applyEntity(p, entity)
			}
		}
	})

	return p
}

// flattenEntities expands top-level arrays and @graph wrappers into a flat
// entity list.
func flattenEntities(v any) []map[string]any {
	var out []map[string]any
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = append(out, flattenEntities(item)...)
		}
	case map[string]any:
		if graph, ok := asSlice(t["@graph"]); ok {
			for _, item := range graph {
				out = append(out, flattenEntities(item)...)
			}
			return out
		}
		out = append(out, t)
	}
	return out
}

func isVehicleEntity(m map[string]any) bool {
	switch t := m["@type"].(type) {
	case string:
		return vehicleTypes[strings.ToLower(t)]
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && vehicleTypes[strings.ToLower(s)] {
				return true
			}
		}
	}
	return false
}

func applyEntity(p *Partial, m map[string]any) {
	if name, ok := str(m, "name"); ok {
		p.applyTitle(name)
	}

	if brand, ok := entityName(m["brand"]); ok && p.Make == "" {
		p.Make = parse.CanonicalMake(brand)
	}
	if mdl, ok := entityName(m["model"]); ok && p.Model == "" {
		p.Model = mdl
	}
	if y, ok := firstNum(m, "vehicleModelDate", "productionDate", "modelDate"); ok && p.Year == 0 {
		year := int(y)
		if year >= 1990 && year <= 2100 {
			p.Year = year
		}
	}

	if vin, ok := str(m, "vehicleIdentificationNumber"); ok && p.VIN == "" {
		if upper := strings.ToUpper(strings.TrimSpace(vin)); parse.IsVIN(upper) {
			p.VIN = upper
		}
	}
	if sku, ok := firstStr(m, "sku", "stockNumber"); ok && p.Stock == "" {
		p.Stock = sku
	}

	if odo, ok := m["mileageFromOdometer"]; ok && p.Mileage < 0 {
		if mi, ok := odometerValue(odo); ok && mi >= 0 && mi <= parse.MaxMileage {
			p.Mileage = mi
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(float64(mi), model.SourceStructuredData, "mileageFromOdometer"))
		}
	}

	if cond, ok := str(m, "itemCondition"); ok && p.Condition == model.ConditionUnknown {
		p.Condition = parse.Condition(cond)
	}

	applyOffers(p, m["offers"])
	applySeller(p, m)
}

// applyOffers pulls a price out of an offer object or array of offers.
func applyOffers(p *Partial, v any) {
	offers := []any{}
	switch t := v.(type) {
	case map[string]any:
		offers = append(offers, t)
	case []any:
		offers = t
	default:
		return
	}

	for _, o := range offers {
		m, ok := asMap(o)
		if !ok {
			continue
		}
		val, ok := firstNum(m, "price", "lowPrice")
		if !ok {
			if spec, found := dig(m, "priceSpecification"); found {
				if sm, isMap := asMap(spec); isMap {
					val, ok = num(sm, "price")
				}
			}
		}
		if !ok {
			continue
		}
		dollars := int(val)
		if dollars < parse.MinPrice || dollars > parse.MaxPrice {
			continue
		}
		if p.Price == 0 {
			p.Price = dollars
		}
		p.PriceCandidates = append(p.PriceCandidates,
			NewPriceCandidate(val, model.SourceStructuredData, "offers.price"))

		if cond, found := str(m, "itemCondition"); found && p.Condition == model.ConditionUnknown {
			p.Condition = parse.Condition(cond)
		}
	}
}

// applySeller extracts dealer identity and address from seller/offeredBy.
func applySeller(p *Partial, m map[string]any) {
	for _, key := range []string{"seller", "offeredBy"} {
		sm, ok := asMap(m[key])
		if !ok {
			// Offers sometimes nest the seller one level down.
			if off, found := asMap(m["offers"]); found {
				sm, ok = asMap(off[key])
			}
		}
		if !ok {
			continue
		}
		if name, found := str(sm, "name"); found && p.DealerName == "" {
			p.DealerName = name
		}
		if addr, found := asMap(sm["address"]); found {
			if city, has := str(addr, "addressLocality"); has && p.DealerCity == "" {
				p.DealerCity = city
			}
			if state, has := str(addr, "addressRegion"); has && p.DealerState == "" && len(state) == 2 {
				p.DealerState = strings.ToUpper(state)
			}
			if zip, has := str(addr, "postalCode"); has && p.Zip == "" {
				p.Zip = zip
			}
		}
	}
}

// entityName reads a schema.org value that may be a plain string or an
// object with a name.
func entityName(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case map[string]any:
		return str(t, "name")
	}
	return "", false
}

// odometerValue reads mileage that may be a number, a string, or a
// QuantitativeValue object.
func odometerValue(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case string:
		if mi, ok := parse.Mileage(t); ok {
			return mi, true
		}
		if f, ok := toNum(t); ok {
			return int(f), true
		}
	case map[string]any:
		if f, ok := num(t, "value"); ok {
			return int(f), true
		}
	}
	return 0, false
}
