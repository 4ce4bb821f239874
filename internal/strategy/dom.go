package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

// priceContextWords gate whether a dollar amount in visible text becomes a
// price candidate at all. Amounts with no pricing language nearby are more
// often fees, accessories, or ad copy.
var priceContextWords = []string{
	"price", "msrp", "sale", "internet", "offer", "deal", "pay", "save",
	"sticker", "retail", "was", "now",
}

// titleSelectors and dealerSelectors are checked in order; first non-empty
// match wins.
var titleSelectors = []string{
	"h1",
	".vehicle-title",
	".vdp-title",
	`[data-testid="vehicle-title"]`,
	".listing-title",
}

var dealerSelectors = []string{
	".dealer-name",
	".dealership-name",
	`[data-testid="dealer-name"]`,
	".dealer-info h2",
}

var (
	domPriceRe   = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d{2})?)`)
	domMileageRe = regexp.MustCompile(`(?i)([\d,]+)\s*(?:mi\b|miles\b)`)
	vinLabelRe   = regexp.MustCompile(`(?i)vin[:#\s]`)
	cityStateRe  = regexp.MustCompile(`([A-Z][A-Za-z .'-]{1,30}),\s*([A-Z]{2})\b`)
	zipRe        = regexp.MustCompile(`\b(\d{5})(?:-\d{4})?\b`)
)

// DOM is the keyword-proximity strategy over visible text and tag
// attributes. It commits only low-ambiguity fields (title, VIN, stock,
// dealer identity/location, condition); price and mileage are emitted purely
// as candidates for central scoring.
func DOM(doc *goquery.Document) *Partial {
	p := NewPartial()
	if doc == nil {
		return p
	}

	for _, sel := range titleSelectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" && len(t) < 200 {
			p.applyTitle(t)
			break
		}
	}
	for _, sel := range dealerSelectors {
		if name := strings.TrimSpace(doc.Find(sel).First().Text()); name != "" && len(name) < 100 {
			p.DealerName = name
			break
		}
	}

	walkText(doc, func(text string, node *html.Node) {
		collectPriceCandidates(p, text, node)
		collectMileageCandidates(p, text, node)
	})

	scanSpecPairs(p, doc)

	bodyText := doc.Find("body").Text()
	if p.VIN == "" {
		if loc := vinLabelRe.FindStringIndex(bodyText); loc != nil {
			tail := bodyText[loc[1]:]
			if len(tail) > 80 {
				tail = tail[:80]
			}
			if vin, ok := parse.VIN(tail); ok {
				p.VIN = vin
			}
		}
	}
	if p.Condition == model.ConditionUnknown && p.Title != "" {
		p.Condition = parse.Condition(p.Title)
	}

	return p
}

// walkText visits every visible text node, skipping script/style subtrees.
func walkText(doc *goquery.Document, visit func(string, *html.Node)) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				visit(text, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
}

func collectPriceCandidates(p *Partial, text string, node *html.Node) {
	if !strings.Contains(text, "$") {
		return
	}
	matches := domPriceRe.FindAllStringSubmatchIndex(text, -1)
	prevEnd := 0
	for _, m := range matches {
		segStart := prevEnd
		prevEnd = m[1]
		raw := text[m[2]:m[3]]
		f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		ctx := nodeContext(node, text)
		if len(matches) > 1 {
			// Several amounts in one node would otherwise share one
			// window and all inherit whichever label is checked first.
			// Each amount's label is the text leading up to it:
			// "MSRP $26,000 / Internet Price $23,450" splits into an
			// MSRP segment and a sale segment.
			ctx = text[segStart:m[1]]
		}
		if !containsAny(strings.ToLower(ctx), priceContextWords) {
			continue
		}
		p.PriceCandidates = append(p.PriceCandidates,
			NewPriceCandidate(f, model.SourceDOM, ctx))
	}
}

func collectMileageCandidates(p *Partial, text string, node *html.Node) {
	for _, m := range domMileageRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		p.MileageCandidates = append(p.MileageCandidates,
			NewMileageCandidate(float64(n), model.SourceDOM, nodeContext(node, text)))
	}
}

// nodeContext widens a text node's context by climbing ancestors until the
// combined text is long enough to carry a label. Dealer sites habitually put
// the label ("MSRP") and the amount in sibling elements.
func nodeContext(node *html.Node, fallback string) string {
	cur := node
	for depth := 0; depth < 3 && cur.Parent != nil; depth++ {
		cur = cur.Parent
		text := collectText(cur)
		// The tightest ancestor that adds words beyond the bare amount
		// is the label context; climbing further pulls in unrelated
		// labels from sibling price blocks.
		if len(text) >= 12 && len(text) <= 300 && text != fallback {
			return text
		}
		if len(text) > 300 {
			break
		}
	}
	return fallback
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// scanSpecPairs reads definition lists and spec tables as label→value pairs.
func scanSpecPairs(p *Partial, doc *goquery.Document) {
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.Next()
		if !dd.Is("dd") {
			return
		}
		applySpecPair(p, dt.Text(), dd.Text())
	})

	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		applySpecPair(p, cells.Eq(0).Text(), cells.Eq(1).Text())
	})
}

func applySpecPair(p *Partial, rawLabel, rawValue string) {
	label := strings.ToLower(strings.TrimSpace(rawLabel))
	value := strings.TrimSpace(rawValue)
	if label == "" || value == "" {
		return
	}

	switch {
	case strings.Contains(label, "price") || strings.Contains(label, "msrp"):
		if f, ok := toNum(value); ok {
			p.PriceCandidates = append(p.PriceCandidates,
				NewPriceCandidate(f, model.SourceDOM, rawLabel+" "+value))
		}
	case strings.Contains(label, "mileage") || strings.Contains(label, "odometer"):
		if mi, ok := parse.Mileage(value); ok {
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(float64(mi), model.SourceDOM, rawLabel+" "+value))
		} else if f, ok := toNum(value); ok && f >= 0 && f <= parse.MaxMileage {
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(f, model.SourceDOM, rawLabel+" "+value))
		}
	case strings.Contains(label, "vin"):
		if vin, ok := parse.VIN(value); ok && p.VIN == "" {
			p.VIN = vin
		}
	case strings.Contains(label, "stock"):
		if p.Stock == "" && len(value) <= 20 {
			p.Stock = value
		}
	case strings.Contains(label, "dealer") || strings.Contains(label, "seller"):
		if p.DealerName == "" && len(value) <= 100 {
			p.DealerName = value
		}
	case strings.Contains(label, "location") || strings.Contains(label, "address") || strings.Contains(label, "city"):
		applyLocation(p, value)
	case strings.Contains(label, "condition"):
		if p.Condition == model.ConditionUnknown {
			p.Condition = parse.Condition(value)
		}
	}
}

// usStates validates the two-letter token of a "City, ST" match. Plenty of
// non-geographic text has the same shape ("Accord, EX").
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

// cityState returns the first "City, ST" pair whose state token is a real
// US state or DC.
func cityState(text string) (string, string, bool) {
	for _, m := range cityStateRe.FindAllStringSubmatch(text, -1) {
		if usStates[m[2]] {
			return strings.TrimSpace(m[1]), m[2], true
		}
	}
	return "", "", false
}

// applyLocation parses "City, ST 30309"-shaped text into location fields.
func applyLocation(p *Partial, value string) {
	if city, state, ok := cityState(value); ok {
		if p.DealerCity == "" {
			p.DealerCity = city
		}
		if p.DealerState == "" {
			p.DealerState = state
		}
	}
	if m := zipRe.FindStringSubmatch(value); m != nil && p.Zip == "" {
		p.Zip = m[1]
	}
}
