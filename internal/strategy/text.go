package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taylorp5/dealwise/internal/model"
	"github.com/taylorp5/dealwise/internal/parse"
)

// navJunkWords mark lines that are site chrome, not listing content. A line
// carrying one of these is heavily penalized in title scoring and excluded
// from dealer-name direct matches.
var navJunkWords = []string{
	"inventory", "specials", "contact", "menu", "search", "finance",
	"directions", "hours", "schedule", "privacy", "sitemap", "sign in",
	"log in", "compare", "saved vehicles",
}

// dealerSuffixWords are tokens that make a make-bearing line read like a
// dealership name ("Victory Toyota of Midtown", "Hendrick Honda Motors").
var dealerSuffixWords = []string{
	"motors", "auto", "automotive", "dealership", "motorcars", "of", "cars",
}

// Line-scoring weights for finding the most title-like line of pasted text.
const (
	titleYearBonus   = 50
	titleMakeBonus   = 30
	titleModelBonus  = 20
	titleJunkPenalty = -50
)

var (
	textPriceRe     = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d{2})?)`)
	locationWords   = []string{"address", "location", "located", "contact", "visit"}
	conditionLineRe = regexp.MustCompile(`(?i)^\s*condition\s*:\s*(.+)$`)
)

// FreeText extracts from plain pasted text: no markup, so everything rides
// on line structure and keyword proximity. Embedded HTML tags are stripped
// before scanning.
func FreeText(text string) *Partial {
	p := NewPartial()

	text = stripTags(text)
	lines := splitLines(text)

	if title, ok := bestTitleLine(lines); ok {
		p.applyTitle(title)
		if cond := parse.Condition(title); cond != model.ConditionUnknown {
			p.Condition = cond
		}
	}

	for _, line := range lines {
		if m := conditionLineRe.FindStringSubmatch(line); m != nil && p.Condition == model.ConditionUnknown {
			p.Condition = parse.Condition(m[1])
		}
	}

	collectTextPrices(p, lines)
	collectTextMileages(p, lines)

	if vin, ok := parse.VIN(text); ok {
		p.VIN = vin
	}

	if name, ok := dealerNameFromLines(lines); ok {
		p.DealerName = name
	}
	applyBestLocation(p, lines)

	return p
}

// stripTags removes embedded HTML when the paste looks like markup.
func stripTags(text string) string {
	if !strings.Contains(text, "<") || !strings.Contains(text, ">") {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	stripped := doc.Text()
	if strings.TrimSpace(stripped) == "" {
		return text
	}
	return stripped
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// bestTitleLine runs the line-scoring pass: the single most title-like line
// is decomposed for year/make/model/trim rather than the whole text.
func bestTitleLine(lines []string) (string, bool) {
	best, bestScore := "", 0
	for _, line := range lines {
		if len(line) > 120 {
			continue
		}
		score := 0
		tf := parse.Title(line)
		if tf.Year != 0 {
			score += titleYearBonus
		}
		if tf.Make != "" {
			score += titleMakeBonus
		}
		if tf.Model != "" {
			score += titleModelBonus
		}
		if containsAny(strings.ToLower(line), navJunkWords) {
			score += titleJunkPenalty
		}
		if score > bestScore {
			best, bestScore = line, score
		}
	}
	return best, bestScore > 0
}

func collectTextPrices(p *Partial, lines []string) {
	for _, line := range lines {
		matches := textPriceRe.FindAllStringSubmatchIndex(line, -1)
		prevEnd := 0
		for _, m := range matches {
			segStart := prevEnd
			prevEnd = m[1]
			raw := line[m[2]:m[3]]
			f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				continue
			}
			ctx := line
			if len(matches) > 1 {
				// Two amounts on one line must not share a label;
				// each amount keeps the text leading up to it.
				ctx = line[segStart:m[1]]
			}
			p.PriceCandidates = append(p.PriceCandidates,
				NewPriceCandidate(f, model.SourceText, ctx))
		}
	}
}

func collectTextMileages(p *Partial, lines []string) {
	for _, line := range lines {
		for _, m := range domMileageRe.FindAllStringSubmatch(line, -1) {
			n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			p.MileageCandidates = append(p.MileageCandidates,
				NewMileageCandidate(float64(n), model.SourceText, line))
		}
	}
}

// dealerNameFromLines finds the dealership name. A line shaped like
// "<Make> ... Motors/Auto/Dealership/of ..." with 3–8 words and no junk is a
// direct match accepted immediately; otherwise lines are scored and the best
// positive scorer wins.
func dealerNameFromLines(lines []string) (string, bool) {
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) < 3 || len(words) > 8 {
			continue
		}
		lower := strings.ToLower(line)
		if containsAny(lower, navJunkWords) {
			continue
		}
		if parse.KnownMake(line) && hasDealerSuffix(lower) {
			return line, true
		}
	}

	best, bestScore := "", 0
	for i, line := range lines {
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 8 {
			continue
		}
		lower := strings.ToLower(line)
		score := 0
		if hasDealerSuffix(lower) {
			score += 20
		}
		if parse.KnownMake(line) {
			score += 10
		}
		if containsAny(lower, navJunkWords) {
			score -= 50
		}
		if i < 3 {
			// Dealer names tend to lead pasted listings.
			score += 5
		}
		if score > bestScore {
			best, bestScore = line, score
		}
	}
	return best, bestScore >= 20
}

func hasDealerSuffix(lower string) bool {
	for _, w := range dealerSuffixWords {
		if indexWordText(lower, w) {
			return true
		}
	}
	return false
}

// indexWordText reports a word-boundary containment check for ASCII tokens.
func indexWordText(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		i += idx
		end := i + len(needle)
		beforeOK := i == 0 || !isWordChar(haystack[i-1])
		afterOK := end >= len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = i + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// applyBestLocation scans for ZIP and "City, ST" tokens, preferring lines
// near address/location/contact keywords.
func applyBestLocation(p *Partial, lines []string) {
	bestScore := -1
	var bestCity, bestState, bestZip string

	for _, line := range lines {
		city, state, okCS := cityState(line)
		z := zipRe.FindStringSubmatch(line)
		if !okCS && z == nil {
			continue
		}
		score := 0
		if containsAny(strings.ToLower(line), locationWords) {
			score += 20
		}
		if okCS && z != nil {
			score += 10
		}
		if score > bestScore {
			bestScore = score
			bestCity, bestState, bestZip = "", "", ""
			if okCS {
				bestCity, bestState = city, state
			}
			if z != nil {
				bestZip = z[1]
			}
		}
	}

	if bestCity != "" && p.DealerCity == "" {
		p.DealerCity = bestCity
	}
	if bestState != "" && p.DealerState == "" {
		p.DealerState = bestState
	}
	if bestZip != "" && p.Zip == "" {
		p.Zip = bestZip
	}
}
