package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// makeAliases maps lowercase make tokens (including shorthand) to canonical
// make names. Loaded once, never mutated — safe to share across goroutines.
var makeAliases = map[string]string{
	"acura":         "Acura",
	"alfa romeo":    "Alfa Romeo",
	"audi":          "Audi",
	"bmw":           "BMW",
	"buick":         "Buick",
	"cadillac":      "Cadillac",
	"chevrolet":     "Chevrolet",
	"chevy":         "Chevrolet",
	"chrysler":      "Chrysler",
	"dodge":         "Dodge",
	"fiat":          "Fiat",
	"ford":          "Ford",
	"genesis":       "Genesis",
	"gmc":           "GMC",
	"honda":         "Honda",
	"hyundai":       "Hyundai",
	"infiniti":      "Infiniti",
	"jaguar":        "Jaguar",
	"jeep":          "Jeep",
	"kia":           "Kia",
	"land rover":    "Land Rover",
	"landrover":     "Land Rover",
	"lexus":         "Lexus",
	"lincoln":       "Lincoln",
	"lucid":         "Lucid",
	"maserati":      "Maserati",
	"mazda":         "Mazda",
	"mercedes":      "Mercedes-Benz",
	"mercedes-benz": "Mercedes-Benz",
	"mini":          "MINI",
	"mitsubishi":    "Mitsubishi",
	"nissan":        "Nissan",
	"polestar":      "Polestar",
	"porsche":       "Porsche",
	"ram":           "Ram",
	"rivian":        "Rivian",
	"subaru":        "Subaru",
	"tesla":         "Tesla",
	"toyota":        "Toyota",
	"volkswagen":    "Volkswagen",
	"vw":            "Volkswagen",
	"volvo":         "Volvo",
}

// conditionWords are headline words that describe sale state, not the
// vehicle, and are excluded from model/trim extraction.
var conditionWords = map[string]bool{
	"new": true, "used": true, "certified": true, "pre-owned": true,
	"preowned": true, "cpo": true, "for": true, "sale": true,
}

// modelPairFirstWords are leading tokens that signal a two-word model name
// ("Grand Cherokee", "Model 3") rather than model-then-trim.
var modelPairFirstWords = map[string]bool{
	"grand": true, "santa": true, "model": true, "range": true,
	"super": true, "town": true, "monte": true, "land": true,
}

var (
	yearRe  = regexp.MustCompile(`\b(199\d|20\d{2})\b`)
	parenRe = regexp.MustCompile(`\(([^)]+)\)`)
	trimRe  = regexp.MustCompile(`(?i)(?:trim|package)\s*:\s*([A-Za-z0-9 -]+)`)
)

// TitleFields holds what could be decomposed from a listing headline.
type TitleFields struct {
	Year  int
	Make  string
	Model string
	Trim  string
}

// Title decomposes a listing headline like "Used 2022 Toyota Tundra Limited"
// into year, make, model, and trim. Absent parts are left zero.
func Title(title string) TitleFields {
	var tf TitleFields

	// Year: first 4-digit token inside the plausible model-year window.
	maxYear := time.Now().Year() + 1
	for _, m := range yearRe.FindAllString(title, -1) {
		y, err := strconv.Atoi(m)
		if err == nil && y >= 1990 && y <= maxYear {
			tf.Year = y
			break
		}
	}

	// Make: earliest word-boundary alias match wins; longer alias wins a
	// tie so "mercedes-benz" is preferred over "mercedes".
	lower := strings.ToLower(title)
	makeIdx, aliasLen := -1, 0
	for alias, canonical := range makeAliases {
		idx := indexWord(lower, alias)
		if idx < 0 {
			continue
		}
		if makeIdx == -1 || idx < makeIdx || (idx == makeIdx && len(alias) > aliasLen) {
			tf.Make = canonical
			makeIdx = idx
			aliasLen = len(alias)
		}
	}

	if makeIdx >= 0 {
		tf.Model, tf.Trim = modelAndTrim(title[makeIdx+aliasLen:])
	}

	// An explicit marker or parenthetical overrides the positional trim.
	if m := trimRe.FindStringSubmatch(title); m != nil {
		tf.Trim = strings.TrimSpace(m[1])
	} else if m := parenRe.FindStringSubmatch(title); m != nil {
		tf.Trim = strings.TrimSpace(m[1])
	}

	return tf
}

// CanonicalMake maps a raw make string to the canonical vocabulary entry.
// Unrecognized makes pass through trimmed but otherwise untouched.
func CanonicalMake(raw string) string {
	if canonical, ok := makeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// KnownMake reports whether text contains any known make token.
func KnownMake(text string) bool {
	lower := strings.ToLower(text)
	for alias := range makeAliases {
		if indexWord(lower, alias) >= 0 {
			return true
		}
	}
	return false
}

// modelAndTrim splits the headline remainder after the make into model
// token(s) and a trailing trim guess.
func modelAndTrim(rest string) (string, string) {
	fields := strings.Fields(rest)
	var tokens []string
	for _, tok := range fields {
		cleaned := strings.Trim(tok, ",.|-")
		lower := strings.ToLower(cleaned)
		if cleaned == "" || conditionWords[lower] {
			continue
		}
		if strings.HasPrefix(cleaned, "(") || yearRe.MatchString(cleaned) {
			break
		}
		if strings.EqualFold(cleaned, "trim:") || strings.EqualFold(cleaned, "package:") {
			break
		}
		tokens = append(tokens, cleaned)
	}
	if len(tokens) == 0 {
		return "", ""
	}

	modelEnd := 1
	if len(tokens) >= 2 && modelPairFirstWords[strings.ToLower(tokens[0])] {
		modelEnd = 2
	}

	model := strings.Join(tokens[:modelEnd], " ")
	trim := ""
	if len(tokens) > modelEnd {
		// Keep at most two trailing tokens as the trim guess; beyond
		// that the headline is usually boilerplate, not a trim level.
		end := modelEnd + 2
		if end > len(tokens) {
			end = len(tokens)
		}
		trim = strings.Join(tokens[modelEnd:end], " ")
	}
	return model, trim
}

// indexWord finds needle in haystack at word boundaries, or returns -1.
func indexWord(haystack, needle string) int {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return -1
		}
		idx += start
		end := idx + len(needle)
		beforeOK := idx == 0 || !isWordChar(haystack[idx-1])
		afterOK := end >= len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return idx
		}
		start = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
