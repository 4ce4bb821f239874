package extractor

import (
	"net/url"
	"strings"

	"github.com/taylorp5/dealwise/internal/model"
)

// knownMarketplaces are hosts recognized by name only. Autotrader has a
// dedicated extractor; these are classified for bookkeeping but extracted
// generically.
var knownMarketplaces = []string{"cars.com", "cargurus", "carmax"}

// ClassifySite determines the source site by host matching. A URL that
// fails to parse falls back to substring matching on the raw string, so the
// invariant that SourceSite is always set holds regardless of input.
func ClassifySite(rawURL string) model.SourceSite {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)

	if strings.Contains(host, "autotrader") {
		return model.SiteAutotrader
	}
	for _, known := range knownMarketplaces {
		if strings.Contains(host, known) {
			return model.SiteOther
		}
	}
	return model.SiteOther
}
