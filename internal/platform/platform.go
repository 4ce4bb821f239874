// Package platform classifies listing markup against known dealer-website
// vendors. The result only biases which embedded-state paths are tried first;
// an unknown platform never blocks extraction.
package platform

import "strings"

// Platform tags the dealer-website vendor a page was built on.
type Platform string

const (
	DealerDotCom  Platform = "dealer.com"
	DealerOn      Platform = "dealeron"
	DealerInspire Platform = "dealerinspire"
	DealerSocket  Platform = "dealersocket"
	SM360         Platform = "sm360"
	Unknown       Platform = "unknown"
)

// signatures holds literal substrings that identify each vendor: script
// hosts, global variable names, and CSS class prefixes. Checked in order;
// first hit wins.
var signatures = []struct {
	platform Platform
	tokens   []string
}{
	{DealerDotCom, []string{"window.DDC", "ddc.userProfileController", "static.dealer.com", "ddc-content"}},
	{DealerOn, []string{"dealeron", "DealerOn", "dlron.us"}},
	{DealerInspire, []string{"dealerinspire", "dealer-inspire", "DI.vdp", "di-websites-platform"}},
	{DealerSocket, []string{"dealersocket", "dealerfire"}},
	{SM360, []string{"sm360.ca", "window.resourceData", "sm360-"}},
}

// Detect scans raw markup for vendor signatures.
func Detect(markup string) Platform {
	for _, sig := range signatures {
		for _, tok := range sig.tokens {
			if strings.Contains(markup, tok) {
				return sig.platform
			}
		}
	}
	return Unknown
}

// String implements fmt.Stringer.
func (p Platform) String() string { return string(p) }
