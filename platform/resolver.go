// Package platform maps product-page URLs to marketplace labels.
package platform

import (
	"net/url"
	"strings"
	"unicode"
)

// Other is the label returned when the host cannot be resolved at all.
const Other = "Other"

// rule matches a host containing token to a marketplace label.
type rule struct {
	token string
	label string
}

// rules is an ordered precedence list, grouped by region. Order is
// significant: specific marketplace tokens must sort before generic ones
// (e.g. "shopee" before the generic "shopify"), so the first match wins.
var rules = []rule{
	// North America
	{"amazon", "Amazon"},
	{"ebay", "eBay"},
	{"walmart", "Walmart"},
	{"etsy", "Etsy"},
	{"wish", "Wish"},
	{"newegg", "Newegg"},
	{"wayfair", "Wayfair"},
	{"bestbuy", "Best Buy"},

	// Europe
	{"otto.de", "Otto"},
	{"zalando", "Zalando"},
	{"cdiscount", "Cdiscount"},
	{"asos", "ASOS"},
	{"fnac", "Fnac"},
	{"real.de", "Real.de"},

	// Japan / Korea
	{"rakuten", "Rakuten"},
	{"shopping.yahoo", "Yahoo Shopping Japan"},
	{"mercari", "Mercari"},
	{"gmarket", "Gmarket"},
	{"11st", "11Street"},

	// Southeast Asia
	{"shopee", "Shopee"},
	{"lazada", "Lazada"},
	{"tokopedia", "Tokopedia"},
	{"bukalapak", "Bukalapak"},

	// Russia
	{"ozon", "Ozon"},
	{"wildberries", "Wildberries"},

	// China cross-border
	{"aliexpress", "AliExpress"},
	{"dhgate", "DHgate"},
	{"alibaba", "Alibaba.com"},

	// Generic storefront hosts
	{"shopify", "Shopify"},
}

// Resolve returns the marketplace label for the given product URL.
// Unknown hosts get a label derived from the domain itself; an empty or
// unparsable host resolves to Other. Resolve is pure and side-effect free.
func Resolve(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Other
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Other
	}

	for _, r := range rules {
		if strings.Contains(host, r.token) {
			return r.label
		}
	}

	return derivedLabel(host)
}

// derivedLabel builds a fallback label from the host: strip a leading
// "www.", take the first dot-delimited segment, capitalize it.
func derivedLabel(host string) string {
	host = strings.TrimPrefix(host, "www.")
	seg, _, _ := strings.Cut(host, ".")
	if seg == "" {
		return Other
	}
	runes := []rune(seg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
