package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// selectionText returns the trimmed text of the first node matching the
// selector, or "" when nothing matches.
func selectionText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// selectionAttr returns the trimmed attribute value of the first node
// matching the selector, or "" when the node or attribute is absent.
func selectionAttr(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}

// clampText limits s to at most max runes.
func clampText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
