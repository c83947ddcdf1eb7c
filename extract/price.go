package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/merchstat/scout/models"
)

var (
	currencyPattern  = regexp.MustCompile(`[^\d,.]+`)
	magnitudePattern = regexp.MustCompile(`[\d,.]+`)
)

// ParsePrice tokenizes raw price text ("US $1,299.99", "￥2,480") into the
// product's price and currency. The leading non-digit run becomes the
// currency token; the first digit/comma/period run, commas stripped, the
// magnitude. An unparsable magnitude leaves price at 0; a missing currency
// token leaves the existing default untouched. Never an error: price text
// is unreliable by nature.
func ParsePrice(text string, p *models.Product) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	magnitude := magnitudePattern.FindString(text)
	if magnitude == "" {
		// No digit run at all: leave both price and currency alone.
		return
	}

	if m := currencyPattern.FindString(text); m != "" {
		if tok := strings.TrimSpace(m); tok != "" {
			p.Currency = tok
		}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(magnitude, ",", ""), 64)
	if err != nil {
		p.Price = 0.0
		return
	}
	p.Price = value
}
