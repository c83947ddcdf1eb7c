package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/merchstat/scout/models"
)

// AliExpress extracts product fields from an AliExpress listing. The page
// embeds its product data as JSON in a window.runParams script, which is
// more reliable than the rendered DOM and is preferred when present.
// Structural selectors fill in only the fields the JSON left empty.
type AliExpress struct{}

var runParamsData = regexp.MustCompile(`data: ({.*})`)

// runParams mirrors the slice of window.runParams this extractor consumes.
// Unknown keys are ignored; missing keys leave fields at their defaults.
type runParams struct {
	ProductInfo *struct {
		Subject string `json:"subject"`
		Price   *struct {
			FormatedAmount string `json:"formatedAmount"`
		} `json:"price"`
		ImagePathList []string `json:"imagePathList"`
	} `json:"productInfoComponent"`
	Trade *struct {
		FormatTradeCount string `json:"formatTradeCount"`
	} `json:"tradeComponent"`
	Specs *struct {
		Props []struct {
			AttrName  string `json:"attrName"`
			AttrValue string `json:"attrValue"`
		} `json:"props"`
	} `json:"specsModule"`
}

func (a *AliExpress) Extract(_ context.Context, doc *goquery.Document, url string) *models.Product {
	p := models.NewProduct(url)
	p.Platform = "AliExpress"

	if params := findRunParams(doc); params != nil {
		applyRunParams(params, p)
	}

	// Structural fallbacks for whatever the script data did not provide.
	if p.Name == "" {
		p.Name = selectionText(doc, ".product-title")
	}
	if p.ImageURL == "" {
		p.ImageURL = selectionAttr(doc, ".magnifier-image", "src")
	}
	if p.Description == "" {
		p.Description = selectionText(doc, ".product-description")
	}

	return p
}

// findRunParams locates the script tag assigning window.runParams and
// decodes its data object. Malformed or missing JSON is not an error; the
// caller falls back to structural extraction.
func findRunParams(doc *goquery.Document) *runParams {
	var params *runParams
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !strings.Contains(text, "window.runParams") {
			return true
		}
		m := runParamsData.FindStringSubmatch(text)
		if m == nil {
			return true
		}
		var decoded runParams
		if err := json.Unmarshal([]byte(m[1]), &decoded); err != nil {
			slog.Debug("runParams decode failed", "error", err)
			return true
		}
		params = &decoded
		return false
	})
	return params
}

func applyRunParams(params *runParams, p *models.Product) {
	if info := params.ProductInfo; info != nil {
		p.Name = info.Subject
		if info.Price != nil {
			ParsePrice(info.Price.FormatedAmount, p)
		}
		if len(info.ImagePathList) > 0 {
			p.ImageURL = info.ImagePathList[0]
		}
	}

	if params.Trade != nil {
		if m := salesPattern.FindString(params.Trade.FormatTradeCount); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				p.SalesCount = n
			}
		}
	}

	if params.Specs != nil {
		for _, prop := range params.Specs.Props {
			if prop.AttrName != "" {
				p.Specifications[prop.AttrName] = prop.AttrValue
			}
		}
	}
}

var salesPattern = regexp.MustCompile(`\d+`)
