package models

// Product is the result of one extraction attempt. It is a plain value:
// created fresh per attempt, filled best-effort, and never mutated after
// being returned. Fields that could not be extracted keep their defaults.
type Product struct {
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	Price          float64           `json:"price"`
	Currency       string            `json:"currency"`
	SalesCount     int               `json:"sales_count"`
	ImageURL       string            `json:"image_url,omitempty"`
	Description    string            `json:"description,omitempty"`
	Specifications map[string]string `json:"specifications"`
	Platform       string            `json:"platform"`
	Category       string            `json:"category"`
}

// NewProduct creates a Product for the given input URL with the documented
// defaults: price 0, currency "USD", empty specification map.
func NewProduct(url string) *Product {
	return &Product{
		URL:            url,
		Currency:       "USD",
		Specifications: make(map[string]string),
	}
}
