package domain

// Listing is a product as published by a retailer feed
type Listing struct {
	SKU      string  `json:"sku"`
	Title    string  `json:"title"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Gender   string  `json:"gender,omitempty"`
	Price    float64 `json:"price"`
	URL      string  `json:"url,omitempty"`
}

// ListingsResponse represents the response from the retailer feed API
type ListingsResponse struct {
	Retailer  string    `json:"retailer"`
	Products  []Listing `json:"products"`
	TotalHits int       `json:"totalHits"`
}

// SyncReport summarises one catalog import run
type SyncReport struct {
	Retailers []RetailerSync `json:"retailers" yaml:"retailers"`
	Imported  int            `json:"imported" yaml:"imported"`
	Skipped   int            `json:"skipped" yaml:"skipped"`
}

// RetailerSync holds the counts for a single retailer
type RetailerSync struct {
	Retailer string `json:"retailer" yaml:"retailer"`
	Imported int    `json:"imported" yaml:"imported"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
}
