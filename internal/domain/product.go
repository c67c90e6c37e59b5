package domain

import "time"

// Product is a tracked retailer product
type Product struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Brand        string    `json:"brand" yaml:"brand"`
	GarmentClass string    `json:"garmentClass" yaml:"garmentClass"`
	Gender       string    `json:"gender,omitempty" yaml:"gender,omitempty"`
	Price        float64   `json:"price" yaml:"price"`
	Retailer     string    `json:"retailer" yaml:"retailer"`
	URL          string    `json:"url,omitempty" yaml:"url,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Candidate projects the product onto the fields used for similarity scoring
func (p Product) Candidate() CandidateItem {
	return CandidateItem{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		GarmentClass: p.GarmentClass,
		GenderTag:    p.Gender,
		Price:        p.Price,
	}
}

// CandidateItem is an item considered by the recommender. An empty GenderTag means absent.
type CandidateItem struct {
	ID           string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	Brand        string  `json:"brand" yaml:"brand"`
	GarmentClass string  `json:"garmentClass" yaml:"garmentClass"`
	GenderTag    string  `json:"genderTag,omitempty" yaml:"genderTag,omitempty"`
	Price        float64 `json:"price" yaml:"price"`
}

// ScoredItem is a candidate with its similarity score
type ScoredItem struct {
	Item  CandidateItem `json:"item" yaml:"item"`
	Score int           `json:"score" yaml:"score"`
}

// RankRequest ranks caller-supplied candidates against a reference
type RankRequest struct {
	Reference  CandidateItem   `json:"reference"`
	Candidates []CandidateItem `json:"candidates"`
	Limit      int             `json:"limit,omitempty"`
}

// PricePoint is one observed price
type PricePoint struct {
	Price      float64   `json:"price" yaml:"price"`
	RecordedAt time.Time `json:"recordedAt" yaml:"recordedAt"`
}

// PriceSummary aggregates the price history of a product
type PriceSummary struct {
	ProductID string       `json:"productId" yaml:"productId"`
	Current   float64      `json:"current" yaml:"current"`
	Lowest    float64      `json:"lowest" yaml:"lowest"`
	Highest   float64      `json:"highest" yaml:"highest"`
	Average   float64      `json:"average" yaml:"average"`
	Points    []PricePoint `json:"points" yaml:"points"`
}
