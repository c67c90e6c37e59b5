package usecase

import (
	"context"

	"github.com/closetcompare/backend/internal/domain"
)

// ProductService reads tracked products and their price history
type ProductService struct {
	products domain.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(products domain.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Get loads a product by ID
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.products.GetByID(ctx, id)
}

// PriceSummary aggregates the recorded prices of a product.
// Current is the latest recorded price; Average is over recorded points.
func (s *ProductService) PriceSummary(ctx context.Context, id string) (*domain.PriceSummary, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	points, err := s.products.PriceHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &domain.PriceSummary{ProductID: id, Points: points}
	if len(points) == 0 {
		summary.Points = []domain.PricePoint{}
		return summary, nil
	}

	summary.Lowest = points[0].Price
	summary.Highest = points[0].Price
	total := 0.0
	for _, pt := range points {
		summary.Lowest = min(summary.Lowest, pt.Price)
		summary.Highest = max(summary.Highest, pt.Price)
		total += pt.Price
	}
	summary.Current = points[len(points)-1].Price
	summary.Average = total / float64(len(points))

	return summary, nil
}
