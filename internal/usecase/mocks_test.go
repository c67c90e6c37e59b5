package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/closetcompare/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data     map[string][]byte
	getError error
	setError error
	getCalls int
	setCalls int

	deletedPrefixes []string
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	m.getCalls++
	if m.getError != nil {
		return m.getError
	}
	raw, ok := m.data[key]
	if !ok {
		return domain.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *MockCacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	m.deletedPrefixes = append(m.deletedPrefixes, prefix)
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
		}
	}
	return nil
}

// MockProductRepository is an in-memory domain.ProductRepository
type MockProductRepository struct {
	mu        sync.Mutex
	order     []string
	products  map[string]domain.Product
	history   map[string][]domain.PricePoint
	getError  error
	listError error
	upsertErr error
	getCalls  int
}

func NewMockProductRepository(products ...domain.Product) *MockProductRepository {
	m := &MockProductRepository{
		products: make(map[string]domain.Product),
		history:  make(map[string][]domain.PricePoint),
	}
	for _, p := range products {
		m.order = append(m.order, p.ID)
		m.products[p.ID] = p
	}
	return m
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *MockProductRepository) ListCandidates(ctx context.Context, excludeID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listError != nil {
		return nil, m.listError
	}
	var out []domain.Product
	for _, id := range m.order {
		if id != excludeID {
			out = append(out, m.products[id])
		}
	}
	return out, nil
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if _, ok := m.products[product.ID]; !ok {
		m.order = append(m.order, product.ID)
	}
	m.products[product.ID] = *product
	return nil
}

func (m *MockProductRepository) PriceHistory(ctx context.Context, id string) ([]domain.PricePoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history[id], nil
}

// MockCatalogClient returns canned listings per retailer
type MockCatalogClient struct {
	listings map[string][]domain.Listing
	errors   map[string]error
}

func NewMockCatalogClient() *MockCatalogClient {
	return &MockCatalogClient{
		listings: make(map[string][]domain.Listing),
		errors:   make(map[string]error),
	}
}

func (m *MockCatalogClient) ListProducts(ctx context.Context, retailer string) ([]domain.Listing, error) {
	if err := m.errors[retailer]; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.listings[retailer], nil
}
