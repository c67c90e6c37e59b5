package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import for side-effects only

	"github.com/closetcompare/backend/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  garment_class TEXT NOT NULL DEFAULT '',
  gender TEXT NOT NULL DEFAULT '',
  price REAL NOT NULL DEFAULT 0,
  retailer TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_class ON products(garment_class);

CREATE TABLE IF NOT EXISTS price_history (
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  price REAL NOT NULL,
  recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history(product_id, recorded_at);
`

// ProductStore persists products and their price history in SQLite
type ProductStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to the SQLite database at path and ensures the schema exists.
// Transactions begin IMMEDIATE so concurrent writers queue on the busy timeout
// instead of failing a read-to-write lock upgrade.
func Open(path string) (*ProductStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &ProductStore{db: db, now: time.Now}, nil
}

// Close closes the underlying database
func (s *ProductStore) Close() error {
	return s.db.Close()
}

// GetByID loads a single product
func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, brand, garment_class, gender, price, retailer, url, updated_at
		FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return p, nil
}

// ListCandidates returns every product except excludeID in insertion order
func (s *ProductStore) ListCandidates(ctx context.Context, excludeID string) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, brand, garment_class, gender, price, retailer, url, updated_at
		FROM products WHERE id <> ? ORDER BY rowid`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Upsert inserts or updates a product. A price point is recorded when the
// product is new or its price changed.
func (s *ProductStore) Upsert(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return domain.ErrInvalidRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous float64
	err = tx.QueryRowContext(ctx, `SELECT price FROM products WHERE id = ?`, product.ID).Scan(&previous)
	isNew := errors.Is(err, sql.ErrNoRows)
	if err != nil && !isNew {
		return fmt.Errorf("failed to read current price: %w", err)
	}

	now := s.now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, brand, garment_class, gender, price, retailer, url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  name = excluded.name,
		  brand = excluded.brand,
		  garment_class = excluded.garment_class,
		  gender = excluded.gender,
		  price = excluded.price,
		  retailer = excluded.retailer,
		  url = excluded.url,
		  updated_at = excluded.updated_at`,
		product.ID, product.Name, product.Brand, product.GarmentClass, product.Gender,
		product.Price, product.Retailer, product.URL, now)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.ID, err)
	}

	if isNew || previous != product.Price {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO price_history (product_id, price, recorded_at) VALUES (?, ?, ?)`,
			product.ID, product.Price, now)
		if err != nil {
			return fmt.Errorf("failed to record price for %s: %w", product.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product %s: %w", product.ID, err)
	}
	product.UpdatedAt = now
	return nil
}

// PriceHistory returns the recorded prices of a product, oldest first
func (s *ProductStore) PriceHistory(ctx context.Context, id string) ([]domain.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT price, recorded_at FROM price_history
		WHERE product_id = ? ORDER BY recorded_at, rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	defer rows.Close()

	var points []domain.PricePoint
	for rows.Next() {
		var pt domain.PricePoint
		if err := rows.Scan(&pt.Price, &pt.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		points = append(points, pt)
	}
	return points, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.GarmentClass, &p.Gender,
		&p.Price, &p.Retailer, &p.URL, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
