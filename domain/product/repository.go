package product

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a product is not found.
var ErrNotFound = errors.New("product not found")

// Repository provides read access to the catalog store plus the bulk
// operations the seeder needs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new product repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the catalog tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Product{}, &ProductColor{}, &ProductStorage{}, &ProductEmiPlan{})
}

// withChildren eagerly loads every child collection in seed order.
func withChildren(db *gorm.DB) *gorm.DB {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}
	return db.
		Preload("Colors", byPosition).
		Preload("StorageOptions", byPosition).
		Preload("EmiPlans", byPosition)
}

// List returns all products with their children. The product rows and the
// child rows are read inside one transaction.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Scopes(withChildren).Order("position ASC, id ASC").Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindByID returns one product with its children, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Scopes(withChildren).First(&product, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// Count returns the number of products.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// Create saves a product and its children.
func (r *Repository) Create(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product %s: %w", product.ID, err)
	}
	return nil
}

// DeleteAll removes every product. Children go with them through the
// ON DELETE CASCADE constraints.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Product{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete products: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// WithTx returns a repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Transaction runs fn with a repository bound to a single transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
