package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the products owned by the scope, newest first. The
// merchant-scoped variant resolves ownership through the store profile.
func (r *Repository) List(ctx context.Context, scope types.Scope) ([]models.Product, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx)
	if scope.IsStore() {
		q = q.Where("store_id = ?", scope.ID)
	} else {
		q = q.Where("store_id IN (SELECT id FROM store_profiles WHERE merchant_id = ?)", scope.ID)
	}
	var items []models.Product
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads a product by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateWithTx inserts a new product using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, product *models.Product) (*models.Product, error) {
	if err := tx.Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateWithTx persists the mutable fields of an existing product using
// the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, product *models.Product) (*models.Product, error) {
	if err := tx.Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteWithTx removes the product row using the provided transaction.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&models.Product{}, "id = ?", id).Error
}
