package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the categories owned by the scope, oldest first. The
// merchant-scoped variant resolves ownership through the store profile.
func (r *Repository) List(ctx context.Context, scope types.Scope) ([]models.Category, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx)
	if scope.IsStore() {
		q = q.Where("store_id = ?", scope.ID)
	} else {
		q = q.Where("store_id IN (SELECT id FROM store_profiles WHERE merchant_id = ?)", scope.ID)
	}
	var items []models.Category
	if err := q.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads a category by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update persists the mutable fields of an existing category.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

// AdjustProductCountWithTx shifts the denormalized product counter by
// delta inside the caller's transaction, clamping at zero. The counter
// only moves together with the product write that caused the shift.
func (r *Repository) AdjustProductCountWithTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.
		Model(&models.Category{}).
		Where("id = ?", id).
		UpdateColumn("product_count", gorm.Expr("CASE WHEN product_count + ? < 0 THEN 0 ELSE product_count + ? END", delta, delta)).Error
}
