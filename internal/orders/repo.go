package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the orders owned by the scope, most recent first. The
// merchant-scoped variant resolves ownership through the store profile.
func (r *Repository) List(ctx context.Context, scope types.Scope) ([]models.Order, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Preload("Items")
	if scope.IsStore() {
		q = q.Where("store_id = ?", scope.ID)
	} else {
		q = q.Where("store_id IN (SELECT id FROM store_profiles WHERE merchant_id = ?)", scope.ID)
	}
	var items []models.Order
	if err := q.Order("ordered_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads an order with its line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// Create inserts a new order together with its line items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves the order to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// Delete removes the order; line items cascade at the database layer. The
// sqlite test schema mirrors the cascade with an explicit delete.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.OrderLineItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id).Error
}
