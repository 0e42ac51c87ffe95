package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
)

// Repository exposes merchant-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an accounts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new merchant and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateMerchantDTO) (*models.Merchant, error) {
	merchant := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(merchant).Error; err != nil {
		return nil, err
	}
	return merchant, nil
}

// FindByEmail retrieves the merchant matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// FindByID loads a merchant by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	if err := r.db.WithContext(ctx).First(&merchant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}

// UpdateLastLogin refreshes the merchant's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdateDetails applies a partial column update to the merchant row.
func (r *Repository) UpdateDetails(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}

// UpdatePassword replaces the merchant's password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", passwordHash).Error
}
