package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
)

// Repository exposes store profile persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stores repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByMerchant loads the profile owned by the merchant. Callers decide
// whether gorm.ErrRecordNotFound means absence or failure.
func (r *Repository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*models.StoreProfile, error) {
	var profile models.StoreProfile
	if err := r.db.WithContext(ctx).Where("merchant_id = ?", merchantID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateIfAbsent inserts the profile unless the merchant already owns one.
// The unique index on merchant_id makes concurrent first saves converge on
// a single row; the return value reports whether this call inserted it.
func (r *Repository) CreateIfAbsent(ctx context.Context, profile *models.StoreProfile) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "merchant_id"}},
			DoNothing: true,
		}).
		Create(profile)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Update persists the mutable fields of an existing profile.
func (r *Repository) Update(ctx context.Context, profile *models.StoreProfile) (*models.StoreProfile, error) {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
