package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreProfile is the tenant record for a merchant's storefront. The
// unique index on merchant_id enforces the one-store-per-merchant rule at
// the database layer, so concurrent first-time saves collapse to one row.
type StoreProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID    uuid.UUID `gorm:"column:merchant_id;type:uuid;not null;uniqueIndex"`
	StoreName     string    `gorm:"column:store_name;not null"`
	Description   *string   `gorm:"column:description"`
	Address       *string   `gorm:"column:address"`
	ContactNumber *string   `gorm:"column:contact_number"`
	StoreType     *string   `gorm:"column:store_type"`
	LogoURL       *string   `gorm:"column:logo_url"`
	StoreOpen     bool      `gorm:"column:store_open;not null;default:true"`
	AutoSchedule  bool      `gorm:"column:auto_schedule;not null;default:false"`
	OpeningTime   *string   `gorm:"column:opening_time"`
	ClosingTime   *string   `gorm:"column:closing_time"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
