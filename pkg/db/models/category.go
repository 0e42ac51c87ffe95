package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups a store's products. StoreID holds the owning store's
// identifier; product_count is maintained by the products service.
type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Description  *string   `gorm:"column:description"`
	ImageURL     *string   `gorm:"column:image_url"`
	ProductCount int       `gorm:"column:product_count;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
