package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayoolabs/storefront-backend/pkg/enums"
)

// Order is a customer order placed against a store.
type Order struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID       uuid.UUID         `gorm:"column:store_id;type:uuid;not null;index"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerEmail *string           `gorm:"column:customer_email"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'Pending'"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Notes         *string           `gorm:"column:notes"`
	OrderedAt     time.Time         `gorm:"column:ordered_at;not null"`
	Items         []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
