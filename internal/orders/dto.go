package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
)

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID            uuid.UUID         `json:"id"`
	StoreID       uuid.UUID         `json:"store_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail *string           `json:"customer_email,omitempty"`
	Status        enums.OrderStatus `json:"status"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Notes         *string           `json:"notes,omitempty"`
	OrderedAt     time.Time         `json:"ordered_at"`
	Items         []LineItemDTO     `json:"items"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// LineItemDTO is the order line payload returned to clients.
type LineItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderInput holds the validated payload to record a new order.
type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail *string
	Notes         *string
	OrderedAt     *time.Time
	Items         []LineItemInput
}

// LineItemInput is one ordered product line.
type LineItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// FromModel builds a DTO from the persisted order.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]LineItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, LineItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return &OrderDTO{
		ID:            o.ID,
		StoreID:       o.StoreID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		Notes:         o.Notes,
		OrderedAt:     o.OrderedAt,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// FromModels maps a list of persisted orders.
func FromModels(items []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
