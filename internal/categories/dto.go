package categories

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
)

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID           uuid.UUID `json:"id"`
	StoreID      uuid.UUID `json:"store_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveCategoryInput holds the validated payload to create or update a
// category. A nil ID means create.
type SaveCategoryInput struct {
	ID          *uuid.UUID
	Name        string
	Description *string
	ImageURL    *string
}

// FromModel builds a DTO from the persisted category.
func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:           c.ID,
		StoreID:      c.StoreID,
		Name:         c.Name,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromModels maps a list of persisted categories.
func FromModels(items []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
