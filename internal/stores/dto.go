package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
)

// StoreProfileDTO is the storefront profile payload returned to clients.
type StoreProfileDTO struct {
	ID            uuid.UUID `json:"id"`
	MerchantID    uuid.UUID `json:"merchant_id"`
	StoreName     string    `json:"store_name"`
	Description   *string   `json:"description,omitempty"`
	Address       *string   `json:"address,omitempty"`
	ContactNumber *string   `json:"contact_number,omitempty"`
	StoreType     *string   `json:"store_type,omitempty"`
	LogoURL       *string   `json:"logo_url,omitempty"`
	StoreOpen     bool      `json:"store_open"`
	AutoSchedule  bool      `json:"auto_schedule"`
	OpeningTime   *string   `json:"opening_time,omitempty"`
	ClosingTime   *string   `json:"closing_time,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SaveProfileInput holds the validated payload to create or update the
// merchant's store profile. Nil pointers leave the stored value untouched
// on update.
type SaveProfileInput struct {
	StoreName     string
	Description   *string
	Address       *string
	ContactNumber *string
	StoreType     *string
	LogoURL       *string
	StoreOpen     *bool
	AutoSchedule  *bool
	OpeningTime   *string
	ClosingTime   *string
}

// FromModel builds a DTO from the persisted profile.
func FromModel(p *models.StoreProfile) *StoreProfileDTO {
	if p == nil {
		return nil
	}
	return &StoreProfileDTO{
		ID:            p.ID,
		MerchantID:    p.MerchantID,
		StoreName:     p.StoreName,
		Description:   p.Description,
		Address:       p.Address,
		ContactNumber: p.ContactNumber,
		StoreType:     p.StoreType,
		LogoURL:       p.LogoURL,
		StoreOpen:     p.StoreOpen,
		AutoSchedule:  p.AutoSchedule,
		OpeningTime:   p.OpeningTime,
		ClosingTime:   p.ClosingTime,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
