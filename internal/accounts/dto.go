package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
)

// MerchantDTO is the transport shape that omits sensitive credentials.
type MerchantDTO struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	DisplayName   string     `json:"display_name"`
	ContactNumber *string    `json:"contact_number,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateMerchantDTO holds the data required by the repo to persist a new merchant.
type CreateMerchantDTO struct {
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	ContactNumber *string
}

func FromModel(m *models.Merchant) *MerchantDTO {
	if m == nil {
		return nil
	}

	return &MerchantDTO{
		ID:            m.ID,
		Email:         m.Email,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		DisplayName:   m.DisplayName(),
		ContactNumber: m.ContactNumber,
		AvatarURL:     m.AvatarURL,
		IsActive:      m.IsActive,
		LastLoginAt:   m.LastLoginAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (c CreateMerchantDTO) ToModel() *models.Merchant {
	return &models.Merchant{
		ID:            uuid.New(),
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		ContactNumber: c.ContactNumber,
		IsActive:      true,
	}
}
