package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Merchant represents the canonical identity entity. One merchant account
// owns at most one store profile.
type Merchant struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string     `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string     `gorm:"column:password_hash;not null"`
	FirstName     string     `gorm:"column:first_name;not null"`
	LastName      string     `gorm:"column:last_name"`
	ContactNumber *string    `gorm:"column:contact_number"`
	AvatarURL     *string    `gorm:"column:avatar_url"`
	IsActive      bool       `gorm:"column:is_active;not null;default:true"`
	LastLoginAt   *time.Time `gorm:"column:last_login_at"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayName joins the merchant's name parts, falling back to the email
// local part when no name was captured at registration.
func (m Merchant) DisplayName() string {
	name := strings.TrimSpace(m.FirstName + " " + m.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(m.Email, "@"); at > 0 {
		return m.Email[:at]
	}
	return m.Email
}
