package auth

import (
	"github.com/ayoolabs/storefront-backend/internal/accounts"
)

// RegisterRequest contains the payload required to open a merchant account.
type RegisterRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8"`
	ContactNumber *string `json:"contact_number,omitempty"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the rotation inputs.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PasswordResetRequest asks for a reset email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SessionResponse is returned from login, register, and refresh.
type SessionResponse struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	Merchant     *accounts.MerchantDTO `json:"merchant"`
	Onboarded    bool                  `json:"onboarded"`
}
