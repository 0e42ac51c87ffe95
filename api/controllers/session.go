package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/api/responses"
	"github.com/ayoolabs/storefront-backend/api/validators"
	"github.com/ayoolabs/storefront-backend/internal/accounts"
	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
)

type merchantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
}

type onboardingResolver interface {
	Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error)
}

type meResponse struct {
	Merchant  *accounts.MerchantDTO `json:"merchant"`
	Onboarded bool                  `json:"onboarded"`
}

// Me returns the authenticated merchant's account alongside the
// onboarding state the client gates its UI on.
func Me(repo merchantFinder, resolver onboardingResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account repository unavailable"))
			return
		}

		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		merchant, err := repo.FindByID(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "account unavailable"))
			return
		}

		onboarded := false
		if resolver != nil {
			if _, found, err := resolver.Resolve(r.Context(), merchantID); err == nil {
				onboarded = found
			}
		}

		responses.WriteSuccess(w, meResponse{
			Merchant:  accounts.FromModel(merchant),
			Onboarded: onboarded,
		})
	}
}

type meUpdateRequest struct {
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName        *string `json:"last_name,omitempty"`
	ContactNumber   *string `json:"contact_number,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty" validate:"omitempty,min=8"`
}

func (r meUpdateRequest) toInput() accounts.UpdateAccountInput {
	return accounts.UpdateAccountInput{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		ContactNumber:   r.ContactNumber,
		AvatarURL:       r.AvatarURL,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
}

// MeUpdate applies partial account changes, including a verified
// password change.
func MeUpdate(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body meUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		merchant, err := svc.Update(r.Context(), merchantID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, merchant)
	}
}
