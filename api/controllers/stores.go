package controllers

import (
	"net/http"

	"github.com/ayoolabs/storefront-backend/api/responses"
	"github.com/ayoolabs/storefront-backend/api/validators"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
)

type profileSaveRequest struct {
	StoreName     string  `json:"store_name" validate:"required,min=1"`
	Description   *string `json:"description,omitempty"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	StoreType     *string `json:"store_type,omitempty"`
	LogoURL       *string `json:"logo_url,omitempty"`
	StoreOpen     *bool   `json:"store_open,omitempty"`
	AutoSchedule  *bool   `json:"auto_schedule,omitempty"`
	OpeningTime   *string `json:"opening_time,omitempty"`
	ClosingTime   *string `json:"closing_time,omitempty"`
}

func (r profileSaveRequest) toInput() stores.SaveProfileInput {
	return stores.SaveProfileInput{
		StoreName:     validators.SanitizeString(r.StoreName, 120),
		Description:   r.Description,
		Address:       r.Address,
		ContactNumber: r.ContactNumber,
		StoreType:     r.StoreType,
		LogoURL:       r.LogoURL,
		StoreOpen:     r.StoreOpen,
		AutoSchedule:  r.AutoSchedule,
		OpeningTime:   r.OpeningTime,
		ClosingTime:   r.ClosingTime,
	}
}

// StoreProfileGet returns the merchant's store profile. A merchant who
// has not onboarded yet gets a null payload rather than an error.
func StoreProfileGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// StoreProfileSave creates the profile on first call and updates it after.
func StoreProfileSave(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profileSaveRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.SaveProfile(r.Context(), merchantID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
