package controllers

import (
	"net/http"

	"github.com/ayoolabs/storefront-backend/api/responses"
	"github.com/ayoolabs/storefront-backend/internal/dashboard"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
)

// Dashboard aggregates the merchant's profile, catalog and orders into
// a single payload for the home screen.
func Dashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Load(r.Context(), merchantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
