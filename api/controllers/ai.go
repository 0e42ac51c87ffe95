package controllers

import (
	"net/http"

	"github.com/ayoolabs/storefront-backend/api/responses"
	"github.com/ayoolabs/storefront-backend/api/validators"
	"github.com/ayoolabs/storefront-backend/internal/ai"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/logger"
)

type suggestCategoriesRequest struct {
	StoreName string `json:"store_name" validate:"required,min=1"`
	StoreType string `json:"store_type"`
}

type generateDescriptionRequest struct {
	ProductName string   `json:"product_name" validate:"required,min=1"`
	Keywords    []string `json:"keywords,omitempty"`
}

type storeInsightsRequest struct {
	StoreName     string `json:"store_name" validate:"required,min=1"`
	PendingOrders int    `json:"pending_orders" validate:"min=0"`
	ProductCount  int    `json:"product_count" validate:"min=0"`
}

// AISuggestCategories proposes category names for a store. Falls back
// to a static list when no model is configured.
func AISuggestCategories(svc ai.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "suggestion service unavailable"))
			return
		}

		var body suggestCategoriesRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeName := validators.SanitizeString(body.StoreName, 120)
		storeType := validators.SanitizeString(body.StoreType, 64)
		suggestions := svc.SuggestCategories(r.Context(), storeName, storeType)
		responses.WriteSuccess(w, map[string]any{"suggestions": suggestions})
	}
}

// AIGenerateDescription drafts marketing copy for a product.
func AIGenerateDescription(svc ai.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "suggestion service unavailable"))
			return
		}

		var body generateDescriptionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		description := svc.GenerateProductDescription(r.Context(), validators.SanitizeString(body.ProductName, 120), body.Keywords)
		responses.WriteSuccess(w, map[string]string{"description": description})
	}
}

// AIStoreInsights writes a short summary of store activity.
func AIStoreInsights(svc ai.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "suggestion service unavailable"))
			return
		}

		var body storeInsightsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		insights := svc.GenerateStoreInsights(r.Context(), validators.SanitizeString(body.StoreName, 120), body.PendingOrders, body.ProductCount)
		responses.WriteSuccess(w, map[string]string{"insights": insights})
	}
}
