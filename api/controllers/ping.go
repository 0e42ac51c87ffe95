package controllers

import (
	"net/http"

	"github.com/ayoolabs/storefront-backend/api/middleware"
	"github.com/ayoolabs/storefront-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "private", "status": "ok"}
		if merchant := middleware.MerchantIDFromContext(r.Context()); merchant != "" {
			payload["merchant_id"] = merchant
		}
		responses.WriteSuccess(w, payload)
	}
}
