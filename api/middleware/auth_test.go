package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/ayoolabs/storefront-backend/pkg/auth"
	"github.com/ayoolabs/storefront-backend/pkg/config"
)

type stubChecker struct {
	ok  bool
	err error
}

func (s stubChecker) HasSession(context.Context, string) (bool, error) {
	return s.ok, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "storefront-api", ExpirationMinutes: 5}
}

func mintToken(t *testing.T, cfg config.JWTConfig) (string, uuid.UUID) {
	t.Helper()
	merchantID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		MerchantID: merchantID,
		Email:      "m@x.com",
		JTI:        "jti-1",
	})
	require.NoError(t, err)
	return token, merchantID
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWTConfig(), stubChecker{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsDeadSession(t *testing.T) {
	cfg := testJWTConfig()
	token, _ := mintToken(t, cfg)

	handler := Auth(cfg, stubChecker{ok: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := testJWTConfig()
	token, merchantID := mintToken(t, cfg)

	var gotMerchant, gotAccess string
	handler := Auth(cfg, stubChecker{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMerchant = MerchantIDFromContext(r.Context())
		gotAccess = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, merchantID.String(), gotMerchant)
	assert.Equal(t, "jti-1", gotAccess)
}
