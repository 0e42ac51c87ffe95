package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/internal/accounts"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	"github.com/ayoolabs/storefront-backend/pkg/auth/session"
	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
)

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:auth_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS merchants (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL DEFAULT '',
  contact_number TEXT,
  avatar_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS store_profiles (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL UNIQUE,
  store_name TEXT NOT NULL,
  description TEXT,
  address TEXT,
  contact_number TEXT,
  store_type TEXT,
  logo_url TEXT,
  store_open INTEGER NOT NULL DEFAULT 1,
  auto_schedule INTEGER NOT NULL DEFAULT 0,
  opening_time TEXT,
  closing_time TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func newAuthService(t *testing.T) (Service, stores.Service) {
	t.Helper()
	db := setupAuthTestDB(t)

	storeRepo := stores.NewRepository(db)
	resolver, err := stores.NewResolver(storeRepo)
	require.NoError(t, err)
	storeSvc, err := stores.NewService(storeRepo)
	require.NoError(t, err)

	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "storefront-api",
		ExpirationMinutes:      5,
		RefreshTokenTTLMinutes: 60,
	}
	manager, err := session.NewManager(session.NewMemoryStore(), jwtCfg)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Merchants:      accounts.NewRepository(db),
		Resolver:       resolver,
		SessionManager: manager,
		JWTConfig:      jwtCfg,
		PasswordConfig: config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
	})
	require.NoError(t, err)
	return svc, storeSvc
}

func TestRegisterIssuesSession(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Ayo",
		Email:     "Ayo@Corner.Shop",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.False(t, resp.Onboarded)
	require.NotNil(t, resp.Merchant)
	assert.Equal(t, "ayo@corner.shop", resp.Merchant.Email)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "A", Email: "dup@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{FirstName: "B", Email: "DUP@x.com", Password: "s3cret-pass"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

// racingMerchantRepo simulates losing a registration race: the email
// check misses but the insert trips the unique index.
type racingMerchantRepo struct{}

func (racingMerchantRepo) Create(context.Context, accounts.CreateMerchantDTO) (*models.Merchant, error) {
	return nil, errors.New("UNIQUE constraint failed: merchants.email")
}

func (racingMerchantRepo) FindByEmail(context.Context, string) (*models.Merchant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingMerchantRepo) FindByID(context.Context, uuid.UUID) (*models.Merchant, error) {
	return nil, gorm.ErrRecordNotFound
}

func (racingMerchantRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error {
	return nil
}

func TestRegisterMapsRacingDuplicateToConflict(t *testing.T) {
	db := setupAuthTestDB(t)
	resolver, err := stores.NewResolver(stores.NewRepository(db))
	require.NoError(t, err)

	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "storefront-api",
		ExpirationMinutes:      5,
		RefreshTokenTTLMinutes: 60,
	}
	manager, err := session.NewManager(session.NewMemoryStore(), jwtCfg)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Merchants:      racingMerchantRepo{},
		Resolver:       resolver,
		SessionManager: manager,
		JWTConfig:      jwtCfg,
		PasswordConfig: config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{FirstName: "A", Email: "dup@x.com", Password: "s3cret-pass"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestLoginVerifiesPasswordAndReportsOnboarding(t *testing.T) {
	svc, storeSvc := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{FirstName: "A", Email: "login@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "login@x.com", Password: "wrong-password"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	_, err = storeSvc.SaveProfile(ctx, reg.Merchant.ID, stores.SaveProfileInput{StoreName: "Corner Shop"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "login@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.True(t, resp.Onboarded)
	require.NotNil(t, resp.Merchant.LastLoginAt)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterRequest{FirstName: "A", Email: "r@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{AccessToken: reg.AccessToken, RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old pair is now dead.
	_, err = svc.Refresh(ctx, RefreshRequest{AccessToken: reg.AccessToken, RefreshToken: reg.RefreshToken})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestPasswordResetDoesNotRevealAccounts(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{FirstName: "A", Email: "known@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, PasswordResetRequest{Email: "known@x.com"}))
	require.NoError(t, svc.RequestPasswordReset(ctx, PasswordResetRequest{Email: "unknown@x.com"}))
}
