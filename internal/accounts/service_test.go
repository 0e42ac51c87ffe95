package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoolabs/storefront-backend/pkg/config"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/security"
)

func fastPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func strPtr(s string) *string { return &s }

func seedMerchant(t *testing.T, repo *Repository, email, password string) *MerchantDTO {
	t.Helper()
	hash, err := security.HashPassword(password, fastPasswordConfig())
	require.NoError(t, err)

	merchant, err := repo.Create(context.Background(), CreateMerchantDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Ayo",
	})
	require.NoError(t, err)
	return FromModel(merchant)
}

func TestUpdateAccountDetails(t *testing.T) {
	repo := NewRepository(setupAccountsTestDB(t))
	svc, err := NewService(repo, fastPasswordConfig())
	require.NoError(t, err)

	merchant := seedMerchant(t, repo, "detail@x.com", "s3cret-pass")

	updated, err := svc.Update(context.Background(), merchant.ID, UpdateAccountInput{
		FirstName:     strPtr("Ayodeji"),
		ContactNumber: strPtr("+2348012345678"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayodeji", updated.FirstName)
	require.NotNil(t, updated.ContactNumber)
	assert.Equal(t, "+2348012345678", *updated.ContactNumber)
}

func TestUpdateAccountRejectsEmptyFirstName(t *testing.T) {
	repo := NewRepository(setupAccountsTestDB(t))
	svc, err := NewService(repo, fastPasswordConfig())
	require.NoError(t, err)

	merchant := seedMerchant(t, repo, "empty@x.com", "s3cret-pass")

	_, err = svc.Update(context.Background(), merchant.ID, UpdateAccountInput{FirstName: strPtr("  ")})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	repo := NewRepository(setupAccountsTestDB(t))
	svc, err := NewService(repo, fastPasswordConfig())
	require.NoError(t, err)

	merchant := seedMerchant(t, repo, "pw@x.com", "s3cret-pass")

	_, err = svc.Update(context.Background(), merchant.ID, UpdateAccountInput{NewPassword: strPtr("brand-new-pass")})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Update(context.Background(), merchant.ID, UpdateAccountInput{
		CurrentPassword: strPtr("wrong-pass"),
		NewPassword:     strPtr("brand-new-pass"),
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestChangePasswordRotatesHash(t *testing.T) {
	repo := NewRepository(setupAccountsTestDB(t))
	svc, err := NewService(repo, fastPasswordConfig())
	require.NoError(t, err)

	merchant := seedMerchant(t, repo, "rotate@x.com", "s3cret-pass")

	_, err = svc.Update(context.Background(), merchant.ID, UpdateAccountInput{
		CurrentPassword: strPtr("s3cret-pass"),
		NewPassword:     strPtr("brand-new-pass"),
	})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), merchant.ID)
	require.NoError(t, err)

	ok, err := security.VerifyPassword("brand-new-pass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = security.VerifyPassword("s3cret-pass", stored.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok)
}
