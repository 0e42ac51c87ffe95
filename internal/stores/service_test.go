package stores

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
)

func setupStoresTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:stores_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
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
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func newStoresService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupStoresTestDB(t))
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestResolveReturnsAbsenceBeforeOnboarding(t *testing.T) {
	_, repo := newStoresService(t)
	resolver, err := NewResolver(repo)
	require.NoError(t, err)

	storeID, found, err := resolver.Resolve(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, uuid.Nil, storeID)
}

func TestResolveFindsStoreAfterSave(t *testing.T) {
	svc, repo := newStoresService(t)
	resolver, err := NewResolver(repo)
	require.NoError(t, err)
	merchantID := uuid.New()

	saved, err := svc.SaveProfile(context.Background(), merchantID, SaveProfileInput{StoreName: "Corner Shop"})
	require.NoError(t, err)

	storeID, found, err := resolver.Resolve(context.Background(), merchantID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, saved.ID, storeID)
}

func TestGetProfileNilWhenAbsent(t *testing.T) {
	svc, _ := newStoresService(t)

	profile, err := svc.GetProfile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSaveProfileCreatesThenMerges(t *testing.T) {
	svc, _ := newStoresService(t)
	ctx := context.Background()
	merchantID := uuid.New()

	created, err := svc.SaveProfile(ctx, merchantID, SaveProfileInput{StoreName: "First Name"})
	require.NoError(t, err)
	assert.True(t, created.StoreOpen)

	addr := "12 Market Road"
	updated, err := svc.SaveProfile(ctx, merchantID, SaveProfileInput{
		StoreName: "Renamed",
		Address:   &addr,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.StoreName)
	require.NotNil(t, updated.Address)
	assert.Equal(t, addr, *updated.Address)
}

func TestSaveProfileConcurrentFirstSavesConverge(t *testing.T) {
	svc, repo := newStoresService(t)
	ctx := context.Background()
	merchantID := uuid.New()

	// Simulate the losing writer: its insert hits the unique index and is
	// dropped, so it falls through to the merge path.
	winner := &models.StoreProfile{ID: uuid.New(), MerchantID: merchantID, StoreName: "Winner", StoreOpen: true}
	inserted, err := repo.CreateIfAbsent(ctx, winner)
	require.NoError(t, err)
	require.True(t, inserted)

	merged, err := svc.SaveProfile(ctx, merchantID, SaveProfileInput{StoreName: "Loser"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, merged.ID)
	assert.Equal(t, "Loser", merged.StoreName)

	var count int64
	require.NoError(t, repo.db.Model(&models.StoreProfile{}).Where("merchant_id = ?", merchantID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveProfileTruncatesDescription(t *testing.T) {
	svc, _ := newStoresService(t)
	long := strings.Repeat("d", 650)

	saved, err := svc.SaveProfile(context.Background(), uuid.New(), SaveProfileInput{
		StoreName:   "Shop",
		Description: &long,
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Description)
	assert.Equal(t, 500, utf8.RuneCountInString(*saved.Description))
}

func TestSaveProfileRequiresStoreName(t *testing.T) {
	svc, _ := newStoresService(t)

	_, err := svc.SaveProfile(context.Background(), uuid.New(), SaveProfileInput{StoreName: "   "})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
