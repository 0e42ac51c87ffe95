package categories

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

type stubResolver struct {
	storeID uuid.UUID
	found   bool
	err     error
}

func (s stubResolver) Resolve(_ context.Context, _ uuid.UUID) (uuid.UUID, bool, error) {
	return s.storeID, s.found, s.err
}

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:categories_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS store_profiles (
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL UNIQUE,
  store_name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  product_count INTEGER NOT NULL DEFAULT 0,
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

func TestSaveCategoryRequiresOnboarding(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))
	svc, err := NewService(repo, stubResolver{found: false})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), uuid.New(), SaveCategoryInput{Name: "Drinks"})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodePrecondition, typed.Code())
}

func TestSaveCategoryStampsStoreID(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))
	storeID := uuid.New()
	svc, err := NewService(repo, stubResolver{storeID: storeID, found: true})
	require.NoError(t, err)

	created, err := svc.Save(context.Background(), uuid.New(), SaveCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	assert.Equal(t, storeID, created.StoreID)
	assert.Equal(t, 0, created.ProductCount)
}

func TestListFallsBackToMerchantScope(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	merchantID := uuid.New()

	// A row written before onboarding carries the merchant ID in store_id.
	legacy := &models.Category{ID: uuid.New(), StoreID: merchantID, Name: "Legacy"}
	_, err := repo.Create(context.Background(), legacy)
	require.NoError(t, err)

	svc, err := NewService(repo, stubResolver{found: false})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), merchantID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Legacy", items[0].Name)
}

func TestListUsesStoreScopeAfterOnboarding(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()
	other := uuid.New()

	_, err := repo.Create(context.Background(), &models.Category{ID: uuid.New(), StoreID: storeID, Name: "Mine"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &models.Category{ID: uuid.New(), StoreID: other, Name: "Theirs"})
	require.NoError(t, err)

	svc, err := NewService(repo, stubResolver{storeID: storeID, found: true})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mine", items[0].Name)
}

func TestDeleteVerifiesOwnership(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()

	foreign := &models.Category{ID: uuid.New(), StoreID: uuid.New(), Name: "Foreign"}
	_, err := repo.Create(context.Background(), foreign)
	require.NoError(t, err)

	svc, err := NewService(repo, stubResolver{storeID: storeID, found: true})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New(), foreign.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// Row survives.
	remaining, err := repo.List(context.Background(), types.ByStore(foreign.StoreID))
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestAdjustProductCountClampsAtZero(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := &models.Category{ID: uuid.New(), StoreID: uuid.New(), Name: "Snacks"}
	_, err := repo.Create(ctx, category)
	require.NoError(t, err)

	require.NoError(t, repo.AdjustProductCountWithTx(db, category.ID, 2))
	require.NoError(t, repo.AdjustProductCountWithTx(db, category.ID, -5))

	reloaded, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ProductCount)
}

func TestListByMerchantScopeResolvesThroughProfile(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	merchantID := uuid.New()
	storeID := uuid.New()
	require.NoError(t, db.Exec(
		"INSERT INTO store_profiles (id, merchant_id, store_name) VALUES (?, ?, ?)",
		storeID.String(), merchantID.String(), "Corner Shop",
	).Error)

	_, err := repo.Create(ctx, &models.Category{ID: uuid.New(), StoreID: storeID, Name: "Drinks"})
	require.NoError(t, err)

	viaMerchant, err := repo.List(ctx, types.ByMerchant(merchantID))
	require.NoError(t, err)
	assert.Len(t, viaMerchant, 1)

	other, err := repo.List(ctx, types.ByMerchant(uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListRejectsZeroScope(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))

	_, err := repo.List(context.Background(), types.Scope{})
	require.Error(t, err)
}
