package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoolabs/storefront-backend/internal/categories"
	"github.com/ayoolabs/storefront-backend/internal/orders"
	"github.com/ayoolabs/storefront-backend/internal/products"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
)

type stubProfiles struct {
	profile *stores.StoreProfileDTO
	err     error
}

func (s stubProfiles) GetProfile(context.Context, uuid.UUID) (*stores.StoreProfileDTO, error) {
	return s.profile, s.err
}

func (s stubProfiles) SaveProfile(context.Context, uuid.UUID, stores.SaveProfileInput) (*stores.StoreProfileDTO, error) {
	return nil, errors.New("not implemented")
}

type stubCategories struct {
	items []categories.CategoryDTO
	err   error
}

func (s stubCategories) List(context.Context, uuid.UUID) ([]categories.CategoryDTO, error) {
	return s.items, s.err
}

func (s stubCategories) Save(context.Context, uuid.UUID, categories.SaveCategoryInput) (*categories.CategoryDTO, error) {
	return nil, errors.New("not implemented")
}

func (s stubCategories) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("not implemented")
}

type stubProducts struct {
	items []products.ProductDTO
	err   error
}

func (s stubProducts) List(context.Context, uuid.UUID) ([]products.ProductDTO, error) {
	return s.items, s.err
}

func (s stubProducts) Save(context.Context, uuid.UUID, products.SaveProductInput) (*products.ProductDTO, error) {
	return nil, errors.New("not implemented")
}

func (s stubProducts) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("not implemented")
}

type stubOrders struct {
	items []orders.OrderDTO
	err   error
}

func (s stubOrders) List(context.Context, uuid.UUID) ([]orders.OrderDTO, error) {
	return s.items, s.err
}

func (s stubOrders) Get(context.Context, uuid.UUID, uuid.UUID) (*orders.OrderDTO, error) {
	return nil, errors.New("not implemented")
}

func (s stubOrders) Create(context.Context, uuid.UUID, orders.CreateOrderInput) (*orders.OrderDTO, error) {
	return nil, errors.New("not implemented")
}

func (s stubOrders) UpdateStatus(context.Context, uuid.UUID, uuid.UUID, enums.OrderStatus) (*orders.OrderDTO, error) {
	return nil, errors.New("not implemented")
}

func (s stubOrders) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("not implemented")
}

func TestLoadAggregatesAllSections(t *testing.T) {
	svc, err := NewService(
		stubProfiles{profile: &stores.StoreProfileDTO{StoreName: "Corner Shop"}},
		stubCategories{items: []categories.CategoryDTO{{Name: "Drinks"}}},
		stubProducts{items: []products.ProductDTO{{Name: "Cola"}}},
		stubOrders{items: []orders.OrderDTO{
			{Status: enums.OrderStatusPending},
			{Status: enums.OrderStatusShipped},
			{Status: enums.OrderStatusPending},
		}},
	)
	require.NoError(t, err)

	out, err := svc.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, out.Profile)
	assert.Len(t, out.Categories, 1)
	assert.Len(t, out.Products, 1)
	assert.Len(t, out.Orders, 3)
	assert.Equal(t, 2, out.PendingOrders)
}

func TestLoadFailsWhenAnySectionFails(t *testing.T) {
	boom := errors.New("db down")
	svc, err := NewService(
		stubProfiles{},
		stubCategories{err: boom},
		stubProducts{},
		stubOrders{},
	)
	require.NoError(t, err)

	_, err = svc.Load(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestLoadAllowsMissingProfile(t *testing.T) {
	svc, err := NewService(stubProfiles{}, stubCategories{}, stubProducts{}, stubOrders{})
	require.NoError(t, err)

	out, err := svc.Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, out.Profile)
	assert.Empty(t, out.Orders)
}
