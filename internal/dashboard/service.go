package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ayoolabs/storefront-backend/internal/categories"
	"github.com/ayoolabs/storefront-backend/internal/orders"
	"github.com/ayoolabs/storefront-backend/internal/products"
	"github.com/ayoolabs/storefront-backend/internal/stores"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
)

// DashboardDTO is the aggregated payload behind the admin landing page.
type DashboardDTO struct {
	Profile       *stores.StoreProfileDTO  `json:"profile"`
	Categories    []categories.CategoryDTO `json:"categories"`
	Products      []products.ProductDTO    `json:"products"`
	Orders        []orders.OrderDTO        `json:"orders"`
	PendingOrders int                      `json:"pending_orders"`
}

// Service aggregates the per-domain lists in one round trip.
type Service interface {
	Load(ctx context.Context, merchantID uuid.UUID) (*DashboardDTO, error)
}

type service struct {
	profiles   stores.Service
	categories categories.Service
	products   products.Service
	orders     orders.Service
}

// NewService constructs a dashboard service over the domain services.
func NewService(profiles stores.Service, cats categories.Service, prods products.Service, ords orders.Service) (Service, error) {
	if profiles == nil || cats == nil || prods == nil || ords == nil {
		return nil, fmt.Errorf("all domain services are required")
	}
	return &service{profiles: profiles, categories: cats, products: prods, orders: ords}, nil
}

// Load fans out the four reads concurrently. Any failure aborts the
// whole aggregate; a partially loaded dashboard is worse than an error.
func (s *service) Load(ctx context.Context, merchantID uuid.UUID) (*DashboardDTO, error) {
	var out DashboardDTO

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.profiles.GetProfile(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Profile = profile
		return nil
	})
	g.Go(func() error {
		items, err := s.categories.List(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Categories = items
		return nil
	})
	g.Go(func() error {
		items, err := s.products.List(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Products = items
		return nil
	})
	g.Go(func() error {
		items, err := s.orders.List(gctx, merchantID)
		if err != nil {
			return err
		}
		out.Orders = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range out.Orders {
		if o.Status == enums.OrderStatusPending {
			out.PendingOrders++
		}
	}
	return &out, nil
}
