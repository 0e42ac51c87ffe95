package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

const onboardingRequiredMessage = "create a store profile before managing orders"

// Service exposes merchant order management operations.
type Service interface {
	List(ctx context.Context, merchantID uuid.UUID) ([]OrderDTO, error)
	Get(ctx context.Context, merchantID, orderID uuid.UUID) (*OrderDTO, error)
	Create(ctx context.Context, merchantID uuid.UUID, input CreateOrderInput) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, merchantID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	Delete(ctx context.Context, merchantID, orderID uuid.UUID) error
}

type storeResolver interface {
	Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error)
}

type orderRepository interface {
	List(ctx context.Context, scope types.Scope) ([]models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     orderRepository
	resolver storeResolver
	now      func() time.Time
}

// NewService constructs an order service.
func NewService(repo orderRepository, resolver storeResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("store resolver is required")
	}
	return &service{repo: repo, resolver: resolver, now: time.Now}, nil
}

// List returns the merchant's orders, falling back to the merchant scope
// before onboarding.
func (s *service) List(ctx context.Context, merchantID uuid.UUID) ([]OrderDTO, error) {
	storeID, found, err := s.resolver.Resolve(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	scope := types.ByMerchant(merchantID)
	if found {
		scope = types.ByStore(storeID)
	}
	items, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return FromModels(items), nil
}

// Get loads one order owned by the merchant's store.
func (s *service) Get(ctx context.Context, merchantID, orderID uuid.UUID) (*OrderDTO, error) {
	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	order, err := s.ownedOrder(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

// Create records a new order against the merchant's store. The total is
// derived from the line items.
func (s *service) Create(ctx context.Context, merchantID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one line item is required")
	}

	total := decimal.Zero
	lineItems := make([]models.OrderLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		productName := strings.TrimSpace(item.ProductName)
		if productName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item product_name is required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item unit_price cannot be negative")
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lineItems = append(lineItems, models.OrderLineItem{
			ID:          uuid.New(),
			ProductID:   item.ProductID,
			ProductName: productName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	orderedAt := s.now().UTC()
	if input.OrderedAt != nil {
		orderedAt = *input.OrderedAt
	}

	order := &models.Order{
		ID:            uuid.New(),
		StoreID:       storeID,
		CustomerName:  customer,
		CustomerEmail: input.CustomerEmail,
		Status:        enums.OrderStatusPending,
		TotalAmount:   total,
		Notes:         input.Notes,
		OrderedAt:     orderedAt,
		Items:         lineItems,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
	}
	return FromModel(created), nil
}

// UpdateStatus moves an owned order to a new status.
func (s *service) UpdateStatus(ctx context.Context, merchantID, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	order, err := s.ownedOrder(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	order.Status = status
	return FromModel(order), nil
}

// Delete removes an owned order and its line items.
func (s *service) Delete(ctx context.Context, merchantID, orderID uuid.UUID) error {
	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return err
	}
	if _, err := s.ownedOrder(ctx, storeID, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete order")
	}
	return nil
}

func (s *service) requireStore(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, error) {
	storeID, found, err := s.resolver.Resolve(ctx, merchantID)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodePrecondition, onboardingRequiredMessage)
	}
	return storeID, nil
}

func (s *service) ownedOrder(ctx context.Context, storeID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
	}
	if order.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}
