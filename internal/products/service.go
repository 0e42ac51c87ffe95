package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/types"
)

const onboardingRequiredMessage = "create a store profile before managing catalog data"

// Service exposes merchant product management operations.
type Service interface {
	List(ctx context.Context, merchantID uuid.UUID) ([]ProductDTO, error)
	Save(ctx context.Context, merchantID uuid.UUID, input SaveProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, merchantID, productID uuid.UUID) error
}

type storeResolver interface {
	Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error)
}

type productRepository interface {
	List(ctx context.Context, scope types.Scope) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateWithTx(tx *gorm.DB, product *models.Product) (*models.Product, error)
	UpdateWithTx(tx *gorm.DB, product *models.Product) (*models.Product, error)
	DeleteWithTx(tx *gorm.DB, id uuid.UUID) error
}

type categoryCounter interface {
	AdjustProductCountWithTx(tx *gorm.DB, id uuid.UUID, delta int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx         txRunner
	repo       productRepository
	resolver   storeResolver
	categories categoryCounter
}

// NewService constructs a product service. Writes that also move a
// category's product_count run inside tx so the pair commits together.
func NewService(tx txRunner, repo productRepository, resolver storeResolver, categories categoryCounter) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("store resolver is required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category counter is required")
	}
	return &service{tx: tx, repo: repo, resolver: resolver, categories: categories}, nil
}

// List returns the merchant's products, falling back to the merchant
// scope before onboarding.
func (s *service) List(ctx context.Context, merchantID uuid.UUID) ([]ProductDTO, error) {
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return FromModels(items), nil
}

// Save creates or updates a product under the merchant's store and keeps
// the owning category's product_count in step.
func (s *service) Save(ctx context.Context, merchantID uuid.UUID, input SaveProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Description != nil {
		trimmed := types.TruncateRunes(*input.Description, types.MaxDescriptionRunes)
		input.Description = &trimmed
	}

	storeID, found, err := s.resolver.Resolve(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, onboardingRequiredMessage)
	}

	if input.ID == nil {
		return s.create(ctx, storeID, name, input)
	}
	return s.update(ctx, storeID, *input.ID, name, input)
}

func (s *service) create(ctx context.Context, storeID uuid.UUID, name string, input SaveProductInput) (*ProductDTO, error) {
	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	product := &models.Product{
		ID:          uuid.New(),
		StoreID:     storeID,
		CategoryID:  input.CategoryID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: isAvailable,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.CreateWithTx(tx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		if product.CategoryID != nil {
			if err := s.categories.AdjustProductCountWithTx(tx, *product.CategoryID, 1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: bump product count")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(product), nil
}

func (s *service) update(ctx context.Context, storeID, productID uuid.UUID, name string, input SaveProductInput) (*ProductDTO, error) {
	existing, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	previousCategory := existing.CategoryID
	existing.Name = name
	existing.Price = input.Price
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.ImageURL != nil {
		existing.ImageURL = input.ImageURL
	}
	if input.IsAvailable != nil {
		existing.IsAvailable = *input.IsAvailable
	}
	if input.CategoryID != nil {
		existing.CategoryID = input.CategoryID
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.UpdateWithTx(tx, existing); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		return s.shiftCategoryCounts(tx, previousCategory, existing.CategoryID)
	})
	if err != nil {
		return nil, err
	}
	return FromModel(existing), nil
}

// Delete removes a product after verifying the merchant's store owns it.
func (s *service) Delete(ctx context.Context, merchantID, productID uuid.UUID) error {
	storeID, found, err := s.resolver.Resolve(ctx, merchantID)
	if err != nil {
		return err
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodePrecondition, onboardingRequiredMessage)
	}

	product, err := s.ownedProduct(ctx, storeID, productID)
	if err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteWithTx(tx, productID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		if product.CategoryID != nil {
			if err := s.categories.AdjustProductCountWithTx(tx, *product.CategoryID, -1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: drop product count")
			}
		}
		return nil
	})
}

func (s *service) shiftCategoryCounts(tx *gorm.DB, previous, next *uuid.UUID) error {
	same := previous != nil && next != nil && *previous == *next
	if same {
		return nil
	}
	if previous != nil {
		if err := s.categories.AdjustProductCountWithTx(tx, *previous, -1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: drop product count")
		}
	}
	if next != nil {
		if err := s.categories.AdjustProductCountWithTx(tx, *next, 1); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: bump product count")
		}
	}
	return nil
}

func (s *service) ownedProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if product.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}
