package categories

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

// Service exposes merchant category management operations.
type Service interface {
	List(ctx context.Context, merchantID uuid.UUID) ([]CategoryDTO, error)
	Save(ctx context.Context, merchantID uuid.UUID, input SaveCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, merchantID, categoryID uuid.UUID) error
}

type storeResolver interface {
	Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error)
}

type categoryRepository interface {
	List(ctx context.Context, scope types.Scope) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     categoryRepository
	resolver storeResolver
}

// NewService constructs a category service.
func NewService(repo categoryRepository, resolver storeResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("store resolver is required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

// List returns the merchant's categories. Before onboarding the scope
// falls back to the merchant ID so legacy rows keep showing up.
func (s *service) List(ctx context.Context, merchantID uuid.UUID) ([]CategoryDTO, error) {
	scope, err := s.listScope(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return FromModels(items), nil
}

// Save creates or updates a category under the merchant's store. Writes
// require a completed onboarding.
func (s *service) Save(ctx context.Context, merchantID uuid.UUID, input SaveCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Description != nil {
		trimmed := types.TruncateRunes(*input.Description, types.MaxDescriptionRunes)
		input.Description = &trimmed
	}

	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if input.ID == nil {
		category := &models.Category{
			ID:          uuid.New(),
			StoreID:     storeID,
			Name:        name,
			Description: input.Description,
			ImageURL:    input.ImageURL,
		}
		created, err := s.repo.Create(ctx, category)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert category")
		}
		return FromModel(created), nil
	}

	existing, err := s.ownedCategory(ctx, storeID, *input.ID)
	if err != nil {
		return nil, err
	}
	existing.Name = name
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.ImageURL != nil {
		existing.ImageURL = input.ImageURL
	}
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update category")
	}
	return FromModel(updated), nil
}

// Delete removes a category after verifying the merchant's store owns it.
// Products keep their category_id; the reference simply stops resolving.
func (s *service) Delete(ctx context.Context, merchantID, categoryID uuid.UUID) error {
	storeID, err := s.requireStore(ctx, merchantID)
	if err != nil {
		return err
	}
	if _, err := s.ownedCategory(ctx, storeID, categoryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	return nil
}

func (s *service) listScope(ctx context.Context, merchantID uuid.UUID) (types.Scope, error) {
	storeID, found, err := s.resolver.Resolve(ctx, merchantID)
	if err != nil {
		return types.Scope{}, err
	}
	if !found {
		return types.ByMerchant(merchantID), nil
	}
	return types.ByStore(storeID), nil
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

func (s *service) ownedCategory(ctx context.Context, storeID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load category")
	}
	if category.StoreID != storeID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return category, nil
}
