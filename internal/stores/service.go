package stores

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

// Service exposes store profile management operations.
type Service interface {
	GetProfile(ctx context.Context, merchantID uuid.UUID) (*StoreProfileDTO, error)
	SaveProfile(ctx context.Context, merchantID uuid.UUID, input SaveProfileInput) (*StoreProfileDTO, error)
}

type profileRepository interface {
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*models.StoreProfile, error)
	CreateIfAbsent(ctx context.Context, profile *models.StoreProfile) (bool, error)
	Update(ctx context.Context, profile *models.StoreProfile) (*models.StoreProfile, error)
}

type service struct {
	repo profileRepository
}

// NewService constructs a store profile service.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository is required")
	}
	return &service{repo: repo}, nil
}

// GetProfile returns the merchant's profile, or nil when onboarding has
// not happened yet.
func (s *service) GetProfile(ctx context.Context, merchantID uuid.UUID) (*StoreProfileDTO, error) {
	profile, err := s.repo.FindByMerchant(ctx, merchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load profile")
	}
	return FromModel(profile), nil
}

// SaveProfile creates the merchant's profile on first save and merges the
// provided fields into it afterwards. Concurrent first saves race through
// CreateIfAbsent and converge on the single row the unique index allows.
func (s *service) SaveProfile(ctx context.Context, merchantID uuid.UUID, input SaveProfileInput) (*StoreProfileDTO, error) {
	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store_name is required")
	}
	input.StoreName = name
	if input.Description != nil {
		trimmed := types.TruncateRunes(*input.Description, types.MaxDescriptionRunes)
		input.Description = &trimmed
	}

	candidate := &models.StoreProfile{
		ID:           uuid.New(),
		MerchantID:   merchantID,
		StoreName:    input.StoreName,
		Description:  input.Description,
		StoreOpen:    true,
		AutoSchedule: false,
	}
	applyOptional(candidate, input)

	inserted, err := s.repo.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create profile")
	}
	if inserted {
		return FromModel(candidate), nil
	}

	// Lost the insert or the profile predates this call: merge into the
	// surviving row.
	existing, err := s.repo.FindByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload profile")
	}

	existing.StoreName = input.StoreName
	if input.Description != nil {
		existing.Description = input.Description
	}
	applyOptional(existing, input)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update profile")
	}
	return FromModel(updated), nil
}

func applyOptional(profile *models.StoreProfile, input SaveProfileInput) {
	if input.Address != nil {
		profile.Address = input.Address
	}
	if input.ContactNumber != nil {
		profile.ContactNumber = input.ContactNumber
	}
	if input.StoreType != nil {
		profile.StoreType = input.StoreType
	}
	if input.LogoURL != nil {
		profile.LogoURL = input.LogoURL
	}
	if input.StoreOpen != nil {
		profile.StoreOpen = *input.StoreOpen
	}
	if input.AutoSchedule != nil {
		profile.AutoSchedule = *input.AutoSchedule
	}
	if input.OpeningTime != nil {
		profile.OpeningTime = input.OpeningTime
	}
	if input.ClosingTime != nil {
		profile.ClosingTime = input.ClosingTime
	}
}
