package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/pkg/config"
	"github.com/ayoolabs/storefront-backend/pkg/db"
	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
	"github.com/ayoolabs/storefront-backend/pkg/security"
)

// UpdateAccountInput carries partial account changes. Nil pointers leave
// the stored value untouched. A password change requires the current
// password alongside the new one.
type UpdateAccountInput struct {
	FirstName       *string
	LastName        *string
	ContactNumber   *string
	AvatarURL       *string
	CurrentPassword *string
	NewPassword     *string
}

// Service exposes account reads and self-service updates.
type Service interface {
	Get(ctx context.Context, merchantID uuid.UUID) (*MerchantDTO, error)
	Update(ctx context.Context, merchantID uuid.UUID, input UpdateAccountInput) (*MerchantDTO, error)
}

type accountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type service struct {
	repo        accountRepository
	passwordCfg config.PasswordConfig
}

// NewService constructs the accounts service.
func NewService(repo accountRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Get(ctx context.Context, merchantID uuid.UUID) (*MerchantDTO, error) {
	merchant, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find merchant")
	}
	return FromModel(merchant), nil
}

func (s *service) Update(ctx context.Context, merchantID uuid.UUID, input UpdateAccountInput) (*MerchantDTO, error) {
	merchant, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: find merchant")
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be empty")
		}
		updates["first_name"] = name
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.ContactNumber != nil {
		updates["contact_number"] = strings.TrimSpace(*input.ContactNumber)
	}
	if input.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*input.AvatarURL)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateDetails(ctx, merchantID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update merchant")
		}
	}

	if input.NewPassword != nil {
		if err := s.changePassword(ctx, merchant, input); err != nil {
			return nil, err
		}
	}

	refreshed, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload merchant")
	}
	return FromModel(refreshed), nil
}

func (s *service) changePassword(ctx context.Context, merchant *models.Merchant, input UpdateAccountInput) error {
	if input.CurrentPassword == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "current_password is required to change the password")
	}
	if len(*input.NewPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "new_password must be at least 8 characters")
	}

	ok, err := security.VerifyPassword(*input.CurrentPassword, merchant.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := security.HashPassword(*input.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if err := s.repo.UpdatePassword(ctx, merchant.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update password")
	}
	return nil
}
