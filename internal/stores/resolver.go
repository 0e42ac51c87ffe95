package stores

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayoolabs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
)

type profileFinder interface {
	FindByMerchant(ctx context.Context, merchantID uuid.UUID) (*models.StoreProfile, error)
}

// Resolver maps an authenticated merchant to their store identifier.
// A merchant without a store is a normal state, not a failure: it is how
// every account looks before onboarding completes.
type Resolver struct {
	repo profileFinder
}

// NewResolver constructs a resolver over the profile repository.
func NewResolver(repo profileFinder) (*Resolver, error) {
	if repo == nil {
		return nil, errors.New("profile repository is required")
	}
	return &Resolver{repo: repo}, nil
}

// Resolve returns the store ID owned by the merchant. found is false when
// no profile exists yet; err is reserved for real lookup failures.
func (r *Resolver) Resolve(ctx context.Context, merchantID uuid.UUID) (uuid.UUID, bool, error) {
	profile, err := r.repo.FindByMerchant(ctx, merchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve store")
	}
	return profile.ID, true, nil
}
