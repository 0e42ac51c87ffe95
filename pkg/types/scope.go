package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ScopeKind discriminates how a collection query is bounded.
type ScopeKind string

const (
	// ScopeByStore bounds records to a resolved store profile.
	ScopeByStore ScopeKind = "store"
	// ScopeByMerchant bounds records to the merchant account directly. Only
	// valid before onboarding has produced a store profile.
	ScopeByMerchant ScopeKind = "merchant"
)

// Scope is the ownership context every scoped collection query runs under.
// Callers receive it from the store resolver and must switch on Kind instead
// of relying on an implicit fallback.
type Scope struct {
	Kind ScopeKind
	ID   uuid.UUID
}

// ByStore builds a store-bounded scope.
func ByStore(storeID uuid.UUID) Scope {
	return Scope{Kind: ScopeByStore, ID: storeID}
}

// ByMerchant builds a merchant-bounded scope for the pre-onboarding window.
func ByMerchant(merchantID uuid.UUID) Scope {
	return Scope{Kind: ScopeByMerchant, ID: merchantID}
}

// IsStore reports whether the scope is bounded to a store profile.
func (s Scope) IsStore() bool {
	return s.Kind == ScopeByStore
}

// Validate rejects zero-value scopes before they reach a repository.
func (s Scope) Validate() error {
	switch s.Kind {
	case ScopeByStore, ScopeByMerchant:
	default:
		return fmt.Errorf("unknown scope kind %q", s.Kind)
	}
	if s.ID == uuid.Nil {
		return fmt.Errorf("scope id is required")
	}
	return nil
}
