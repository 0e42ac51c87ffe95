package types

import (
	"testing"

	"github.com/google/uuid"
)

func TestScopeValidate(t *testing.T) {
	id := uuid.New()

	if err := ByStore(id).Validate(); err != nil {
		t.Fatalf("store scope should validate: %v", err)
	}
	if err := ByMerchant(id).Validate(); err != nil {
		t.Fatalf("merchant scope should validate: %v", err)
	}
	if err := (Scope{}).Validate(); err == nil {
		t.Fatal("zero scope should be rejected")
	}
	if err := (Scope{Kind: ScopeByStore}).Validate(); err == nil {
		t.Fatal("scope without id should be rejected")
	}
}

func TestScopeIsStore(t *testing.T) {
	if !ByStore(uuid.New()).IsStore() {
		t.Fatal("ByStore should report store kind")
	}
	if ByMerchant(uuid.New()).IsStore() {
		t.Fatal("ByMerchant should not report store kind")
	}
}
