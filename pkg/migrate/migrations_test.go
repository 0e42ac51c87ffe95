package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayoolabs/storefront-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInitSchemaEnforcesSingleStorePerMerchant(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX idx_store_profiles_merchant_id ON store_profiles (merchant_id)",
		"REFERENCES orders(id) ON DELETE CASCADE",
		"status TEXT NOT NULL DEFAULT 'Pending'",
		"DROP TABLE merchants",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
