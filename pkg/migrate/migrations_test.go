package migrate_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one %s migration, found %d", suffix, len(matches))
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}

func TestSettlementConstraintsExist(t *testing.T) {
	tests := map[string][]string{
		"create_users_and_wallets_tables": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_wallets_user_id",
			"CHECK (balance >= 0)",
		},
		"create_transactions_table": {
			"CREATE UNIQUE INDEX IF NOT EXISTS ux_transactions_card ON transactions (card_serial, card_code)",
			"CHECK (amount > 0)",
		},
		"create_categories_and_products_tables": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_slug",
			"CHECK (stock >= 0)",
		},
		"create_carts_tables": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_id",
			"CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_cart_product",
			"CHECK (quantity >= 1)",
		},
		"create_orders_tables": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_number",
			"status order_status NOT NULL DEFAULT 'PENDING'",
		},
		"create_outbox_events_table": {
			"CREATE TABLE IF NOT EXISTS outbox_events",
			"failed_at timestamptz NULL",
		},
	}

	for suffix, checks := range tests {
		content := readMigration(t, suffix)
		for _, sub := range checks {
			if !strings.Contains(content, sub) {
				t.Errorf("%s: missing expected statement %q", suffix, sub)
			}
		}
	}
}

func TestEnumTypesMatchDomainValues(t *testing.T) {
	content := readMigration(t, "create_enum_types")
	for _, sub := range []string{
		"CREATE TYPE order_status AS ENUM ('PENDING', 'PROCESSING', 'SHIPPED', 'DELIVERED', 'CANCELLED')",
		"CREATE TYPE payment_method AS ENUM ('WALLET', 'CARD', 'COD')",
		"CREATE TYPE transaction_type AS ENUM ('DEPOSIT', 'CARD_TOPUP', 'PURCHASE', 'REFUND')",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing enum definition %q", sub)
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Product Tags!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_product_tags.sql") {
		t.Fatalf("unexpected file name %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestEmbeddedSourceMatchesDisk(t *testing.T) {
	embedded, err := migrate.Source(migrate.DefaultDir)
	require.NoError(t, err)

	names, err := fs.Glob(embedded, "*.sql")
	require.NoError(t, err)
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)

	require.Len(t, names, len(onDisk))
	assert.Len(t, names, 7)
	assert.Equal(t, "20260105090000_create_enum_types.sql", names[0])
	require.NoError(t, migrate.Validate(embedded))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	fsys := fstest.MapFS{
		"20260101000000_ok.sql":      {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"20260101000000_dup.sql":     {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"20260102000000_no_down.sql": {Data: []byte("-- +goose Up\n")},
		"Bad-Name.sql":               {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"README.md":                  {Data: []byte("ignored")},
	}

	err := migrate.Validate(fsys)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "already used by")
	assert.Contains(t, msg, "20260102000000_no_down.sql: missing \"-- +goose Down\"")
	assert.Contains(t, msg, "Bad-Name.sql: expected YYYYMMDDHHMMSS_name.sql")
}

func TestValidateEmptyDir(t *testing.T) {
	assert.ErrorContains(t, migrate.Validate(fstest.MapFS{}), "no .sql migrations found")
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := migrate.CreateSQLMigration(t.TempDir(), "!!!")
	assert.Error(t, err)

	_, err = migrate.CreateSQLMigration("", "add_tags")
	assert.Error(t, err)
}

func TestSourceRejectsMissingDir(t *testing.T) {
	_, err := migrate.Source(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "x.sql")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = migrate.Source(file)
	assert.Error(t, err)
}
