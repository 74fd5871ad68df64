package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation from
// Postgres (pgx or lib/pq) or SQLite. When constraintName is provided, only a
// violation of that constraint matches.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgUniqueViolation && matchesConstraint(pgxErr.ConstraintName, constraintName)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && matchesConstraint(pqErr.Constraint, constraintName)
	}

	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	return constraintName == "" || strings.Contains(msg, constraintName) || sqliteColumnsMatch(msg, constraintName)
}

func matchesConstraint(actual, want string) bool {
	return want == "" || actual == want
}

// sqliteColumnsMatch handles SQLite messages, which name columns instead of the index:
// "UNIQUE constraint failed: transactions.card_serial, transactions.card_code".
func sqliteColumnsMatch(msg, constraintName string) bool {
	cols, ok := uniqueIndexColumns[constraintName]
	if !ok {
		return false
	}
	for _, col := range cols {
		if !strings.Contains(msg, col) {
			return false
		}
	}
	return true
}

// uniqueIndexColumns maps the named unique indexes to the columns they cover.
var uniqueIndexColumns = map[string][]string{
	ConstraintTransactionsCard:  {"transactions.card_serial", "transactions.card_code"},
	ConstraintCartItemsProduct:  {"cart_items.cart_id", "cart_items.product_id"},
	ConstraintOrdersOrderNumber: {"orders.order_number"},
	ConstraintUsersEmail:        {"users.email"},
	ConstraintCartsUser:         {"carts.user_id"},
	ConstraintProductsSlug:      {"products.slug"},
	ConstraintCategoriesSlug:    {"categories.slug"},
}

// Named unique indexes shared by the migrations and the gorm models.
const (
	ConstraintTransactionsCard  = "ux_transactions_card"
	ConstraintCartItemsProduct  = "ux_cart_items_cart_product"
	ConstraintOrdersOrderNumber = "idx_orders_order_number"
	ConstraintUsersEmail        = "idx_users_email"
	ConstraintCartsUser         = "idx_carts_user_id"
	ConstraintProductsSlug      = "idx_products_slug"
	ConstraintCategoriesSlug    = "idx_categories_slug"
)
