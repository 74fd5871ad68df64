package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func newCartService(t *testing.T) (*gorm.DB, Service) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(db.NewFromGorm(conn), NewRepository(conn))
	require.NoError(t, err)
	return conn, svc
}

func shopper(t *testing.T, conn *gorm.DB) auth.Identity {
	t.Helper()
	user, _ := dbtest.SeedUser(t, conn, enums.UserRoleUser, 0)
	return auth.Identity{UserID: user.ID, Role: user.Role}
}

func TestAddItemMergesRepeatedAdds(t *testing.T) {
	conn, svc := newCartService(t)
	who := shopper(t, conn)
	sale := int64(80000)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 100000, SalePrice: &sale, Stock: 5})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, who, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, who, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, int64(80000), view.Items[0].UnitPrice)
	assert.Equal(t, int64(240000), view.Subtotal)
	assert.Equal(t, 3, view.ItemCount)
}

func TestAddItemRejectsOverStockIncludingExisting(t *testing.T) {
	conn, svc := newCartService(t)
	who := shopper(t, conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Name: "Áo khoác", Price: 1000, Stock: 3})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, who, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, who, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock), "got %v", err)

	view, err := svc.GetCart(ctx, who)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)
}

func TestAddItemProductChecks(t *testing.T) {
	conn, svc := newCartService(t)
	who := shopper(t, conn)
	inactive := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 3, Inactive: true})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, who, AddItemInput{ProductID: uuid.New(), Quantity: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)

	_, err = svc.AddItem(ctx, who, AddItemInput{ProductID: inactive.ID, Quantity: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeProductUnavailable), "got %v", err)

	_, err = svc.AddItem(ctx, who, AddItemInput{ProductID: inactive.ID, Quantity: 0})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestGetCartCreatesMissingCart(t *testing.T) {
	conn, svc := newCartService(t)
	user := &models.User{Email: "lazy@example.com", PasswordHash: "x", Name: "Lazy", Role: enums.UserRoleUser}
	require.NoError(t, conn.Create(user).Error)

	view, err := svc.GetCart(context.Background(), auth.Identity{UserID: user.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Subtotal)

	var count int64
	require.NoError(t, conn.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetQuantityZeroDeletesAndValidatesStock(t *testing.T) {
	conn, svc := newCartService(t)
	who := shopper(t, conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 4})
	item := dbtest.AddToCart(t, conn, who.UserID, product.ID, 1)
	ctx := context.Background()

	view, err := svc.SetQuantity(ctx, who, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.ItemCount)

	_, err = svc.SetQuantity(ctx, who, item.ID, 5)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock), "got %v", err)

	_, err = svc.SetQuantity(ctx, who, item.ID, -1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)

	view, err = svc.SetQuantity(ctx, who, item.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestItemMutationsCheckOwnership(t *testing.T) {
	conn, svc := newCartService(t)
	owner := shopper(t, conn)
	intruder := shopper(t, conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 4})
	item := dbtest.AddToCart(t, conn, owner.UserID, product.ID, 1)
	ctx := context.Background()

	_, err := svc.SetQuantity(ctx, intruder, item.ID, 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), "got %v", err)
	_, err = svc.RemoveItem(ctx, intruder, item.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), "got %v", err)
	_, err = svc.RemoveItem(ctx, owner, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound), "got %v", err)

	view, err := svc.GetCart(ctx, owner)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = svc.RemoveItem(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestClearIsIdempotent(t *testing.T) {
	conn, svc := newCartService(t)
	who := shopper(t, conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 4})
	dbtest.AddToCart(t, conn, who.UserID, product.ID, 2)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx, who))
	require.NoError(t, svc.Clear(ctx, who))
	require.NoError(t, svc.Clear(ctx, auth.Identity{UserID: uuid.New()}), "clearing a missing cart succeeds")

	view, err := svc.GetCart(ctx, who)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	var stock models.Product
	require.NoError(t, conn.First(&stock, "id = ?", product.ID).Error)
	assert.Equal(t, 4, stock.Stock, "clearing never touches stock")
}

func TestDeleteItemsUpdatedBefore(t *testing.T) {
	conn, _ := newCartService(t)
	repo := NewRepository(conn)
	who := shopper(t, conn)
	product := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 4})
	item := dbtest.AddToCart(t, conn, who.UserID, product.ID, 2)
	require.NoError(t, conn.Model(&models.CartItem{}).
		Where("id = ?", item.ID).
		UpdateColumn("updated_at", time.Now().Add(-90*24*time.Hour)).Error)

	deleted, err := repo.DeleteItemsUpdatedBefore(context.Background(), time.Now().Add(-60*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestDeleteItemsRemovesOnlyListedLines(t *testing.T) {
	conn, _ := newCartService(t)
	repo := NewRepository(conn)
	who := shopper(t, conn)
	first := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 1000, Stock: 4})
	second := dbtest.SeedProduct(t, conn, dbtest.ProductSpec{Price: 2000, Stock: 4})
	listed := dbtest.AddToCart(t, conn, who.UserID, first.ID, 1)
	kept := dbtest.AddToCart(t, conn, who.UserID, second.ID, 1)
	ctx := context.Background()

	deleted, err := repo.DeleteItems(ctx, listed.CartID, []uuid.UUID{listed.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []models.CartItem
	require.NoError(t, conn.Where("cart_id = ?", listed.CartID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	deleted, err = repo.DeleteItems(ctx, uuid.New(), []uuid.UUID{kept.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted, "lines of another cart stay")

	deleted, err = repo.DeleteItems(ctx, listed.CartID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestUnauthenticatedCallsRejected(t *testing.T) {
	_, svc := newCartService(t)
	_, err := svc.GetCart(context.Background(), auth.Identity{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}
