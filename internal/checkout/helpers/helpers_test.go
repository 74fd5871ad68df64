package helpers

import (
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func product(name string, price int64, sale *int64, stock int, active bool) *models.Product {
	return &models.Product{ID: uuid.New(), Name: name, Price: price, SalePrice: sale, Stock: stock, Active: active}
}

func itemFor(p *models.Product, qty int) models.CartItem {
	return models.CartItem{ID: uuid.New(), ProductID: p.ID, Product: p, Quantity: qty}
}

func TestPriceCartItemsUsesEffectivePrice(t *testing.T) {
	sale := int64(80000)
	shirt := product("Áo", 100000, &sale, 10, true)
	hat := product("Mũ", 50000, nil, 10, true)

	lines, total := PriceCartItems([]models.CartItem{itemFor(shirt, 3), itemFor(hat, 1)})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].UnitPrice != 80000 || lines[0].LineTotal != 240000 {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if total != 290000 {
		t.Fatalf("expected total 290000, got %d", total)
	}

	items := OrderItems(lines)
	if items[1].ProductName != "Mũ" || items[1].Price != 50000 || items[1].Quantity != 1 {
		t.Fatalf("unexpected order item %+v", items[1])
	}
}

func TestValidateCartItemsFailsFast(t *testing.T) {
	inactive := product("Giày cũ", 1000, nil, 10, false)
	scarce := product("Khăn", 1000, nil, 1, true)

	cases := []struct {
		name string
		cart *models.Cart
		code pkgerrors.Code
	}{
		{name: "missing cart", cart: nil, code: pkgerrors.CodeEmptyCart},
		{name: "no items", cart: &models.Cart{}, code: pkgerrors.CodeEmptyCart},
		{name: "inactive first", cart: &models.Cart{Items: []models.CartItem{itemFor(inactive, 1), itemFor(scarce, 5)}}, code: pkgerrors.CodeProductUnavailable},
		{name: "short stock", cart: &models.Cart{Items: []models.CartItem{itemFor(scarce, 2)}}, code: pkgerrors.CodeInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCartItems(tc.cart)
			if !pkgerrors.IsCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}

	ok := &models.Cart{Items: []models.CartItem{itemFor(scarce, 1)}}
	if err := ValidateCartItems(ok); err != nil {
		t.Fatalf("expected valid cart, got %v", err)
	}
}

func TestValidateWalletBalance(t *testing.T) {
	if err := ValidateWalletBalance(&models.Wallet{Balance: 240000}, 240000); err != nil {
		t.Fatalf("exact balance should pass: %v", err)
	}
	err := ValidateWalletBalance(&models.Wallet{Balance: 100000}, 240000)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientBalance {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	details := typed.Details().(map[string]any)
	if details["balance"] != int64(100000) || details["required"] != int64(240000) {
		t.Fatalf("unexpected details %+v", details)
	}
	if !pkgerrors.IsCode(ValidateWalletBalance(nil, 1), pkgerrors.CodeInsufficientBalance) {
		t.Fatal("missing wallet should be insufficient")
	}
}
