package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// SeedUser inserts an account with a wallet holding balance and an empty cart.
func SeedUser(t testing.TB, conn *gorm.DB, role enums.UserRole, balance int64) (*models.User, *models.Wallet) {
	t.Helper()
	user := &models.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "unused",
		Name:         "Nguyen Van A",
		Role:         role,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	wallet := &models.Wallet{UserID: user.ID, Balance: balance}
	if err := conn.Create(wallet).Error; err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	if err := conn.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return user, wallet
}

// ProductSpec overrides the defaults used by SeedProduct.
type ProductSpec struct {
	Name      string
	Price     int64
	SalePrice *int64
	Stock     int
	Inactive  bool
	Featured  bool
}

// SeedProduct inserts an active product under a fresh category.
func SeedProduct(t testing.TB, conn *gorm.DB, spec ProductSpec) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Thời trang", Slug: "cat-" + uuid.NewString()}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	name := spec.Name
	if name == "" {
		name = "Sản phẩm"
	}
	product := &models.Product{
		CategoryID: category.ID,
		Name:       name,
		Slug:       "p-" + uuid.NewString(),
		Price:      spec.Price,
		SalePrice:  spec.SalePrice,
		Stock:      spec.Stock,
		Images:     []string{"https://img.example.com/1.jpg"},
		Featured:   spec.Featured,
		Active:     !spec.Inactive,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

// AddToCart puts quantity of product into the user's cart.
func AddToCart(t testing.TB, conn *gorm.DB, userID, productID uuid.UUID, quantity int) *models.CartItem {
	t.Helper()
	var cart models.Cart
	if err := conn.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	item := &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	return item
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}
