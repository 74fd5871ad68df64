package helpers

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// ValidateCartItems checks, in cart order, that every product is loaded,
// active and in stock for the requested quantity. The first failing item
// decides the error.
func ValidateCartItems(cart *models.Cart) error {
	if cart == nil || len(cart.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	for _, item := range cart.Items {
		product := item.Product
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeInternal, "cart item has no product")
		}
		if !product.Active {
			return pkgerrors.ProductUnavailable(product.Name)
		}
		if product.Stock < item.Quantity {
			return pkgerrors.InsufficientStock(product.Name, product.Stock)
		}
	}
	return nil
}

// ValidateWalletBalance ensures the wallet exists and covers total.
func ValidateWalletBalance(wallet *models.Wallet, total int64) error {
	if wallet == nil {
		return pkgerrors.InsufficientBalance(0, total)
	}
	if wallet.Balance < total {
		return pkgerrors.InsufficientBalance(wallet.Balance, total)
	}
	return nil
}
