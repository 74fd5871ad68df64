package errors

import "fmt"

// ProductUnavailable names the inactive product that blocked the operation.
func ProductUnavailable(productName string) *Error {
	return New(CodeProductUnavailable, fmt.Sprintf("product %q is no longer available", productName)).
		WithDetails(map[string]any{"product": productName})
}

// InsufficientStock reports the product and the quantity still on hand.
func InsufficientStock(productName string, available int) *Error {
	return New(CodeInsufficientStock, fmt.Sprintf("product %q only has %d left in stock", productName, available)).
		WithDetails(map[string]any{"product": productName, "available": available})
}

// InsufficientBalance reports the balance shortfall for a wallet payment.
func InsufficientBalance(balance, required int64) *Error {
	return New(CodeInsufficientBalance, "wallet balance is not enough for this order").
		WithDetails(map[string]any{"balance": balance, "required": required})
}

// Conflict marks a concurrent mutation detected while committing.
func Conflict(resource string) *Error {
	return New(CodeConflict, fmt.Sprintf("%s was modified concurrently", resource))
}
