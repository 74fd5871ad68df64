package payloads

import (
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/google/uuid"
)

// OrderLine is the per-product slice of an order event.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
}

// OrderCreatedEvent is emitted once checkout commits.
type OrderCreatedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	UserID        uuid.UUID           `json:"user_id"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	Status        enums.OrderStatus   `json:"status"`
	TotalAmount   int64               `json:"total_amount"`
	Items         []OrderLine         `json:"items"`
}

// OrderStatusChangedEvent is emitted when an admin moves an order forward or cancels it.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	UserID      uuid.UUID         `json:"user_id"`
	From        enums.OrderStatus `json:"from"`
	To          enums.OrderStatus `json:"to"`
}

// WalletMovementEvent describes a balance change. Amount is always positive;
// the event type carries the direction.
type WalletMovementEvent struct {
	WalletID      uuid.UUID             `json:"wallet_id"`
	UserID        uuid.UUID             `json:"user_id"`
	TransactionID uuid.UUID             `json:"transaction_id"`
	Type          enums.TransactionType `json:"type"`
	Amount        int64                 `json:"amount"`
	BalanceAfter  int64                 `json:"balance_after"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
}
