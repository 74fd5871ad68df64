package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Transaction is the append-only audit record paired with every wallet balance change.
// Amount is always positive; Type decides the direction.
type Transaction struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID               `gorm:"column:user_id;type:uuid;not null;index"`
	WalletID     uuid.UUID               `gorm:"column:wallet_id;type:uuid;not null"`
	Type         enums.TransactionType   `gorm:"column:type;type:transaction_type;not null"`
	Amount       int64                   `gorm:"column:amount;type:bigint;not null"`
	BalanceAfter int64                   `gorm:"column:balance_after;type:bigint;not null"`
	Status       enums.TransactionStatus `gorm:"column:status;type:transaction_status;not null"`
	Description  string                  `gorm:"column:description;not null"`
	OrderID      *uuid.UUID              `gorm:"column:order_id;type:uuid;index"`
	CardType     *enums.CardType         `gorm:"column:card_type;type:text"`
	CardSerial   *string                 `gorm:"column:card_serial;uniqueIndex:ux_transactions_card"`
	CardCode     *string                 `gorm:"column:card_code;uniqueIndex:ux_transactions_card"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// SignedAmount returns the balance delta the transaction represents.
func (t Transaction) SignedAmount() int64 {
	if t.Type.IsCredit() {
		return t.Amount
	}
	return -t.Amount
}
