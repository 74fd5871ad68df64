package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// WalletDTO is the wallet view returned to its owner.
type WalletDTO struct {
	ID           uuid.UUID        `json:"id"`
	Balance      int64            `json:"balance"`
	Transactions []TransactionDTO `json:"transactions,omitempty"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// TransactionDTO hides the card code; only the serial is echoed back.
type TransactionDTO struct {
	ID           uuid.UUID               `json:"id"`
	Type         enums.TransactionType   `json:"type"`
	Amount       int64                   `json:"amount"`
	SignedAmount int64                   `json:"signedAmount"`
	BalanceAfter int64                   `json:"balanceAfter"`
	Status       enums.TransactionStatus `json:"status"`
	Description  string                  `json:"description"`
	OrderID      *uuid.UUID              `json:"orderId,omitempty"`
	CardType     *enums.CardType         `json:"cardType,omitempty"`
	CardSerial   *string                 `json:"cardSerial,omitempty"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// CreditResult is returned by deposits and card top-ups.
type CreditResult struct {
	Wallet      WalletDTO      `json:"wallet"`
	Transaction TransactionDTO `json:"transaction"`
	FaceValue   int64          `json:"faceValue,omitempty"`
	Fee         int64          `json:"fee,omitempty"`
}

func FromModel(w *models.Wallet, txns []models.Transaction) WalletDTO {
	dto := WalletDTO{
		ID:        w.ID,
		Balance:   w.Balance,
		UpdatedAt: w.UpdatedAt,
	}
	if len(txns) > 0 {
		dto.Transactions = make([]TransactionDTO, 0, len(txns))
		for _, txn := range txns {
			dto.Transactions = append(dto.Transactions, TransactionFromModel(txn))
		}
	}
	return dto
}

func TransactionFromModel(t models.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount,
		SignedAmount: t.SignedAmount(),
		BalanceAfter: t.BalanceAfter,
		Status:       t.Status,
		Description:  t.Description,
		OrderID:      t.OrderID,
		CardType:     t.CardType,
		CardSerial:   t.CardSerial,
		CreatedAt:    t.CreatedAt,
	}
}
