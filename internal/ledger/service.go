package ledger

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service records wallet movements. Callers bind it to the transaction that
// changes the balance so the row and the balance commit together.
type Service interface {
	WithTx(tx *gorm.DB) Service
	Record(ctx context.Context, input RecordInput) (*models.Transaction, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error)
	CardRedemption(ctx context.Context, serial, code string) (*models.Transaction, error)
}

type service struct {
	repo Repository
}

// Card identifies a redeemed phone card.
type Card struct {
	Type   enums.CardType
	Serial string
	Code   string
}

// RecordInput captures the immutable data a transaction row requires.
type RecordInput struct {
	UserID       uuid.UUID
	WalletID     uuid.UUID
	Type         enums.TransactionType
	Amount       int64
	BalanceAfter int64
	Description  string
	OrderID      *uuid.UUID
	Card         *Card
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) WithTx(tx *gorm.DB) Service {
	return &service{repo: s.repo.WithTx(tx)}
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.Transaction, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	if input.WalletID == uuid.Nil {
		return nil, fmt.Errorf("wallet id is required")
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid transaction type %q", input.Type)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("transaction amount must be positive, got %d", input.Amount)
	}
	if input.BalanceAfter < 0 {
		return nil, fmt.Errorf("balance after cannot be negative")
	}
	if input.Type == enums.TransactionTypeCardTopup && input.Card == nil {
		return nil, fmt.Errorf("card details are required for %s", input.Type)
	}

	txn := &models.Transaction{
		UserID:       input.UserID,
		WalletID:     input.WalletID,
		Type:         input.Type,
		Amount:       input.Amount,
		BalanceAfter: input.BalanceAfter,
		Status:       enums.TransactionStatusCompleted,
		Description:  input.Description,
		OrderID:      input.OrderID,
	}
	if input.Card != nil {
		cardType := input.Card.Type
		serial := input.Card.Serial
		code := input.Card.Code
		txn.CardType = &cardType
		txn.CardSerial = &serial
		txn.CardCode = &code
	}

	if err := s.repo.Append(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	return s.repo.ListRecentByUser(ctx, userID, limit)
}

func (s *service) CardRedemption(ctx context.Context, serial, code string) (*models.Transaction, error) {
	return s.repo.FindByCard(ctx, serial, code)
}
