package wallet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/ledger"
	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/money"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/outbox/payloads"
)

const minCardFieldLength = 10

// MaxDeposit caps a single deposit request.
const MaxDeposit int64 = 1_000_000_000

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type settlementObserver interface {
	ObserveWalletCredit(txType, outcome string)
}

// Service exposes wallet reads and every balance-changing operation.
type Service interface {
	Get(ctx context.Context, identity auth.Identity) (*WalletDTO, error)
	Deposit(ctx context.Context, identity auth.Identity, amount int64) (*CreditResult, error)
	RedeemCard(ctx context.Context, identity auth.Identity, input RedeemCardInput) (*CreditResult, error)
	// Open creates the empty wallet for a new account inside tx.
	Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error)
	// DebitForOrder charges an order to the wallet inside the checkout transaction.
	DebitForOrder(ctx context.Context, tx *gorm.DB, input DebitInput) (*models.Transaction, error)
}

// RedeemCardInput carries the phone card submitted for a top-up.
type RedeemCardInput struct {
	CardType   enums.CardType
	CardSerial string
	CardCode   string
}

// DebitInput describes a purchase charged to the wallet.
type DebitInput struct {
	UserID      uuid.UUID
	OrderID     uuid.UUID
	OrderNumber string
	Amount      int64
}

type service struct {
	tx          txRunner
	repo        Repository
	ledger      ledger.Service
	verifier    CardVerifier
	outbox      outboxPublisher
	metrics     settlementObserver
	feeRate     decimal.Decimal
	minDeposit  int64
	recentLimit int
}

// NewService wires the wallet service.
func NewService(
	tx txRunner,
	repo Repository,
	ledgerSvc ledger.Service,
	verifier CardVerifier,
	publisher outboxPublisher,
	observer settlementObserver,
	cfg config.WalletConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if ledgerSvc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if verifier == nil {
		verifier = NewCodeLengthVerifier()
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if observer == nil {
		observer = metrics.NewSettlementMetrics(nil)
	}
	recent := cfg.RecentLimit
	if recent <= 0 {
		recent = 20
	}
	return &service{
		tx:          tx,
		repo:        repo,
		ledger:      ledgerSvc,
		verifier:    verifier,
		outbox:      publisher,
		metrics:     observer,
		feeRate:     cfg.CardFeeRate,
		minDeposit:  cfg.MinDeposit,
		recentLimit: recent,
	}, nil
}

func (s *service) Get(ctx context.Context, identity auth.Identity) (*WalletDTO, error) {
	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	wallet, err := s.repo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, walletLookupError(err)
	}
	txns, err := s.ledger.Recent(ctx, identity.UserID, s.recentLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recent transactions")
	}
	dto := FromModel(wallet, txns)
	return &dto, nil
}

func (s *service) Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id is required")
	}
	wallet := &models.Wallet{UserID: userID, Balance: 0}
	if err := s.repo.WithTx(tx).Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *service) Deposit(ctx context.Context, identity auth.Identity, amount int64) (result *CreditResult, err error) {
	defer func() {
		s.metrics.ObserveWalletCredit(string(enums.TransactionTypeDeposit), metrics.Outcome(err))
	}()

	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if amount < s.minDeposit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("minimum deposit is %s VND", money.FormatVND(s.minDeposit))).
			WithDetails(map[string]any{"amount": fmt.Sprintf("must be at least %d", s.minDeposit)})
	}
	if amount > MaxDeposit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("maximum deposit is %s VND", money.FormatVND(MaxDeposit))).
			WithDetails(map[string]any{"amount": fmt.Sprintf("must be at most %d", MaxDeposit)})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		credited, txn, err := s.credit(ctx, tx, identity.UserID, creditRequest{
			Type:        enums.TransactionTypeDeposit,
			Amount:      amount,
			Description: "Nạp tiền vào ví",
		})
		if err != nil {
			return err
		}
		result = &CreditResult{
			Wallet:      FromModel(credited, nil),
			Transaction: TransactionFromModel(*txn),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) RedeemCard(ctx context.Context, identity auth.Identity, input RedeemCardInput) (result *CreditResult, err error) {
	defer func() {
		s.metrics.ObserveWalletCredit(string(enums.TransactionTypeCardTopup), metrics.Outcome(err))
	}()

	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	card, err := normalizeCard(input)
	if err != nil {
		return nil, err
	}

	faceValue, err := s.verifier.Verify(ctx, card)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "card verification failed")
	}
	credited, fee := money.ApplyFee(faceValue, s.feeRate)
	if credited <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCard, "card value does not cover the top-up fee")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.ledger.WithTx(tx).CardRedemption(ctx, card.Serial, card.Code)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check card redemption")
		}
		if existing != nil {
			return cardAlreadyUsed()
		}

		wallet, txn, err := s.credit(ctx, tx, identity.UserID, creditRequest{
			Type:        enums.TransactionTypeCardTopup,
			Amount:      credited,
			Description: fmt.Sprintf("Nạp thẻ %s %s VND", card.Type, money.FormatVND(faceValue)),
			Card:        &ledger.Card{Type: card.Type, Serial: card.Serial, Code: card.Code},
		})
		if err != nil {
			return err
		}
		result = &CreditResult{
			Wallet:      FromModel(wallet, nil),
			Transaction: TransactionFromModel(*txn),
			FaceValue:   faceValue,
			Fee:         fee,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) DebitForOrder(ctx context.Context, tx *gorm.DB, input DebitInput) (*models.Transaction, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive")
	}

	repo := s.repo.WithTx(tx)
	wallet, err := repo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, walletLookupError(err)
	}
	balance, ok, err := repo.DebitIfCovered(ctx, wallet.ID, input.Amount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "debit wallet")
	}
	if !ok {
		return nil, pkgerrors.Conflict("wallet")
	}

	orderID := input.OrderID
	txn, err := s.ledger.WithTx(tx).Record(ctx, ledger.RecordInput{
		UserID:       input.UserID,
		WalletID:     wallet.ID,
		Type:         enums.TransactionTypePurchase,
		Amount:       input.Amount,
		BalanceAfter: balance,
		Description:  fmt.Sprintf("Thanh toán đơn hàng %s", input.OrderNumber),
		OrderID:      &orderID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record purchase transaction")
	}
	if err := s.emitMovement(ctx, tx, enums.EventWalletDebited, wallet, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

type creditRequest struct {
	Type        enums.TransactionType
	Amount      int64
	Description string
	Card        *ledger.Card
}

func (s *service) credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, req creditRequest) (*models.Wallet, *models.Transaction, error) {
	repo := s.repo.WithTx(tx)
	wallet, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, walletLookupError(err)
	}
	if wallet.Balance > math.MaxInt64-req.Amount {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet balance limit reached").
			WithDetails(map[string]any{"amount": "would exceed the wallet balance limit"})
	}
	balance, err := repo.Credit(ctx, wallet.ID, req.Amount)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "credit wallet")
	}

	txn, err := s.ledger.WithTx(tx).Record(ctx, ledger.RecordInput{
		UserID:       userID,
		WalletID:     wallet.ID,
		Type:         req.Type,
		Amount:       req.Amount,
		BalanceAfter: balance,
		Description:  req.Description,
		Card:         req.Card,
	})
	if err != nil {
		if db.IsUniqueViolation(err, db.ConstraintTransactionsCard) {
			return nil, nil, cardAlreadyUsed()
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record wallet transaction")
	}

	wallet.Balance = balance
	wallet.UpdatedAt = time.Now().UTC()
	if err := s.emitMovement(ctx, tx, enums.EventWalletCredited, wallet, txn); err != nil {
		return nil, nil, err
	}
	return wallet, txn, nil
}

func (s *service) emitMovement(ctx context.Context, tx *gorm.DB, eventType enums.OutboxEventType, wallet *models.Wallet, txn *models.Transaction) error {
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateWallet,
		AggregateID:   wallet.ID,
		Actor:         &outbox.ActorRef{UserID: wallet.UserID},
		Data: payloads.WalletMovementEvent{
			WalletID:      wallet.ID,
			UserID:        wallet.UserID,
			TransactionID: txn.ID,
			Type:          txn.Type,
			Amount:        txn.Amount,
			BalanceAfter:  txn.BalanceAfter,
			OrderID:       txn.OrderID,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit wallet event")
	}
	return nil
}

func normalizeCard(input RedeemCardInput) (CardCredentials, error) {
	card := CardCredentials{
		Type:   enums.CardType(strings.ToUpper(strings.TrimSpace(string(input.CardType)))),
		Serial: strings.TrimSpace(input.CardSerial),
		Code:   strings.TrimSpace(input.CardCode),
	}
	fields := map[string]any{}
	if !card.Type.IsValid() {
		fields["cardType"] = "must be one of VIETTEL, VINAPHONE, MOBIFONE"
	}
	if len(card.Serial) < minCardFieldLength {
		fields["cardSerial"] = fmt.Sprintf("must be at least %d characters", minCardFieldLength)
	}
	if len(card.Code) < minCardFieldLength {
		fields["cardCode"] = fmt.Sprintf("must be at least %d characters", minCardFieldLength)
	}
	if len(fields) > 0 {
		return CardCredentials{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid card").WithDetails(fields)
	}
	return card, nil
}

func cardAlreadyUsed() error {
	return pkgerrors.New(pkgerrors.CodeCardAlreadyUsed, "card has already been used")
}

func walletLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wallet not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wallet")
}
