package ledger

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepository struct {
	appendFn func(ctx context.Context, txn *models.Transaction) error
	bound    *gorm.DB
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	f.bound = tx
	return f
}

func (f *fakeRepository) Append(ctx context.Context, txn *models.Transaction) error {
	if f.appendFn != nil {
		return f.appendFn(ctx, txn)
	}
	return nil
}

func (f *fakeRepository) FindByCard(ctx context.Context, serial, code string) (*models.Transaction, error) {
	return nil, nil
}

func (f *fakeRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Transaction, error) {
	return nil, nil
}

func TestService_Record(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	orderID := uuid.New()
	input := RecordInput{
		UserID:       uuid.New(),
		WalletID:     uuid.New(),
		Type:         enums.TransactionTypePurchase,
		Amount:       240000,
		BalanceAfter: 60000,
		Description:  "Thanh toán đơn hàng ORD1",
		OrderID:      &orderID,
	}

	var created *models.Transaction
	repo.appendFn = func(ctx context.Context, txn *models.Transaction) error {
		created = txn
		return nil
	}

	got, err := svc.Record(context.Background(), input)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if created == nil || got != created {
		t.Fatal("expected the appended transaction to be returned")
	}
	if created.Status != enums.TransactionStatusCompleted {
		t.Fatalf("expected COMPLETED status, got %s", created.Status)
	}
	if created.SignedAmount() != -240000 {
		t.Fatalf("purchase should debit, got %d", created.SignedAmount())
	}
	if created.OrderID == nil || *created.OrderID != orderID {
		t.Fatalf("order link missing: %+v", created)
	}
	if created.CardSerial != nil {
		t.Fatalf("purchase must not carry card data")
	}
}

func TestService_RecordCardTopupCopiesCard(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)

	txn, err := svc.Record(context.Background(), RecordInput{
		UserID:       uuid.New(),
		WalletID:     uuid.New(),
		Type:         enums.TransactionTypeCardTopup,
		Amount:       80000,
		BalanceAfter: 80000,
		Card:         &Card{Type: enums.CardTypeViettel, Serial: "SERIAL00001", Code: "12345678901234"},
	})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if txn.CardType == nil || *txn.CardType != enums.CardTypeViettel {
		t.Fatalf("card type not recorded: %+v", txn)
	}
	if *txn.CardSerial != "SERIAL00001" || *txn.CardCode != "12345678901234" {
		t.Fatalf("card identifiers not recorded: %+v", txn)
	}
}

func TestService_RecordValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)
	base := RecordInput{
		UserID:   uuid.New(),
		WalletID: uuid.New(),
		Type:     enums.TransactionTypeDeposit,
		Amount:   10000,
	}

	cases := map[string]func(in *RecordInput){
		"missing user":   func(in *RecordInput) { in.UserID = uuid.Nil },
		"missing wallet": func(in *RecordInput) { in.WalletID = uuid.Nil },
		"bad type":       func(in *RecordInput) { in.Type = "BONUS" },
		"zero amount":    func(in *RecordInput) { in.Amount = 0 },
		"negative after": func(in *RecordInput) { in.BalanceAfter = -1 },
		"topup no card":  func(in *RecordInput) { in.Type = enums.TransactionTypeCardTopup },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			if _, err := svc.Record(context.Background(), in); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestService_WithTxBindsRepository(t *testing.T) {
	repo := &fakeRepository{}
	svc, _ := NewService(repo)
	tx := &gorm.DB{}
	svc.WithTx(tx)
	if repo.bound != tx {
		t.Fatal("expected repository to be bound to tx")
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
