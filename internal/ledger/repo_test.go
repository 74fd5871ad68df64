package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func TestRepositoryCardUniqueness(t *testing.T) {
	conn := dbtest.Open(t)
	svc, _ := NewService(NewRepository(conn))
	ctx := context.Background()

	input := RecordInput{
		UserID:       uuid.New(),
		WalletID:     uuid.New(),
		Type:         enums.TransactionTypeCardTopup,
		Amount:       40000,
		BalanceAfter: 40000,
		Card:         &Card{Type: enums.CardTypeMobifone, Serial: "SER1234567", Code: "1234567890123"},
	}
	if _, err := svc.Record(ctx, input); err != nil {
		t.Fatalf("first record: %v", err)
	}

	found, err := svc.CardRedemption(ctx, "SER1234567", "1234567890123")
	if err != nil || found == nil {
		t.Fatalf("expected redemption to be found, got %v %v", found, err)
	}
	none, err := svc.CardRedemption(ctx, "SER1234567", "0000000000000")
	if err != nil || none != nil {
		t.Fatalf("expected no redemption for a different code, got %v %v", none, err)
	}

	_, err = svc.Record(ctx, input)
	if !db.IsUniqueViolation(err, db.ConstraintTransactionsCard) {
		t.Fatalf("expected card unique violation, got %v", err)
	}
}

func TestRepositoryRecentIsNewestFirstAndLimited(t *testing.T) {
	conn := dbtest.Open(t)
	svc, _ := NewService(NewRepository(conn))
	ctx := context.Background()
	userID, walletID := uuid.New(), uuid.New()

	for i := 1; i <= 3; i++ {
		if _, err := svc.Record(ctx, RecordInput{
			UserID:       userID,
			WalletID:     walletID,
			Type:         enums.TransactionTypeDeposit,
			Amount:       int64(i) * 10000,
			BalanceAfter: int64(i) * 10000,
		}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	recent, err := svc.Recent(ctx, userID, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recent))
	}
	for _, txn := range recent {
		if txn.UserID != userID {
			t.Fatalf("unexpected user on row %+v", txn)
		}
	}
}
