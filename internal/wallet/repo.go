package wallet

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists wallet balances. Balance writes are conditional so a
// concurrent debit can never take the balance below zero.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, wallet *models.Wallet) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	Credit(ctx context.Context, walletID uuid.UUID, amount int64) (int64, error)
	DebitIfCovered(ctx context.Context, walletID uuid.UUID, amount int64) (int64, bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a wallet repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds amount and returns the resulting balance.
func (r *repository) Credit(ctx context.Context, walletID uuid.UUID, amount int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return r.balance(ctx, walletID)
}

// DebitIfCovered subtracts amount only while the balance covers it. ok is false
// when no row matched, meaning the balance was short at write time.
func (r *repository) DebitIfCovered(ctx context.Context, walletID uuid.UUID, amount int64) (int64, bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, false, nil
	}
	balance, err := r.balance(ctx, walletID)
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (r *repository) balance(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var wallet models.Wallet
	if err := r.db.WithContext(ctx).Select("balance").First(&wallet, "id = ?", walletID).Error; err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}
