package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type passwordHasher interface {
	Hash(password string) (string, error)
}

type account struct {
	Email    string
	Name     string
	Phone    string
	Password string
	Role     enums.UserRole
	Balance  int64
}

func defaultAccounts(adminPassword, userPassword string) []account {
	return []account{
		{
			Email:    "admin@shopvn.com",
			Name:     "Admin ShopVN",
			Phone:    "0123456789",
			Password: adminPassword,
			Role:     enums.UserRoleAdmin,
			Balance:  10_000_000,
		},
		{
			Email:    "user@shopvn.com",
			Name:     "Nguyễn Văn A",
			Phone:    "0987654321",
			Password: userPassword,
			Role:     enums.UserRoleUser,
			Balance:  1_000_000,
		},
	}
}

// Summary counts the rows a run actually inserted.
type Summary struct {
	Accounts   int
	Categories int
	Products   int
}

// Seeder loads the demo catalog and accounts. Rows keyed by an existing email
// or slug are left untouched, so repeated runs are safe.
type Seeder struct {
	hasher   passwordHasher
	accounts []account
	logg     *logger.Logger
}

func NewSeeder(hasher passwordHasher, accounts []account, logg *logger.Logger) *Seeder {
	return &Seeder{hasher: hasher, accounts: accounts, logg: logg}
}

func (s *Seeder) Run(ctx context.Context, tx *gorm.DB) (Summary, error) {
	var summary Summary
	tx = tx.WithContext(ctx)

	for _, acct := range s.accounts {
		created, err := s.seedAccount(tx, acct)
		if err != nil {
			return summary, fmt.Errorf("seed account %s: %w", acct.Email, err)
		}
		if created {
			summary.Accounts++
			s.info(ctx, "account created", map[string]any{"email": acct.Email, "role": string(acct.Role)})
		}
	}

	categoryIDs := make(map[string]models.Category, len(categorySeeds))
	for _, seed := range categorySeeds {
		category, created, err := seedCategory(tx, seed)
		if err != nil {
			return summary, fmt.Errorf("seed category %s: %w", seed.Slug, err)
		}
		if created {
			summary.Categories++
		}
		categoryIDs[seed.Slug] = category
	}

	for _, seed := range productSeeds {
		category, ok := categoryIDs[seed.Category]
		if !ok {
			return summary, fmt.Errorf("product %s references unknown category %s", seed.Slug, seed.Category)
		}
		created, err := seedProduct(tx, category, seed)
		if err != nil {
			return summary, fmt.Errorf("seed product %s: %w", seed.Slug, err)
		}
		if created {
			summary.Products++
		}
	}

	return summary, nil
}

func (s *Seeder) seedAccount(tx *gorm.DB, acct account) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(acct.Email))

	var existing models.User
	err := tx.Where("email = ?", email).Take(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(acct.Password)
	if err != nil {
		return false, err
	}

	phone := acct.Phone
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         acct.Name,
		Phone:        &phone,
		Role:         acct.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return false, err
	}

	wallet := models.Wallet{UserID: user.ID, Balance: acct.Balance}
	if err := tx.Create(&wallet).Error; err != nil {
		return false, err
	}
	if err := tx.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		return false, err
	}

	// The opening balance gets its own audit row so the ledger sums to the wallet.
	if acct.Balance > 0 {
		opening := models.Transaction{
			UserID:       user.ID,
			WalletID:     wallet.ID,
			Type:         enums.TransactionTypeDeposit,
			Amount:       acct.Balance,
			BalanceAfter: acct.Balance,
			Status:       enums.TransactionStatusCompleted,
			Description:  "Số dư khởi tạo",
		}
		if err := tx.Create(&opening).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedCategory(tx *gorm.DB, seed categorySeed) (models.Category, bool, error) {
	var category models.Category
	found, err := findBySlug(tx, seed.Slug, &category)
	if err != nil || found {
		return category, false, err
	}

	description := seed.Description
	category = models.Category{Name: seed.Name, Slug: seed.Slug, Description: &description}
	if err := tx.Create(&category).Error; err != nil {
		return category, false, err
	}
	return category, true, nil
}

func seedProduct(tx *gorm.DB, category models.Category, seed productSeed) (bool, error) {
	var existing models.Product
	found, err := findBySlug(tx, seed.Slug, &existing)
	if err != nil || found {
		return false, err
	}

	description := seed.Description
	product := models.Product{
		CategoryID:  category.ID,
		Name:        seed.Name,
		Slug:        seed.Slug,
		Description: &description,
		Price:       seed.Price,
		Stock:       seed.Stock,
		Images:      []string{seed.Image},
		Featured:    seed.Featured,
		Active:      true,
	}
	if seed.SalePrice > 0 {
		sale := seed.SalePrice
		product.SalePrice = &sale
	}
	if err := tx.Create(&product).Error; err != nil {
		return false, err
	}
	return true, nil
}

func findBySlug(tx *gorm.DB, slug string, dest any) (bool, error) {
	err := tx.Where("slug = ?", slug).Take(dest).Error
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Seeder) info(ctx context.Context, msg string, fields map[string]any) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithFields(ctx, fields), msg)
}
