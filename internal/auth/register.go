package auth

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	minNameLength     = 2
)

// Register creates the account together with its empty wallet and cart, then
// signs the new user in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Email = users.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.users.WithTx(tx).Create(ctx, users.CreateUserDTO{
			Email:        req.Email,
			PasswordHash: hash,
			Name:         req.Name,
			Phone:        req.Phone,
			Role:         enums.UserRoleUser,
		})
		if err != nil {
			if db.IsUniqueViolation(err, db.ConstraintUsersEmail) {
				return emailTaken()
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		if _, err := s.wallets.Open(ctx, tx, created.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create wallet")
		}
		if _, err := s.carts.Open(ctx, tx, created.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

func validateRegister(req RegisterRequest) error {
	fields := map[string]any{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fields["email"] = "must be a valid email"
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = "must be at least 6 characters"
	}
	if utf8.RuneCountInString(req.Name) < minNameLength {
		fields["name"] = "must be at least 2 characters"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid registration").WithDetails(fields)
	}
	return nil
}

func emailTaken() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "email is already registered").
		WithDetails(map[string]any{"email": "already registered"})
}
