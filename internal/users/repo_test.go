package users

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

func TestRepositoryCreateNormalizesEmail(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{Email: "  Lan@Example.COM ", PasswordHash: "h", Name: " Lan "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "lan@example.com" || user.Name != "Lan" {
		t.Fatalf("unexpected normalized user %+v", user)
	}
	if user.Role != enums.UserRoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}

	found, err := repo.FindByEmail(ctx, "LAN@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected %s got %s", user.ID, found.ID)
	}
}

func TestRepositoryRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, CreateUserDTO{Email: "dup@example.com", PasswordHash: "h", Name: "A"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, CreateUserDTO{Email: "DUP@example.com", PasswordHash: "h", Name: "B"})
	if !db.IsUniqueViolation(err, db.ConstraintUsersEmail) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestRepositoryFindByEmailMissing(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
