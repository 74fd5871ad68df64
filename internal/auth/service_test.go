package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

type stubSessions struct {
	live     map[string]string
	startErr error
}

func (s *stubSessions) Start(_ context.Context, tokenID, userID string) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.live[tokenID] = userID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, tokenID string) error {
	delete(s.live, tokenID)
	return nil
}

type walletRows struct{}

func (walletRows) Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	w := &models.Wallet{UserID: userID}
	return w, tx.WithContext(ctx).Create(w).Error
}

type cartRows struct{}

func (cartRows) Open(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	c := &models.Cart{UserID: userID}
	return c, tx.WithContext(ctx).Create(c).Error
}

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "storefront", ExpirationMinutes: 30}

func buildTestService(t *testing.T) (*gorm.DB, Service, *stubSessions) {
	t.Helper()
	conn := dbtest.Open(t)
	sessions := &stubSessions{live: map[string]string{}}
	svc, err := NewService(ServiceParams{
		DB:       db.NewFromGorm(conn),
		UserRepo: users.NewRepository(conn),
		Wallets:  walletRows{},
		Carts:    cartRows{},
		Hasher: security.NewHasher(config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		}),
		SessionManager: sessions,
		JWTConfig:      testJWT,
		Now:            func() time.Time { return time.Now() },
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return conn, svc, sessions
}

func TestRegisterCreatesWalletAndCart(t *testing.T) {
	conn, svc, sessions := buildTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New.User@Example.com ",
		Password: "123456",
		Name:     "Lan",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.Role != enums.UserRoleUser {
		t.Fatalf("expected USER role, got %s", resp.User.Role)
	}

	var wallet models.Wallet
	if err := conn.Where("user_id = ?", resp.User.ID).First(&wallet).Error; err != nil {
		t.Fatalf("load wallet: %v", err)
	}
	if wallet.Balance != 0 {
		t.Fatalf("expected zero balance, got %d", wallet.Balance)
	}
	var carts int64
	if err := conn.Model(&models.Cart{}).Where("user_id = ?", resp.User.ID).Count(&carts).Error; err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if carts != 1 {
		t.Fatalf("expected one cart, got %d", carts)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if sessions.live[claims.ID] != resp.User.ID.String() {
		t.Fatalf("expected a session for the issued token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	conn, svc, _ := buildTestService(t)
	req := RegisterRequest{Email: "dup@example.com", Password: "123456", Name: "Minh"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	req.Email = "DUP@example.com"
	_, err := svc.Register(context.Background(), req)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var wallets int64
	if err := conn.Model(&models.Wallet{}).Count(&wallets).Error; err != nil {
		t.Fatalf("count wallets: %v", err)
	}
	if wallets != 1 {
		t.Fatalf("failed registration must not leave a wallet, got %d", wallets)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, svc, _ := buildTestService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "bad", Password: "123", Name: "A"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details := typed.Details().(map[string]any)
	for _, field := range []string{"email", "password", "name"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected %s in details %+v", field, details)
		}
	}
}

func TestLoginAndLogout(t *testing.T) {
	_, svc, sessions := buildTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "secret1", Name: "Hoa"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: "LOGIN@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if _, ok := sessions.live[claims.ID]; !ok {
		t.Fatal("expected login session")
	}

	if err := svc.Logout(ctx, claims.Identity()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.live[claims.ID]; ok {
		t.Fatal("expected session to be revoked")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, svc, _ := buildTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "who@example.com", Password: "secret1", Name: "Hoa"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, req := range []LoginRequest{
		{Email: "who@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "secret1"},
		{Email: "", Password: "secret1"},
	} {
		_, err := svc.Login(ctx, req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %q, got %v", req.Email, err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("expected generic message, got %q", typed.Message())
		}
	}
}

func TestLoginSessionFailureIsDependencyError(t *testing.T) {
	_, svc, sessions := buildTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterRequest{Email: "redis@example.com", Password: "secret1", Name: "Hoa"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sessions.startErr = errors.New("redis down")

	_, err := svc.Login(ctx, LoginRequest{Email: "redis@example.com", Password: "secret1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
