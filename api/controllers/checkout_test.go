package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type stubCheckoutService struct {
	calls    int
	identity auth.Identity
	input    checkoutsvc.CheckoutInput
	err      error
}

func (s *stubCheckoutService) Checkout(_ context.Context, identity auth.Identity, input checkoutsvc.CheckoutInput) (*orders.OrderDTO, error) {
	s.calls++
	s.identity = identity
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	status := enums.OrderStatusPending
	if input.PaymentMethod == enums.PaymentMethodWallet {
		status = enums.OrderStatusProcessing
	}
	return &orders.OrderDTO{
		ID:            uuid.New(),
		OrderNumber:   "ORD-TEST-1",
		UserID:        identity.UserID,
		Status:        status,
		PaymentMethod: input.PaymentMethod,
		TotalAmount:   300000,
	}, nil
}

const validCheckoutBody = `{"paymentMethod":"WALLET","shippingAddress":"12 Nguyễn Huệ, Quận 1","phone":"0901234567"}`

func TestCheckoutCreatesOrder(t *testing.T) {
	svc := &stubCheckoutService{}
	caller := shopper()
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/orders", validCheckoutBody, caller, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Đặt hàng thành công" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if svc.identity.UserID != caller.UserID || svc.input.PaymentMethod != enums.PaymentMethodWallet {
		t.Fatalf("unexpected call %+v %+v", svc.identity, svc.input)
	}
}

func TestCheckoutValidation(t *testing.T) {
	cases := map[string]struct {
		body  string
		field string
	}{
		"unknown method": {`{"paymentMethod":"PAYPAL","shippingAddress":"12 Nguyễn Huệ, Quận 1","phone":"0901234567"}`, "paymentMethod"},
		"short address":  {`{"paymentMethod":"COD","shippingAddress":"Q1","phone":"0901234567"}`, "shippingAddress"},
		"short phone":    {`{"paymentMethod":"COD","shippingAddress":"12 Nguyễn Huệ, Quận 1","phone":"090"}`, "phone"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubCheckoutService{}
			rec := httptest.NewRecorder()
			Checkout(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/orders", tc.body, shopper(), nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d", rec.Code)
			}
			if _, ok := decodeEnvelope(t, rec).Error.Details[tc.field]; !ok {
				t.Fatalf("expected %s in details", tc.field)
			}
			if svc.calls != 0 {
				t.Fatal("service must not run")
			}
		})
	}
}

func TestCheckoutPropagatesDomainError(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "Giỏ hàng trống")}
	rec := httptest.NewRecorder()
	Checkout(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/orders", validCheckoutBody, shopper(), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if msg := decodeEnvelope(t, rec).Error.Message; msg != "Giỏ hàng trống" {
		t.Fatalf("unexpected message %q", msg)
	}
}
