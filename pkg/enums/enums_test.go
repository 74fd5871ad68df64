package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusDelivered, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if !OrderStatusDelivered.IsTerminal() || !OrderStatusCancelled.IsTerminal() {
		t.Fatal("delivered and cancelled must be terminal")
	}
	if OrderStatusShipped.IsTerminal() {
		t.Fatal("shipped is not terminal")
	}
}

func TestParsers(t *testing.T) {
	if _, err := ParseOrderStatus("SHIPPED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("order status parsing is case sensitive")
	}
	if pm, err := ParsePaymentMethod("WALLET"); err != nil || !pm.SettlesImmediately() {
		t.Fatalf("expected wallet to settle immediately, got %v %v", pm, err)
	}
	if PaymentMethodCOD.SettlesImmediately() {
		t.Fatal("cod must not settle at checkout")
	}
	if _, err := ParseCardType("VIETNAMOBILE"); err == nil {
		t.Fatal("expected unsupported carrier to fail")
	}
	if role, err := ParseUserRole(" admin "); err != nil || role != UserRoleAdmin {
		t.Fatalf("expected admin role, got %v %v", role, err)
	}
	if TransactionTypePurchase.IsCredit() || !TransactionTypeCardTopup.IsCredit() {
		t.Fatal("purchase is the only debit type")
	}
}
