package instance

import "testing"

func TestGetIDPrecedence(t *testing.T) {
	t.Setenv("STOREFRONT_INSTANCE_ID", "")
	t.Setenv("HOSTNAME", "")
	if got := GetID(); got != defaultID {
		t.Fatalf("expected %q, got %q", defaultID, got)
	}

	t.Setenv("HOSTNAME", "api-7f9c")
	if got := GetID(); got != "api-7f9c" {
		t.Fatalf("expected hostname, got %q", got)
	}

	t.Setenv("STOREFRONT_INSTANCE_ID", " worker-2 ")
	if got := GetID(); got != "worker-2" {
		t.Fatalf("expected explicit id, got %q", got)
	}
}
