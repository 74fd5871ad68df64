package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeEmptyCart, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeProductUnavailable, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeInsufficientStock, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeInsufficientBalance, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeCardAlreadyUsed, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeInvalidCard, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeInvalidStatusTransition, status: http.StatusBadRequest, detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized},
		{code: CodeForbidden, status: http.StatusForbidden},
		{code: CodeNotFound, status: http.StatusNotFound},
		{code: CodeConflict, status: http.StatusConflict, retryable: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests},
		{code: CodeInternal, status: http.StatusInternalServerError, retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage == "" {
			t.Fatalf("code %s has no public message", tt.code)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if !wrapped.Retryable() {
		t.Fatalf("conflict errors should be retryable")
	}
}

func TestAsAndIsCodeUnwrapChains(t *testing.T) {
	err := fmt.Errorf("checkout: %w", InsufficientStock("Áo thun", 1))
	typed := As(err)
	if typed == nil || typed.Code() != CodeInsufficientStock {
		t.Fatalf("As failed to return typed error")
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["available"] != 1 {
		t.Fatalf("expected available detail, got %#v", typed.Details())
	}
	if !IsCode(err, CodeInsufficientStock) {
		t.Fatalf("IsCode should match wrapped code")
	}
	if IsCode(err, CodeConflict) {
		t.Fatalf("IsCode matched the wrong code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDescribeCollectsChain(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(CodeInternal, stdErrors.New("db down"), "load wallet"))
	report := Describe(err)
	if report.Code != CodeInternal {
		t.Fatalf("expected internal code, got %s", report.Code)
	}
	if len(report.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(report.Chain), report.Chain)
	}
	if report.Postgres != nil {
		t.Fatalf("unexpected postgres detail %+v", report.Postgres)
	}

	fields := report.LogFields()
	if fields["error_code"] != CodeInternal {
		t.Fatalf("expected error_code field, got %v", fields)
	}
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("pg fields must be absent without a postgres error: %v", fields)
	}
}

func TestDescribePostgresError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_transactions_card", Message: "duplicate key value"}
	report := Describe(fmt.Errorf("insert transaction: %w", pgErr))
	if report.Postgres == nil || report.Postgres.Constraint != "ux_transactions_card" {
		t.Fatalf("expected postgres detail, got %+v", report.Postgres)
	}

	fields := report.LogFields()
	if fields["pg_code"] != "23505" || fields["pg_constraint"] != "ux_transactions_card" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields["pg_table"]; ok {
		t.Fatalf("empty pg_table should be omitted: %v", fields)
	}
	if _, ok := fields["error_code"]; ok {
		t.Fatalf("untyped error has no error_code: %v", fields)
	}
}

func TestDescribeNil(t *testing.T) {
	if r := Describe(nil); r.Message != "" || r.Chain != nil {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
