package db

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func TestQueryLoggerWritesOnlyFailuresAndSlowStatements(t *testing.T) {
	buf := &bytes.Buffer{}
	q := newQueryLogger(logger.New(logger.Options{ServiceName: "test", Output: buf}), 100*time.Millisecond)
	stmt := func() (string, int64) { return `SELECT * FROM "wallets"`, 1 }
	ctx := context.Background()

	q.Trace(ctx, time.Now(), stmt, nil)
	q.Trace(ctx, time.Now(), stmt, gorm.ErrRecordNotFound)
	if buf.Len() != 0 {
		t.Fatalf("fast and not-found statements must stay silent, got %s", buf.String())
	}

	q.Trace(ctx, time.Now().Add(-time.Second), stmt, nil)
	if !strings.Contains(buf.String(), `"message":"db.query.slow"`) || !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected slow warning, got %s", buf.String())
	}

	buf.Reset()
	q.Trace(ctx, time.Now(), stmt, errors.New("UNIQUE constraint failed: transactions.card_serial, transactions.card_code"))
	if !strings.Contains(buf.String(), `"message":"db.query.conflict"`) {
		t.Fatalf("expected conflict warning, got %s", buf.String())
	}

	buf.Reset()
	q.Trace(ctx, time.Now(), stmt, errors.New("connection reset"))
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), `"sql":"SELECT * FROM \"wallets\""`) {
		t.Fatalf("expected error entry with sql, got %s", buf.String())
	}
}
