package reservation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRequest asks for qty units of one product.
type StockRequest struct {
	ProductID uuid.UUID
	Qty       int
}

// StockResult reports whether the matching request was applied.
type StockResult struct {
	ProductID uuid.UUID
	Qty       int
	Reserved  bool
	Reason    string
}

// ReserveStock decrements product stock for every request inside tx. Each
// decrement is guarded by stock >= qty, so a request that would oversell is
// reported as not reserved and leaves its row untouched. Rows are updated in
// product id order so concurrent checkouts lock them in the same sequence.
func ReserveStock(ctx context.Context, tx *gorm.DB, requests []StockRequest) ([]StockResult, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	for _, req := range requests {
		if req.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if req.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation quantity must be positive")
		}
	}

	order := make([]int, len(requests))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return requests[order[a]].ProductID.String() < requests[order[b]].ProductID.String()
	})

	results := make([]StockResult, len(requests))
	now := time.Now().UTC()
	for _, idx := range order {
		req := requests[idx]
		res := tx.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND stock >= ?", req.ProductID, req.Qty).
			Updates(map[string]any{
				"stock":      gorm.Expr("stock - ?", req.Qty),
				"updated_at": now,
			})
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "decrement stock")
		}
		result := StockResult{ProductID: req.ProductID, Qty: req.Qty, Reserved: res.RowsAffected == 1}
		if !result.Reserved {
			result.Reason = "insufficient stock at commit"
		}
		results[idx] = result
	}
	return results, nil
}
