package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const cartRetentionDays = 60

// CartCleanupJobParams configure the abandoned cart sweep.
type CartCleanupJobParams struct {
	Logger     *logger.Logger
	Repository cartItemPruner
	Retention  int
}

type cartItemPruner interface {
	DeleteItemsUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewCartCleanupJob removes cart lines nobody touched within the retention
// window. Carts themselves are kept; stock is never affected.
func NewCartCleanupJob(params CartCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = cartRetentionDays
	}
	return &cartCleanupJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type cartCleanupJob struct {
	logg      *logger.Logger
	repo      cartItemPruner
	retention int
	now       func() time.Time
}

func (j *cartCleanupJob) Name() string { return "cart-cleanup" }

func (j *cartCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.repo.DeleteItemsUpdatedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cart cleanup: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "abandoned cart cleanup complete")
	return nil
}
