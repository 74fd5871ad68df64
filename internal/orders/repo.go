package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.withItems(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID)
	})
}

func (r *repository) ListAll(ctx context.Context, filters AdminOrderFilters, params pagination.Params) ([]models.Order, int64, error) {
	return r.list(ctx, params, func(q *gorm.DB) *gorm.DB {
		if filters.Status != nil {
			q = q.Where("status = ?", *filters.Status)
		}
		if filters.UserID != nil {
			q = q.Where("user_id = ?", *filters.UserID)
		}
		return q
	})
}

// list runs the count and the page query concurrently, newest order first.
func (r *repository) list(ctx context.Context, params pagination.Params, scope func(*gorm.DB) *gorm.DB) ([]models.Order, int64, error) {
	params = params.Normalize(pagination.DefaultPageSize)

	var (
		orders []models.Order
		total  int64
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return scope(r.db.WithContext(groupCtx).Model(&models.Order{})).Count(&total).Error
	})
	group.Go(func() error {
		return scope(r.withItems(groupCtx)).
			Order("created_at DESC").
			Order("id DESC").
			Offset(params.Offset()).
			Limit(params.PageSize).
			Find(&orders).Error
	})
	if err := group.Wait(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		})
}
