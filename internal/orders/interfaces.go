package orders

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// Create inserts the order together with order.Items.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	ListAll(ctx context.Context, filters AdminOrderFilters, params pagination.Params) ([]models.Order, int64, error)
	// UpdateStatus moves the order from -> to. It reports false when the
	// stored status no longer equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error)
}

// AdminOrderFilters narrow the admin order listing.
type AdminOrderFilters struct {
	Status *enums.OrderStatus
	UserID *uuid.UUID
}
