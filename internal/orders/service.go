package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/outbox/payloads"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes order reads and the admin status workflow. Orders are only
// created by checkout.
type Service interface {
	List(ctx context.Context, identity auth.Identity, params pagination.Params) (*types.Page[OrderDTO], error)
	ListAll(ctx context.Context, identity auth.Identity, filters AdminOrderFilters, params pagination.Params) (*types.Page[OrderDTO], error)
	Get(ctx context.Context, identity auth.Identity, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, identity auth.Identity, orderID uuid.UUID, status string) (*OrderDTO, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
}

// NewService builds the order service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox}, nil
}

func (s *service) List(ctx context.Context, identity auth.Identity, params pagination.Params) (*types.Page[OrderDTO], error) {
	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	params = params.Normalize(pagination.DefaultPageSize)
	rows, total, err := s.repo.ListByUser(ctx, identity.UserID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return toPage(rows, total, params), nil
}

func (s *service) ListAll(ctx context.Context, identity auth.Identity, filters AdminOrderFilters, params pagination.Params) (*types.Page[OrderDTO], error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	params = params.Normalize(pagination.DefaultPageSize)
	rows, total, err := s.repo.ListAll(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return toPage(rows, total, params), nil
}

func (s *service) Get(ctx context.Context, identity auth.Identity, orderID uuid.UUID) (*OrderDTO, error) {
	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, lookupError(err)
	}
	if order.UserID != identity.UserID && !identity.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	dto := FromModel(*order)
	return &dto, nil
}

// UpdateStatus applies one forward transition of the order state machine. It
// never touches stock or wallet balances.
func (s *service) UpdateStatus(ctx context.Context, identity auth.Identity, orderID uuid.UUID, status string) (*OrderDTO, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	next, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
			WithDetails(map[string]any{"status": "must be one of PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED"})
	}

	var out *OrderDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			return lookupError(err)
		}
		current := order.Status
		if !current.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeInvalidStatusTransition,
				fmt.Sprintf("cannot move order from %s to %s", current, next)).
				WithDetails(map[string]any{"from": current, "to": next})
		}
		updated, err := repo.UpdateStatus(ctx, order.ID, current, next)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
		}
		if !updated {
			return pkgerrors.Conflict("order")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: identity.UserID, Role: string(identity.Role)},
			Data: payloads.OrderStatusChangedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				UserID:      order.UserID,
				From:        current,
				To:          next,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order status event")
		}

		order.Status = next
		dto := FromModel(*order)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toPage(rows []models.Order, total int64, params pagination.Params) *types.Page[OrderDTO] {
	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, FromModel(row))
	}
	return &types.Page[OrderDTO]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: pagination.TotalPages(total, params.PageSize),
	}
}

func requireAdmin(identity auth.Identity) error {
	if identity.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if !identity.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

func lookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
}
