package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/checkout/helpers"
	"github.com/angelmondragon/storefront-backend/internal/checkout/reservation"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/wallet"
	"github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/outbox"
	"github.com/angelmondragon/storefront-backend/pkg/outbox/payloads"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type reservationRunner interface {
	Reserve(ctx context.Context, tx *gorm.DB, requests []reservation.StockRequest) ([]reservation.StockResult, error)
}

type walletDebiter interface {
	DebitForOrder(ctx context.Context, tx *gorm.DB, input wallet.DebitInput) (*models.Transaction, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type checkoutObserver interface {
	ObserveCheckout(method, outcome string, total int64, elapsed time.Duration)
}

type reservationEngine struct{}

func (reservationEngine) Reserve(ctx context.Context, tx *gorm.DB, requests []reservation.StockRequest) ([]reservation.StockResult, error) {
	return reservation.ReserveStock(ctx, tx, requests)
}

// Service converts the caller's cart into an order.
type Service interface {
	Checkout(ctx context.Context, identity auth.Identity, input CheckoutInput) (*orders.OrderDTO, error)
}

// CheckoutInput carries the delivery and payment choices for one checkout.
type CheckoutInput struct {
	PaymentMethod   enums.PaymentMethod
	ShippingAddress string
	Phone           string
	Notes           *string
}

type service struct {
	tx          txRunner
	cartRepo    cart.CartRepository
	ordersRepo  orders.Repository
	walletRepo  wallet.Repository
	wallet      walletDebiter
	numbers     OrderNumberGenerator
	reservation reservationRunner
	outbox      outboxPublisher
	metrics     checkoutObserver
}

// NewService builds the checkout service. A nil reservation runner uses the
// conditional stock decrement; a nil observer records nothing.
func NewService(
	tx txRunner,
	cartRepo cart.CartRepository,
	ordersRepo orders.Repository,
	walletRepo wallet.Repository,
	walletSvc walletDebiter,
	numbers OrderNumberGenerator,
	reservation reservationRunner,
	publisher outboxPublisher,
	observer checkoutObserver,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if walletRepo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if walletSvc == nil {
		return nil, fmt.Errorf("wallet service required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order number generator required")
	}
	if reservation == nil {
		reservation = reservationEngine{}
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if observer == nil {
		observer = metrics.NewSettlementMetrics(nil)
	}
	return &service{
		tx:          tx,
		cartRepo:    cartRepo,
		ordersRepo:  ordersRepo,
		walletRepo:  walletRepo,
		wallet:      walletSvc,
		numbers:     numbers,
		reservation: reservation,
		outbox:      publisher,
		metrics:     observer,
	}, nil
}

// Checkout validates the cart and then, in one transaction, creates the order,
// decrements stock, settles WALLET payments, clears the cart and queues the
// order_created event. Any failure rolls all of it back.
func (s *service) Checkout(ctx context.Context, identity auth.Identity, input CheckoutInput) (dto *orders.OrderDTO, err error) {
	started := time.Now()
	var total int64
	defer func() {
		s.metrics.ObserveCheckout(string(input.PaymentMethod), metrics.Outcome(err), total, time.Since(started))
	}()

	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	input, err = normalizeInput(input)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		record, err := cartRepo.FindByUserID(ctx, identity.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if err := helpers.ValidateCartItems(record); err != nil {
			return err
		}
		lines, sum := helpers.PriceCartItems(record.Items)
		total = sum

		if input.PaymentMethod == enums.PaymentMethodWallet {
			w, err := s.walletRepo.WithTx(tx).FindByUserID(ctx, identity.UserID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wallet")
			}
			if err := helpers.ValidateWalletBalance(w, total); err != nil {
				return err
			}
		}

		order := &models.Order{
			OrderNumber:     s.numbers.Next(),
			UserID:          identity.UserID,
			Status:          enums.OrderStatusPending,
			PaymentMethod:   input.PaymentMethod,
			TotalAmount:     total,
			ShippingAddress: input.ShippingAddress,
			Phone:           input.Phone,
			Notes:           input.Notes,
			Items:           helpers.OrderItems(lines),
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, db.ConstraintOrdersOrderNumber) {
				return pkgerrors.Conflict("order number")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		requests := make([]reservation.StockRequest, len(lines))
		for i, line := range lines {
			requests[i] = reservation.StockRequest{ProductID: line.ProductID, Qty: line.Quantity}
		}
		results, err := s.reservation.Reserve(ctx, tx, requests)
		if err != nil {
			return err
		}
		for _, res := range results {
			if !res.Reserved {
				return pkgerrors.Conflict("product stock")
			}
		}

		if input.PaymentMethod.SettlesImmediately() {
			// A free order settles without moving the balance or writing a PURCHASE row.
			if total > 0 {
				if _, err := s.wallet.DebitForOrder(ctx, tx, wallet.DebitInput{
					UserID:      identity.UserID,
					OrderID:     order.ID,
					OrderNumber: order.OrderNumber,
					Amount:      total,
				}); err != nil {
					return err
				}
			}
			updated, err := ordersRepo.UpdateStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusProcessing)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark order processing")
			}
			if !updated {
				return pkgerrors.Conflict("order")
			}
			order.Status = enums.OrderStatusProcessing
		}

		ordered := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			ordered[i] = line.CartItemID
		}
		if _, err := cartRepo.DeleteItems(ctx, record.ID, ordered); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		if err := s.emitOrderCreated(ctx, tx, identity, order); err != nil {
			return err
		}

		created, err := ordersRepo.FindByID(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
		}
		out := orders.FromModel(*created)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) emitOrderCreated(ctx context.Context, tx *gorm.DB, identity auth.Identity, order *models.Order) error {
	lines := make([]payloads.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, payloads.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	event := outbox.DomainEvent{
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: identity.UserID, Role: string(identity.Role)},
		Data: payloads.OrderCreatedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			UserID:        order.UserID,
			PaymentMethod: order.PaymentMethod,
			Status:        order.Status,
			TotalAmount:   order.TotalAmount,
			Items:         lines,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit order created event")
	}
	return nil
}

func normalizeInput(input CheckoutInput) (CheckoutInput, error) {
	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		if notes == "" {
			input.Notes = nil
		} else {
			input.Notes = &notes
		}
	}

	fields := map[string]any{}
	if !input.PaymentMethod.IsValid() {
		fields["paymentMethod"] = "must be one of WALLET, CARD, COD"
	}
	if len([]rune(input.ShippingAddress)) < 10 {
		fields["shippingAddress"] = "must be at least 10 characters"
	}
	if len(input.Phone) < 10 {
		fields["phone"] = "must be at least 10 characters"
	}
	if len(fields) > 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout request").WithDetails(fields)
	}
	return input, nil
}
