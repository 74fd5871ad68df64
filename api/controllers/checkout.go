package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod   string  `json:"paymentMethod" validate:"required,oneof=COD WALLET CARD"`
	ShippingAddress string  `json:"shippingAddress" validate:"required,min=10"`
	Phone           string  `json:"phone" validate:"required,min=10,phone"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Checkout turns the caller's cart into an order. WALLET orders are paid and
// move to PROCESSING in the same request.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), middleware.IdentityFromContext(r.Context()), checkoutsvc.CheckoutInput{
			PaymentMethod:   enums.PaymentMethod(payload.PaymentMethod),
			ShippingAddress: payload.ShippingAddress,
			Phone:           payload.Phone,
			Notes:           payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"order_id":       order.ID.String(),
				"order_number":   order.OrderNumber,
				"payment_method": string(order.PaymentMethod),
				"total_amount":   order.TotalAmount,
			})
			logg.Info(ctx, "checkout.completed")
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, order, "Đặt hàng thành công")
	}
}
