package controllers

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/wallet"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// WalletFetch returns the caller's balance and recent transactions.
func WalletFetch(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}
		view, err := svc.Get(r.Context(), middleware.IdentityFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type depositRequest struct {
	// Upper bound mirrors wallet.MaxDeposit.
	Amount int64 `json:"amount" validate:"gt=0,max=1000000000"`
}

func WalletDeposit(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		var payload depositRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Deposit(r.Context(), middleware.IdentityFromContext(r.Context()), payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, result, "Nạp tiền thành công")
	}
}

type topupCardRequest struct {
	CardType   string `json:"cardType" validate:"required"`
	CardSerial string `json:"cardSerial" validate:"required"`
	CardCode   string `json:"cardCode" validate:"required"`
}

// WalletTopupCard redeems a phone card. feeRate only shapes the confirmation
// message; the service applies its own configured rate.
func WalletTopupCard(svc wallet.Service, feeRate decimal.Decimal, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wallet service unavailable"))
			return
		}

		var payload topupCardRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RedeemCard(r.Context(), middleware.IdentityFromContext(r.Context()), wallet.RedeemCardInput{
			CardType:   enums.CardType(payload.CardType),
			CardSerial: payload.CardSerial,
			CardCode:   payload.CardCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, result, TopupMessage(result.FaceValue, result.Transaction.Amount, feeRate))
	}
}

// TopupMessage renders the Vietnamese confirmation shown after a card top-up.
func TopupMessage(faceValue, credited int64, feeRate decimal.Decimal) string {
	return fmt.Sprintf("Nạp thẻ thành công. Mệnh giá: %s VND. Nhận được: %s VND (phí %s%%)",
		money.FormatVND(faceValue), money.FormatVND(credited), money.PercentString(feeRate))
}
