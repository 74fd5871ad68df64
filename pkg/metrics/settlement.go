package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// SettlementMetrics tracks checkout and wallet settlement outcomes.
type SettlementMetrics struct {
	checkouts     *prometheus.CounterVec
	checkoutTime  *prometheus.HistogramVec
	orderValue    *prometheus.CounterVec
	walletCredits *prometheus.CounterVec
}

func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout attempts by payment method and outcome.",
	}, []string{"payment_method", "outcome"})
	checkoutTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Time spent settling a checkout.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	orderValue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_value_vnd_total",
		Help: "Sum of committed order totals in VND.",
	}, []string{"payment_method"})
	walletCredits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_credit_total",
		Help: "Wallet credit attempts by transaction type and outcome.",
	}, []string{"type", "outcome"})
	reg.MustRegister(checkouts, checkoutTime, orderValue, walletCredits)
	return &SettlementMetrics{
		checkouts:     checkouts,
		checkoutTime:  checkoutTime,
		orderValue:    orderValue,
		walletCredits: walletCredits,
	}
}

// ObserveCheckout records one checkout attempt. outcome is "committed" or an error code.
func (m *SettlementMetrics) ObserveCheckout(method, outcome string, total int64, elapsed time.Duration) {
	if m == nil || m.checkouts == nil {
		return
	}
	method = normalizeLabel(method)
	m.checkouts.WithLabelValues(method, normalizeLabel(outcome)).Inc()
	m.checkoutTime.WithLabelValues(method).Observe(elapsed.Seconds())
	if outcome == OutcomeCommitted && total > 0 {
		m.orderValue.WithLabelValues(method).Add(float64(total))
	}
}

// ObserveWalletCredit records a deposit or card top-up attempt.
func (m *SettlementMetrics) ObserveWalletCredit(txType, outcome string) {
	if m == nil || m.walletCredits == nil {
		return
	}
	m.walletCredits.WithLabelValues(normalizeLabel(txType), normalizeLabel(outcome)).Inc()
}

// OutcomeCommitted labels operations whose transaction committed.
const OutcomeCommitted = "committed"

// Outcome maps an operation result to a label: committed, the error code, or "error".
func Outcome(err error) string {
	if err == nil {
		return OutcomeCommitted
	}
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return "error"
}
