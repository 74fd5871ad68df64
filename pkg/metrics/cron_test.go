package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func TestCronJobMetricsRecordsResultAndLastSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	finished := time.Unix(1_760_000_000, 0)
	m.ObserveRun("cart-cleanup", nil, 250*time.Millisecond, finished)
	m.ObserveRun("cart-cleanup", errors.New("db down"), 10*time.Millisecond, finished.Add(time.Hour))
	m.IncSkipped()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	runs := findMetricFamily(mfs, "cron_job_runs_total")
	if runs == nil {
		t.Fatal("cron_job_runs_total not exported")
	}
	results := map[string]float64{}
	for _, metric := range runs.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "result" {
				results[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	if results["ok"] != 1 || results["error"] != 1 {
		t.Fatalf("unexpected run counts %v", results)
	}

	last := findMetricFamily(mfs, "cron_job_last_success_timestamp_seconds")
	if last == nil || last.GetMetric()[0].GetGauge().GetValue() != float64(finished.Unix()) {
		t.Fatalf("last success should stay at the successful run, got %v", last)
	}

	if got, err := fetchHistogramSum(mfs, "cron_job_duration_seconds", "job", "cart-cleanup"); err != nil || got <= 0.25 {
		t.Fatalf("expected both runs in the histogram, got %f err=%v", got, err)
	}
	skipped := findMetricFamily(mfs, "cron_cycles_skipped_total")
	if skipped == nil || skipped.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatal("expected one skipped cycle")
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

func TestSettlementMetricsCountsCommittedValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSettlementMetrics(reg)
	m.ObserveCheckout("WALLET", OutcomeCommitted, 240000, 30*time.Millisecond)
	m.ObserveCheckout("WALLET", "INSUFFICIENT_BALANCE", 500000, 10*time.Millisecond)
	m.ObserveWalletCredit("CARD_TOPUP", OutcomeCommitted)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "order_value_vnd_total", "payment_method", "WALLET"); err != nil || got != 240000 {
		t.Fatalf("expected committed value 240000, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "checkout_total", "outcome", "INSUFFICIENT_BALANCE"); err != nil || got != 1 {
		t.Fatalf("expected one rejected checkout, got %f err=%v", got, err)
	}
	if got, err := fetchCounterValue(mfs, "wallet_credit_total", "type", "CARD_TOPUP"); err != nil || got != 1 {
		t.Fatalf("expected one card credit, got %f err=%v", got, err)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewSettlementMetrics(nil).ObserveCheckout("COD", OutcomeCommitted, 1, time.Millisecond)
	NewHTTPMetrics(nil).Observe("/api/orders", "GET", 200, time.Millisecond)
	NewOutboxMetrics(nil).SetBacklog(3)
	NewCronJobMetrics(nil).ObserveRun("job", nil, time.Millisecond, time.Now())
}

func TestOutcomeLabels(t *testing.T) {
	if got := Outcome(nil); got != OutcomeCommitted {
		t.Fatalf("expected committed, got %s", got)
	}
	if got := Outcome(pkgerrors.New(pkgerrors.CodeCardAlreadyUsed, "used")); got != "CARD_ALREADY_USED" {
		t.Fatalf("expected code label, got %s", got)
	}
	if got := Outcome(errors.New("boom")); got != "error" {
		t.Fatalf("expected generic label, got %s", got)
	}
}

func TestEmptyLabelsReportAsUnknown(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewOutboxMetrics(reg).IncPublished("")
	NewHTTPMetrics(reg).Observe("", "GET", 200, time.Millisecond)
	NewCronJobMetrics(reg).ObserveRun("", nil, time.Millisecond, time.Now())

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, tc := range []struct{ name, label string }{
		{"outbox_published_total", "event_type"},
		{"http_requests_total", "route"},
		{"cron_job_runs_total", "job"},
	} {
		if got, err := fetchCounterValue(mfs, tc.name, tc.label, "unknown"); err != nil || got != 1 {
			t.Fatalf("%s: expected one sample labelled unknown, got %f err=%v", tc.name, got, err)
		}
	}
}
