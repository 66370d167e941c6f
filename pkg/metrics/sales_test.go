package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNilReceiverIsSafe(t *testing.T) {
	var m *SaleMetrics
	m.IncSale("retail", "Cash")
	m.IncSaleFailure("INSUFFICIENT_STOCK")
	m.IncClaim("Completed")
	m.IncClaimFailure("NOT_FOUND")
	m.ObserveStoreCall("append_row", time.Millisecond)
}

func TestNilRegistererProducesNoOpMetrics(t *testing.T) {
	m := NewSaleMetrics(nil)
	m.IncSale("retail", "Cash")
	m.ObserveStoreCall("read_all", time.Millisecond)
}

func TestCountersRecordLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSaleMetrics(reg)

	m.IncSale("bulk", "Loan")
	m.IncSale("bulk", "Loan")
	m.IncSaleFailure("")
	m.ObserveStoreCall("write_range", 50*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, family := range families {
		byName[family.GetName()] = family
	}

	sales, ok := byName["sales_total"]
	if !ok {
		t.Fatal("sales_total not registered")
	}
	if got := sales.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected sales_total 2, got %v", got)
	}
	labels := map[string]string{}
	for _, pair := range sales.GetMetric()[0].GetLabel() {
		labels[pair.GetName()] = pair.GetValue()
	}
	if labels["sale_type"] != "bulk" || labels["payment_method"] != "Loan" {
		t.Fatalf("unexpected labels %v", labels)
	}

	failures, ok := byName["sale_failures_total"]
	if !ok {
		t.Fatal("sale_failures_total not registered")
	}
	failureLabels := failures.GetMetric()[0].GetLabel()
	if failureLabels[0].GetValue() != "unknown" {
		t.Fatalf("empty reason should normalize to unknown, got %q", failureLabels[0].GetValue())
	}

	if _, ok := byName["row_store_call_duration_seconds"]; !ok {
		t.Fatal("row_store_call_duration_seconds not registered")
	}
}
