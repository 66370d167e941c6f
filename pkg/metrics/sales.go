package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SaleMetrics records sale and warranty-claim outcomes plus row store call
// latency.
type SaleMetrics struct {
	sales         *prometheus.CounterVec
	saleFailures  *prometheus.CounterVec
	claims        *prometheus.CounterVec
	claimFailures *prometheus.CounterVec
	storeCalls    *prometheus.HistogramVec
}

// NewSaleMetrics registers the sale metrics on the provided registerer.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	sales := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_total",
		Help: "Completed sales by sale type and payment method.",
	}, []string{"sale_type", "payment_method"})
	saleFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_failures_total",
		Help: "Rejected or failed sales by error code.",
	}, []string{"reason"})
	claims := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warranty_claims_total",
		Help: "Completed warranty claims.",
	}, []string{"status"})
	claimFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warranty_claim_failures_total",
		Help: "Rejected or failed warranty claims by error code.",
	}, []string{"reason"})
	storeCalls := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "row_store_call_duration_seconds",
		Help:    "Duration of row store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(sales, saleFailures, claims, claimFailures, storeCalls)
	return &SaleMetrics{
		sales:         sales,
		saleFailures:  saleFailures,
		claims:        claims,
		claimFailures: claimFailures,
		storeCalls:    storeCalls,
	}
}

// IncSale increments the completed sale counter.
func (m *SaleMetrics) IncSale(saleType, paymentMethod string) {
	if m == nil || m.sales == nil {
		return
	}
	m.sales.WithLabelValues(normalizeLabel(saleType), normalizeLabel(paymentMethod)).Inc()
}

// IncSaleFailure increments the failed sale counter for the given reason.
func (m *SaleMetrics) IncSaleFailure(reason string) {
	if m == nil || m.saleFailures == nil {
		return
	}
	m.saleFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncClaim increments the completed claim counter.
func (m *SaleMetrics) IncClaim(status string) {
	if m == nil || m.claims == nil {
		return
	}
	m.claims.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncClaimFailure increments the failed claim counter for the given reason.
func (m *SaleMetrics) IncClaimFailure(reason string) {
	if m == nil || m.claimFailures == nil {
		return
	}
	m.claimFailures.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveStoreCall records the duration of a row store operation.
func (m *SaleMetrics) ObserveStoreCall(operation string, duration time.Duration) {
	if m == nil || m.storeCalls == nil {
		return
	}
	m.storeCalls.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
