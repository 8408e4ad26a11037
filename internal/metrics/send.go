package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sendAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sendd",
			Subsystem: "send",
			Name:      "attempts_total",
			Help:      "Total number of send submissions",
		},
		[]string{"mode", "status"}, // single/multi, ok/validation_error/broadcast_error
	)

	sendAmountSats = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "sendd",
			Subsystem: "send",
			Name:      "amount_sats",
			Help:      "Total satoshis per successful send request",
			Buckets:   prometheus.ExponentialBuckets(550, 10, 8),
		},
	)

	maxCalcTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sendd",
			Subsystem: "send",
			Name:      "max_amount_calculations_total",
			Help:      "Total number of max-amount calculations",
		},
		[]string{"status"}, // ok/error
	)

	priceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sendd",
			Subsystem: "price",
			Name:      "fetches_total",
			Help:      "Total number of fiat price fetches",
		},
		[]string{"status"}, // ok/error
	)
)

func statusLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// RecordSendAttempt records one submission outcome.
func RecordSendAttempt(mode, status string) {
	sendAttemptsTotal.WithLabelValues(mode, status).Inc()
}

// RecordSendAmount records the total satoshis of a successful send.
func RecordSendAmount(sats int64) {
	sendAmountSats.Observe(float64(sats))
}

// RecordMaxCalc records one max-amount calculation outcome.
func RecordMaxCalc(ok bool) {
	maxCalcTotal.WithLabelValues(statusLabel(ok)).Inc()
}

// RecordPriceFetch records one price poll outcome.
func RecordPriceFetch(ok bool) {
	priceFetchTotal.WithLabelValues(statusLabel(ok)).Inc()
}
