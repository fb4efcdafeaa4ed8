// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClicksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_clicks_recorded_total",
		Help: "Banner clicks credited to a wallet",
	})

	ClicksRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wallet_clicks_rejected_total",
		Help: "Banner clicks refused because the daily quota was used up",
	})

	WithdrawalsRequested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_withdrawals_requested_total",
		Help: "Withdrawal requests created, by payout method",
	}, []string{"method"})

	WithdrawalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_withdrawal_transitions_total",
		Help: "Administrator withdrawal status changes, by target status",
	}, []string{"status"})

	TxRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_tx_retries_total",
		Help: "Ledger transactions retried after a concurrent update conflict",
	}, []string{"operation"})

	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wallet_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wallet_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})
)

// Middleware records request count and latency labelled by the chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpReqTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
