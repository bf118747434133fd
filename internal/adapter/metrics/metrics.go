package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xcommerce_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xcommerce_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xcommerce_checkouts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
)

const (
	CheckoutOutcomeSuccess    = "success"
	CheckoutOutcomeOutOfStock = "out_of_stock"
	CheckoutOutcomeRejected   = "rejected"
	CheckoutOutcomeError      = "error"
)
