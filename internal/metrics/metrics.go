package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PaymentSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_submissions_total",
			Help: "Payment confirmation submissions by outcome",
		},
		[]string{"outcome"},
	)

	BillsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bills_by_status",
			Help: "Current number of maintenance bills per status",
		},
		[]string{"status"},
	)

	MaintenanceCollectedTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "maintenance_collected_rupees",
			Help: "Sum of amounts over paid maintenance bills",
		},
	)
)
