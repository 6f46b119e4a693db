package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "store_operations_total", Help: "Count of collection load/save operations"},
		[]string{"collection", "op", "result"},
	)
	storeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Latency of collection load/save operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "op"},
	)
)

func init() { prometheus.MustRegister(storeOpsTotal, storeLatency) }

func observe(name Name, op, result string, start time.Time) {
	storeOpsTotal.WithLabelValues(string(name), op, result).Inc()
	storeLatency.WithLabelValues(string(name), op).Observe(time.Since(start).Seconds())
}
