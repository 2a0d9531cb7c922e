package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	operationGet    = "get"
	operationSet    = "set"
	operationDelete = "delete"

	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
)

var (
	Keys = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kv_store_keys",
			Help: "Number of keys in the store opened last.",
		},
	)

	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_store_operations_total",
			Help: "Total number of store operations by operation and result.",
		},
		[]string{"operation", "result"},
	)

	ReplayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kv_store_replay_duration_seconds",
			Help:    "Duration of replaying the log when opening the store in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		Keys,
		OperationsTotal,
		ReplayDuration,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
