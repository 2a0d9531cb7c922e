package logfile

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FramesAppendedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kv_log_frames_appended_total",
			Help: "Total number of frames appended to the log.",
		},
	)

	BytesAppendedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kv_log_bytes_appended_total",
			Help: "Total number of bytes appended to the log.",
		},
	)

	AppendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kv_log_append_duration_seconds",
			Help:    "Duration of frame appends including the sync policy in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16),
		},
	)

	FramesReadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kv_log_frames_read_total",
			Help: "Total number of frames read from the log.",
		},
	)

	TornTailTruncationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kv_log_torn_tail_truncations_total",
			Help: "Total number of incomplete bytes removed from the end of the log before appending.",
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		FramesAppendedTotal,
		BytesAppendedTotal,
		AppendDuration,
		FramesReadTotal,
		TornTailTruncationsTotal,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
