package kv

import (
	"github.com/prometheus/client_golang/prometheus"

	intlogfile "github.com/backbone81/walkv/internal/logfile"
	intstore "github.com/backbone81/walkv/internal/store"
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	if err := intstore.RegisterMetrics(registerer); err != nil {
		return err
	}
	if err := intlogfile.RegisterMetrics(registerer); err != nil {
		return err
	}
	return nil
}
