package tetraxr

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus collectors updated by the Playspace and Dispatcher.
type Metrics struct {
	PlayspacesCreated     prometheus.Counter
	PlayspacesAdopted     prometheus.Counter
	PlayspacesRenamed     prometheus.Counter
	PlayspacesReactivated prometheus.Counter
	DuplicatesDisabled    prometheus.Counter
	ActionsExecuted       prometheus.Counter
	QueueDepth            prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with the Registerer given. A nil Registerer leaves them unregistered,
// which is handy for tests and for hosts that don't export metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {

	m := &Metrics{
		PlayspacesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "playspace", Name: "created_total",
			Help: "Playspace nodes created because none could be adopted.",
		}),
		PlayspacesAdopted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "playspace", Name: "adopted_total",
			Help: "Existing nodes adopted as the playspace.",
		}),
		PlayspacesRenamed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "playspace", Name: "renamed_total",
			Help: "Camera parents renamed to the playspace name on adoption.",
		}),
		PlayspacesReactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "playspace", Name: "reactivated_total",
			Help: "Disabled playspace nodes re-enabled on adoption or access.",
		}),
		DuplicatesDisabled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "playspace", Name: "duplicates_disabled_total",
			Help: "Duplicate playspace nodes disabled during reconciliation.",
		}),
		ActionsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tetraxr", Subsystem: "dispatcher", Name: "actions_executed_total",
			Help: "Deferred actions run by the dispatcher.",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tetraxr", Subsystem: "dispatcher", Name: "queue_depth",
			Help: "Deferred actions waiting for the next drain.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.PlayspacesCreated,
			m.PlayspacesAdopted,
			m.PlayspacesRenamed,
			m.PlayspacesReactivated,
			m.DuplicatesDisabled,
			m.ActionsExecuted,
			m.QueueDepth,
		)
	}

	return m

}
