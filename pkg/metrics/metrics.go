package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Document store metrics
	StoreOperations *prometheus.CounterVec
	StoreLatency    *prometheus.HistogramVec
	SeedLoads       *prometheus.CounterVec

	// Intake bridge metrics
	IntakeSubmissions prometheus.Counter
	IntakeReconciled  *prometheus.CounterVec
	IntakePending     prometheus.Gauge
	WorkerRuns        *prometheus.CounterVec
}

// NewMetrics creates the application metrics and registers them with reg.
// A nil registerer leaves them unregistered, which is what tests want.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of document store operations",
		}, []string{"operation", "status"}),
		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of document store operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		SeedLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "seed_loads_total",
			Help:      "Seed document fetch attempts by source",
		}, []string{"source", "status"}),

		IntakeSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total number of public intake forms accepted",
		}),
		IntakeReconciled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "reconciled_total",
			Help:      "Intake forms merged into the client list",
		}, []string{"outcome"}),
		IntakePending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "pending",
			Help:      "1 while a submitted intake form awaits reconciliation",
		}),
		WorkerRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "worker_runs_total",
			Help:      "Intake worker passes by result",
		}, []string{"status"}),
	}
}

// ObserveStore records one store operation. Safe on a nil receiver.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.StoreOperations.WithLabelValues(operation, status(err)).Inc()
}

func (m *Metrics) ObserveSeed(source string, err error) {
	if m == nil {
		return
	}
	m.SeedLoads.WithLabelValues(source, status(err)).Inc()
}

func (m *Metrics) IntakeSubmitted() {
	if m == nil {
		return
	}
	m.IntakeSubmissions.Inc()
	m.IntakePending.Set(1)
}

func (m *Metrics) IntakeMerged(created bool) {
	if m == nil {
		return
	}
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.IntakeReconciled.WithLabelValues(outcome).Inc()
	m.IntakePending.Set(0)
}

func (m *Metrics) WorkerRun(err error) {
	if m == nil {
		return
	}
	m.WorkerRuns.WithLabelValues(status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
