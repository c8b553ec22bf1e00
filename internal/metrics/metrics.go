// Package metrics exposes scheduling run metrics through a Prometheus
// registry that can be written as a node_exporter textfile.
package metrics

import (
	"time"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/scheduler"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "rueda"

// Recorder holds the run metrics on its own registry so a process can record
// several runs without touching the default registerer.
type Recorder struct {
	reg *prometheus.Registry

	committed   *prometheus.CounterVec
	fulfilled   prometheus.Gauge
	total       prometheus.Gauge
	unscheduled *prometheus.GaugeVec
	conflicts   prometheus.Gauge
	duration    prometheus.Histogram
}

// New creates a Recorder with every metric registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_committed_total",
			Help:      "Meetings committed, by scheduling pass.",
		}, []string{"phase"}),
		fulfilled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "preferences_fulfilled",
			Help:      "Preferences realised by the last run.",
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "preferences_total",
			Help:      "Preferences considered by the last run.",
		}),
		unscheduled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unscheduled_participants",
			Help:      "Participants left without any meeting, by role.",
		}, []string{"role"}),
		conflicts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "schedule_conflicts",
			Help:      "Conflicts found by the validator in the last run.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a scheduling run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		}),
	}
	r.reg.MustRegister(r.committed, r.fulfilled, r.total, r.unscheduled, r.conflicts, r.duration)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Record stores the outcome of one run.
func (r *Recorder) Record(stats scheduler.Stats, shortfalls []domain.Shortfall, conflicts int, elapsed time.Duration) {
	for _, phase := range domain.PhaseOrder {
		r.committed.WithLabelValues(string(phase)).Add(float64(stats.ByPhase[phase]))
	}
	r.fulfilled.Set(float64(stats.PreferencesFulfilled))
	r.total.Set(float64(stats.PreferencesTotal))

	unscheduled := map[domain.Role]int{domain.RoleRequester: 0, domain.RoleProvider: 0}
	for _, s := range shortfalls {
		if s.Kind == domain.ShortfallUnscheduled {
			unscheduled[s.Role]++
		}
	}
	for role, n := range unscheduled {
		r.unscheduled.WithLabelValues(string(role)).Set(float64(n))
	}

	r.conflicts.Set(float64(conflicts))
	r.duration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
