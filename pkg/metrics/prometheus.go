// Package metrics provides Prometheus metrics for rota runs.
//
// rota is a short-lived CLI, so nothing is served over HTTP. Counters are
// collected on a private registry and flushed to a node_exporter textfile
// with WriteTextfile at the end of a run.
package metrics

import (
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every rota metric.
type Manager struct {
	namespace   string
	enabled     bool
	constLabels map[string]string
	registry    *prometheus.Registry

	generations        *prometheus.CounterVec
	generationFailures *prometheus.CounterVec
	generationDuration prometheus.Histogram
	warnings           *prometheus.CounterVec
	assignments        *prometheus.CounterVec
	rosterSize         prometheus.Gauge
	historySize        prometheus.Gauge
	duplicatesDropped  prometheus.Counter
	filesWritten       *prometheus.CounterVec
	filesCleaned       prometheus.Counter
	errors             *prometheus.CounterVec
	trialsRun          *prometheus.CounterVec
	lastGeneration     prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// Configure replaces the global manager with one built from opts. It is
// meant to run once at startup, before anything is recorded.
func Configure(opts ...Option) {
	globalManager = NewManager(opts...)
}

const subsystem = "scheduler"

// variableLabels are the per-sample label names; constant labels must not
// reuse them.
var variableLabels = []string{"mode", "reason", "kind", "category", "component"} //nolint:gochecknoglobals // fixed label set

// IsReservedLabel reports whether name is already used as a per-sample label.
func IsReservedLabel(name string) bool { return slices.Contains(variableLabels, name) }

// defaultBuckets covers generation times from sub-millisecond to a second.
var defaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 50, 100, 1000} //nolint:gochecknoglobals // constant buckets

// NewManager creates a new metrics manager on its own registry unless one is
// supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:   "rota",
		enabled:     true,
		constLabels: make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.generations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "generations_total",
		Help:        "Weekly schedules generated, by effective rotation mode",
		ConstLabels: labels,
	}, []string{"mode"})

	m.generationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "generation_failures_total",
		Help:        "Generation attempts that produced no schedule, by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.generationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "generation_duration_milliseconds",
		Help:        "Time spent building one weekly schedule",
		Buckets:     defaultBuckets,
		ConstLabels: labels,
	})

	m.warnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "warnings_total",
		Help:        "Non-fatal warnings raised during generation, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.assignments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "assignments_total",
		Help:        "Duty slots filled, by category",
		ConstLabels: labels,
	}, []string{"category"})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "roster_size",
		Help:        "People on the loaded roster",
		ConstLabels: labels,
	})

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "history_size",
		Help:        "People in the most recently written history",
		ConstLabels: labels,
	})

	m.duplicatesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "roster_duplicates_dropped_total",
		Help:        "Roster lines dropped because the name was already listed",
		ConstLabels: labels,
	})

	m.filesWritten = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "files_written_total",
		Help:        "Schedule and history files written, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.filesCleaned = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "files_cleaned_total",
		Help:        "Old schedule files removed by cleanup",
		ConstLabels: labels,
	})

	m.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "errors_total",
		Help:        "Errors by component",
		ConstLabels: labels,
	}, []string{"component"})

	m.trialsRun = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "trials_total",
		Help:        "Simulated generations run by the fairness trials, by mode",
		ConstLabels: labels,
	}, []string{"mode"})

	m.lastGeneration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   subsystem,
		Name:        "last_generation_timestamp_seconds",
		Help:        "Unix time of the last successful generation",
		ConstLabels: labels,
	})
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric in the manager's registry to path in the
// Prometheus text format. The file is replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Manager-level recorders. Each is a no-op when metrics are disabled.

func (m *Manager) RecordGeneration(mode string, durationMs float64, unixSeconds float64) {
	if !m.enabled {
		return
	}
	m.generations.WithLabelValues(mode).Inc()
	m.generationDuration.Observe(durationMs)
	m.lastGeneration.Set(unixSeconds)
}

func (m *Manager) RecordGenerationFailure(reason string) {
	if m.enabled {
		m.generationFailures.WithLabelValues(reason).Inc()
	}
}

func (m *Manager) RecordWarning(kind string) {
	if m.enabled {
		m.warnings.WithLabelValues(kind).Inc()
	}
}

func (m *Manager) RecordAssignments(category string, n int) {
	if m.enabled {
		m.assignments.WithLabelValues(category).Add(float64(n))
	}
}

func (m *Manager) UpdateRosterSize(n int) {
	if m.enabled {
		m.rosterSize.Set(float64(n))
	}
}

func (m *Manager) UpdateHistorySize(n int) {
	if m.enabled {
		m.historySize.Set(float64(n))
	}
}

func (m *Manager) RecordDuplicatesDropped(n int) {
	if m.enabled && n > 0 {
		m.duplicatesDropped.Add(float64(n))
	}
}

func (m *Manager) RecordFileWritten(kind string) {
	if m.enabled {
		m.filesWritten.WithLabelValues(kind).Inc()
	}
}

func (m *Manager) RecordFilesCleaned(n int) {
	if m.enabled {
		m.filesCleaned.Add(float64(n))
	}
}

func (m *Manager) RecordError(component string) {
	if m.enabled {
		m.errors.WithLabelValues(component).Inc()
	}
}

func (m *Manager) RecordTrials(mode string, n int) {
	if m.enabled {
		m.trialsRun.WithLabelValues(mode).Add(float64(n))
	}
}

// Global convenience wrappers.

// RecordGeneration records a successful generation on the global manager.
func RecordGeneration(mode string, durationMs float64, unixSeconds float64) {
	globalManager.RecordGeneration(mode, durationMs, unixSeconds)
}

// RecordGenerationFailure counts a failed generation.
func RecordGenerationFailure(reason string) { globalManager.RecordGenerationFailure(reason) }

// RecordWarning counts a generation warning by kind.
func RecordWarning(kind string) { globalManager.RecordWarning(kind) }

// RecordAssignments adds n filled slots for category.
func RecordAssignments(category string, n int) { globalManager.RecordAssignments(category, n) }

// UpdateRosterSize sets the roster size gauge.
func UpdateRosterSize(n int) { globalManager.UpdateRosterSize(n) }

// UpdateHistorySize sets the history size gauge.
func UpdateHistorySize(n int) { globalManager.UpdateHistorySize(n) }

// RecordDuplicatesDropped adds n dropped duplicate roster lines.
func RecordDuplicatesDropped(n int) { globalManager.RecordDuplicatesDropped(n) }

// RecordFileWritten counts a written file by kind.
func RecordFileWritten(kind string) { globalManager.RecordFileWritten(kind) }

// RecordFilesCleaned adds n removed files.
func RecordFilesCleaned(n int) { globalManager.RecordFilesCleaned(n) }

// RecordError counts an error for component.
func RecordError(component string) { globalManager.RecordError(component) }

// RecordTrials adds n simulated generations for mode.
func RecordTrials(mode string, n int) { globalManager.RecordTrials(mode, n) }

// WriteTextfile flushes the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the registry used by the global manager.
func GetRegistry() *prometheus.Registry { return globalManager.Registry() }
