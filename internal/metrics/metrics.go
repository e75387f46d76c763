// Package metrics exposes Prometheus counters for ledger activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pocketledger"

// Warning types.
const (
	WarningBudgetExceeded = "budget_exceeded"
	WarningOverspend      = "overspend"
	WarningNotFound       = "category_not_found"
)

// Recorder receives ledger events. Implementations must be cheap; they are
// called on every command.
type Recorder interface {
	TransactionRecorded(kind string)
	WarningRaised(warningType string)
	ValidationFailed(operation string)
	CommandHandled(command string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) TransactionRecorded(string) {}
func (Nop) WarningRaised(string)       {}
func (Nop) ValidationFailed(string)    {}
func (Nop) CommandHandled(string)      {}

// Metrics is a Recorder backed by its own Prometheus registry.
type Metrics struct {
	registry           *prometheus.Registry
	transactions       *prometheus.CounterVec
	warnings           *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	commands           *prometheus.CounterVec
}

var _ Recorder = (*Metrics)(nil)

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Ledger entries appended, by kind.",
		}, []string{"kind"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Advisory warnings returned to the user, by type.",
		}, []string{"type"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected write operations, by operation.",
		}, []string{"operation"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Console commands handled, by command name.",
		}, []string{"command"}),
	}

	m.registry.MustRegister(
		m.transactions,
		m.warnings,
		m.validationFailures,
		m.commands,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) TransactionRecorded(kind string) {
	m.transactions.WithLabelValues(kind).Inc()
}

func (m *Metrics) WarningRaised(warningType string) {
	m.warnings.WithLabelValues(warningType).Inc()
}

func (m *Metrics) ValidationFailed(operation string) {
	m.validationFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) CommandHandled(command string) {
	m.commands.WithLabelValues(command).Inc()
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
