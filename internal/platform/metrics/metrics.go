package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsSubmitted *prometheus.CounterVec
	DelegationsSubmitted   *prometheus.CounterVec
	ExperienceParses       *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vofmun_registrations_submitted_total",
			Help: "Registration submissions by role and outcome",
		}, []string{"role", "outcome"}),
		DelegationsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vofmun_school_delegations_submitted_total",
			Help: "School delegation submissions by outcome",
		}, []string{"outcome"}),
		ExperienceParses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vofmun_experience_parses_total",
			Help: "AI experience parse attempts by role type and outcome",
		}, []string{"role_type", "outcome"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vofmun_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRegistration records one registration submission outcome.
func (m *Metrics) ObserveRegistration(role, outcome string) {
	if m == nil {
		return
	}
	m.RegistrationsSubmitted.WithLabelValues(role, outcome).Inc()
}

// ObserveDelegation records one school delegation submission outcome.
func (m *Metrics) ObserveDelegation(outcome string) {
	if m == nil {
		return
	}
	m.DelegationsSubmitted.WithLabelValues(outcome).Inc()
}

// ObserveExperienceParse records one parse attempt outcome.
func (m *Metrics) ObserveExperienceParse(roleType, outcome string) {
	if m == nil {
		return
	}
	m.ExperienceParses.WithLabelValues(roleType, outcome).Inc()
}
