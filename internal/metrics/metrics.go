package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatch service collectors.
type Metrics struct {
	Requests              *prometheus.CounterVec // by priority and intent
	SafetyAlerts          prometheus.Counter
	TechnicianMatches     *prometheus.CounterVec // by match reason code
	CollaboratorFailures  *prometheus.CounterVec // by collaborator
	CollaboratorLatencyMs *prometheus.HistogramVec
	LeadWrites            *prometheus.CounterVec // by result
}

// New registers the collectors on reg. Tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_requests_total",
			Help: "Resolved dispatch requests",
		}, []string{"priority", "intent"}),
		SafetyAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_safety_alerts_total",
			Help: "Responses that carried the safety banner",
		}),
		TechnicianMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_technician_matches_total",
			Help: "Technician lookups by outcome",
		}, []string{"reason"}),
		CollaboratorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_collaborator_failures_total",
			Help: "Failed calls to the analysis or generation services",
		}, []string{"collaborator"}),
		CollaboratorLatencyMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_collaborator_latency_ms",
			Help:    "Latency of collaborator calls in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"collaborator"}),
		LeadWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_lead_writes_total",
			Help: "Lead log writes by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Requests, m.SafetyAlerts, m.TechnicianMatches, m.CollaboratorFailures, m.CollaboratorLatencyMs, m.LeadWrites)
	return m
}
