package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes de una reasignación.
const (
	OutcomeAssigned    = "assigned"
	OutcomeNoCandidate = "no_candidate"
	OutcomeChainLimit  = "chain_limit"
)

// Metrics agrupa los collectors del servicio. Cada instancia tiene su propio
// registry para que los tests puedan crear routers sin colisiones.
type Metrics struct {
	Registry *prometheus.Registry

	Reassignments *prometheus.CounterVec
	Created       *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		Reassignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifesaver",
			Name:      "reassignments_total",
			Help:      "Declined life saver requests by reassignment outcome.",
		}, []string{"outcome"}),
		Created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifesaver",
			Name:      "entities_created_total",
			Help:      "Entities created by kind.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lifesaver",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
	}

	reg.MustRegister(
		m.Reassignments,
		m.Created,
		m.HTTPRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Reassignment(outcome string) {
	if m == nil {
		return
	}
	m.Reassignments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EntityCreated(kind string) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(kind).Inc()
}

func (m *Metrics) HTTPRequest(method string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}
