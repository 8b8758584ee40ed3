// Package metrics instruments the parse/build/evaluate/export pipeline with
// Prometheus collectors on a private registry. The tool runs one invocation
// and exits, so there is no HTTP exposition; a gathered summary can be
// printed at the end of a run instead.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the pipeline collectors.
type Registry struct {
	registry *prometheus.Registry

	StatementsParsed prometheus.Counter
	ParseErrors      prometheus.Counter
	BuildErrors      prometheus.Counter

	VerticesBuilt prometheus.Gauge
	EdgesBuilt    prometheus.Gauge

	ExpressionsTotal *prometheus.CounterVec
	QueryDuration    prometheus.Histogram

	ExportsTotal prometheus.Counter
}

// NewRegistry creates a registry with all pipeline collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.StatementsParsed = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "agraph_statements_parsed_total",
		Help: "Total number of specification statements parsed",
	})
	r.ParseErrors = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "agraph_parse_errors_total",
		Help: "Total number of specification parse errors",
	})
	r.BuildErrors = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "agraph_build_errors_total",
		Help: "Total number of graph build errors",
	})

	r.VerticesBuilt = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "agraph_vertices",
		Help: "Number of vertices in the built graph",
	})
	r.EdgesBuilt = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "agraph_edges",
		Help: "Number of access relations in the built graph",
	})

	r.ExpressionsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "agraph_expressions_total",
		Help: "Total number of query/transform expressions evaluated",
	}, []string{"class", "status"})
	r.QueryDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "agraph_expression_duration_seconds",
		Help:    "Expression evaluation duration in seconds",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
	})
	r.ExportsTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "agraph_exports_total",
		Help: "Total number of graph descriptions exported",
	})

	return r
}

// Summary gathers the registry and formats every sample as one line, sorted
// by metric name. Intended for a --stats dump at the end of a run.
func (r *Registry) Summary() (string, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			if pairs := m.GetLabel(); len(pairs) > 0 {
				parts := make([]string, 0, len(pairs))
				for _, p := range pairs {
					parts = append(parts, p.GetName()+"="+p.GetValue())
				}
				labels = "{" + strings.Join(parts, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g",
					family.GetName(), labels, m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g",
					family.GetName(), labels, m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s%s count=%d sum=%g",
					family.GetName(), labels, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}

	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}
