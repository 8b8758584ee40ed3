package metrics

import (
	"strings"
	"testing"
)

func TestRegistryIsIndependent(t *testing.T) {
	// Each registry is private, so two invocations never share counters.
	first := NewRegistry()
	second := NewRegistry()

	first.StatementsParsed.Add(3)

	summary, err := second.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if strings.Contains(summary, "agraph_statements_parsed_total 3") {
		t.Error("Registries must not share state")
	}
}

func TestSummaryFormatsSamples(t *testing.T) {
	reg := NewRegistry()
	reg.StatementsParsed.Add(4)
	reg.VerticesBuilt.Set(7)
	reg.ExpressionsTotal.WithLabelValues("query", "ok").Inc()
	reg.QueryDuration.Observe(0.002)

	summary, err := reg.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	for _, want := range []string{
		"agraph_statements_parsed_total 4",
		"agraph_vertices 7",
		"agraph_expressions_total{class=query,status=ok} 1",
		"agraph_expression_duration_seconds count=1",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q:\n%s", want, summary)
		}
	}

	// Lines come out sorted by metric name.
	lines := strings.Split(summary, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i-1] > lines[i] {
			t.Errorf("Summary lines unsorted: %q before %q", lines[i-1], lines[i])
		}
	}
}
