package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector("test", registry)

	c.DocumentLoaded("ok", 5*time.Millisecond)
	c.DocumentLoaded("ok", time.Millisecond)
	c.DocumentLoaded("error", time.Millisecond)
	c.CanvasParsed("root")
	c.CanvasParsed("inline")
	c.CanvasParsed("inline")
	c.ValueNodeParsed("animated")
	c.ReferenceResolved()
	c.Diagnostic("inline_keyframe")

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"documents ok", testutil.ToFloat64(c.documentsLoaded.WithLabelValues("ok")), 2},
		{"documents error", testutil.ToFloat64(c.documentsLoaded.WithLabelValues("error")), 1},
		{"inline canvases", testutil.ToFloat64(c.canvasesParsed.WithLabelValues("inline")), 2},
		{"animated nodes", testutil.ToFloat64(c.valueNodesParsed.WithLabelValues("animated")), 1},
		{"references", testutil.ToFloat64(c.referencesResolved), 1},
		{"diagnostics", testutil.ToFloat64(c.diagnostics.WithLabelValues("inline_keyframe")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if n := testutil.CollectAndCount(c.loadDuration); n != 1 {
		t.Errorf("Expected 1 histogram series, got %d", n)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	// None of these may panic.
	c.DocumentLoaded("ok", time.Second)
	c.CanvasParsed("root")
	c.ValueNodeParsed("constant")
	c.ReferenceResolved()
	c.Diagnostic("x")
}
