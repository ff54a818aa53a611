package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/eventplan/config"
	coremetrics "github.com/kilianp07/eventplan/core/metrics"
)

// TextfileSink keeps editor metrics on a private registry and writes them
// in the Prometheus text format on Flush, for collection by a node exporter
// textfile collector.
type TextfileSink struct {
	*PromSink
	path string
	reg  *prometheus.Registry
}

// NewTextfileSink returns a sink that writes to path.
func NewTextfileSink(path string) (*TextfileSink, error) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	return &TextfileSink{PromSink: prom, path: path, reg: reg}, nil
}

// Gatherer exposes the private registry.
func (s *TextfileSink) Gatherer() prometheus.Gatherer { return s.reg }

// Flush writes the current metrics atomically.
func (s *TextfileSink) Flush() error {
	if err := prometheus.WriteToTextfile(s.path, s.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// New builds the sink described by cfg. Without a textfile it returns a
// NopSink.
func New(cfg config.MetricsConfig) (coremetrics.MetricsSink, error) {
	if !cfg.Enabled() {
		return coremetrics.NopSink{}, nil
	}
	return NewTextfileSink(cfg.Textfile)
}
