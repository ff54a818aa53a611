package metrics

import coremetrics "github.com/kilianp07/eventplan/core/metrics"

// MultiSink fanouts editor events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCommand forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordCommand(ev coremetrics.CommandEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommand(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordDocument forwards document stats when supported by the sink.
func (m *MultiSink) RecordDocument(st coremetrics.DocumentStats) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.DocumentRecorder); ok {
			if err := rec.RecordDocument(st); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink that buffers.
func (m *MultiSink) Flush() error {
	for _, s := range m.Sinks {
		if f, ok := s.(coremetrics.Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
