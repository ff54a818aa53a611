package metrics

import (
	"testing"

	coremetrics "github.com/kilianp07/eventplan/core/metrics"
)

type recordSink struct {
	count   int
	flushed bool
}

func (r *recordSink) RecordCommand(coremetrics.CommandEvent) error {
	r.count++
	return nil
}

func (r *recordSink) RecordDocument(coremetrics.DocumentStats) error {
	r.count++
	return nil
}

func (r *recordSink) Flush() error {
	r.flushed = true
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, coremetrics.NopSink{})
	if err := m.RecordCommand(coremetrics.CommandEvent{Command: "append"}); err != nil {
		t.Fatalf("record command: %v", err)
	}
	if err := m.RecordDocument(coremetrics.DocumentStats{Sessions: 1}); err != nil {
		t.Fatalf("record document: %v", err)
	}
	if err := m.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("events not forwarded")
	}
	if !s1.flushed || !s2.flushed {
		t.Fatalf("flush not forwarded")
	}
}
