package metrics

import (
	"errors"
	"time"

	"github.com/kilianp07/eventplan/core/model"
)

// Command outcomes used as metric labels.
const (
	ResultOK              = "ok"
	ResultValidation      = "validation"
	ResultOverlap         = "overlap"
	ResultDuplicateName   = "duplicate_name"
	ResultDuplicateID     = "duplicate_id"
	ResultNotFound        = "not_found"
	ResultInvalidDuration = "invalid_duration"
	ResultError           = "error"
)

// CommandEvent describes one editor command.
type CommandEvent struct {
	Command  string
	Err      error
	Duration time.Duration
	Time     time.Time
}

// Result classifies the command error into a small label set.
func (e CommandEvent) Result() string {
	switch {
	case e.Err == nil:
		return ResultOK
	case errors.Is(e.Err, model.ErrValidation):
		return ResultValidation
	case errors.Is(e.Err, model.ErrOverlap):
		return ResultOverlap
	case errors.Is(e.Err, model.ErrDuplicateName):
		return ResultDuplicateName
	case errors.Is(e.Err, model.ErrDuplicateID):
		return ResultDuplicateID
	case errors.Is(e.Err, model.ErrNotFound):
		return ResultNotFound
	case errors.Is(e.Err, model.ErrInvalidDuration):
		return ResultInvalidDuration
	default:
		return ResultError
	}
}

// MetricsSink records editor commands for observability purposes.
type MetricsSink interface {
	RecordCommand(ev CommandEvent) error
}

// DocumentStats counts the entities of the open document.
type DocumentStats struct {
	Sessions      int
	Locations     int
	Staff         int
	TaskTypes     int
	MaterialTypes int
}

// StatsOf counts the entities of p.
func StatsOf(p model.Project) DocumentStats {
	return DocumentStats{
		Sessions:      len(p.Sessions),
		Locations:     len(p.Locations),
		Staff:         len(p.Staff),
		TaskTypes:     len(p.TaskTypes),
		MaterialTypes: len(p.MaterialTypes),
	}
}

// DocumentRecorder records the document size after a command.
type DocumentRecorder interface {
	RecordDocument(st DocumentStats) error
}

// Flusher is implemented by sinks that buffer until explicitly written.
type Flusher interface {
	Flush() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordCommand(CommandEvent) error   { return nil }
func (NopSink) RecordDocument(DocumentStats) error { return nil }
