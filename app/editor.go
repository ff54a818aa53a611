// Package app holds the document editor: the single owner of the open
// document. Every command returns the new state or a typed error; the
// document is only persisted when Save is called.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kilianp07/eventplan/config"
	"github.com/kilianp07/eventplan/core/codec"
	coremetrics "github.com/kilianp07/eventplan/core/metrics"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
	"github.com/kilianp07/eventplan/infra/logger"
	"github.com/kilianp07/eventplan/infra/metrics"
	"github.com/kilianp07/eventplan/infra/store"
)

// ErrNoProject is returned by commands that need an open document.
var ErrNoProject = errors.New("no project open")

// Editor owns at most one open document.
type Editor struct {
	mu      sync.Mutex
	project *model.Project

	sched *scheduler.Scheduler
	slot  store.Store
	sink  coremetrics.MetricsSink
	log   logger.Logger
	now   func() time.Time
	ids   model.IDFunc
}

// Option customizes an Editor.
type Option func(*Editor)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option { return func(e *Editor) { e.now = now } }

// WithIDs replaces the id generator.
func WithIDs(ids model.IDFunc) Option { return func(e *Editor) { e.ids = ids } }

// WithSink sets the metrics sink.
func WithSink(s coremetrics.MetricsSink) Option { return func(e *Editor) { e.sink = s } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(e *Editor) { e.log = l } }

// NewEditor returns an editor persisting to slot. A nil slot disables
// Save, Restore and the slot clearing of Reset.
func NewEditor(slot store.Store, opts ...Option) *Editor {
	e := &Editor{
		slot: slot,
		sink: coremetrics.NopSink{},
		log:  logger.NopLogger{},
		now:  time.Now,
		ids:  model.NewID,
	}
	for _, o := range opts {
		o(e)
	}
	e.sched = &scheduler.Scheduler{Now: e.now, NewID: e.ids}
	return e
}

// New creates an Editor from the configuration.
func New(cfg *config.Config) (*Editor, error) {
	slot, err := store.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("autosave slot: %w", err)
	}
	return NewWithSlot(cfg, slot)
}

// NewWithSlot creates an Editor persisting to slot instead of the
// configured store.
func NewWithSlot(cfg *config.Config, slot store.Store) (*Editor, error) {
	sink, err := metrics.New(cfg.Metrics)
	if err != nil {
		_ = slot.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return NewEditor(slot, WithSink(sink), WithLogger(logger.New("editor"))), nil
}

// Close flushes metrics and releases the slot.
func (e *Editor) Close() error {
	var errs []error
	if f, ok := e.sink.(coremetrics.Flusher); ok {
		errs = append(errs, f.Flush())
	}
	if e.slot != nil {
		errs = append(errs, e.slot.Close())
	}
	return errors.Join(errs...)
}

// Project returns a copy of the open document.
func (e *Editor) Project() (model.Project, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.project == nil {
		return model.Project{}, false
	}
	return e.project.Clone(), true
}

// Create opens a new empty document, replacing any open one.
func (e *Editor) Create(name string, dates model.DateRange) model.Project {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	p := model.NewProject(name, dates.Start, dates.End, e.now(), e.ids)
	e.project = &p
	e.observe("create", start, nil)
	e.log.Infof("created project %s (%s)", p.ID, p.Name)
	return p.Clone()
}

// Open replaces the open document with the decoded data.
func (e *Editor) Open(data []byte) (model.Project, error) {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	p, err := codec.Deserialize(data)
	if err == nil {
		e.project = &p
		p = p.Clone()
	}
	e.observe("open", start, err)
	return p, err
}

// Restore opens the document held by the autosave slot. The boolean is
// false when the slot is empty.
func (e *Editor) Restore(ctx context.Context) (model.Project, bool, error) {
	if e.slot == nil {
		return model.Project{}, false, nil
	}
	data, ok, err := e.slot.Load(ctx)
	if err != nil {
		return model.Project{}, false, fmt.Errorf("load autosave: %w", err)
	}
	if !ok {
		return model.Project{}, false, nil
	}
	p, err := e.Open(data)
	if err != nil {
		return model.Project{}, false, fmt.Errorf("restore autosave: %w", err)
	}
	return p, true, nil
}

// Reset discards the open document and empties the autosave slot.
func (e *Editor) Reset(ctx context.Context) error {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = nil
	var err error
	if e.slot != nil {
		err = e.slot.Clear(ctx)
	}
	e.observe("reset", start, err)
	return err
}

// Export serializes the open document.
func (e *Editor) Export() ([]byte, error) {
	p, ok := e.Project()
	if !ok {
		return nil, ErrNoProject
	}
	return codec.Serialize(p)
}

// Save serializes the open document into the autosave slot.
func (e *Editor) Save(ctx context.Context) error {
	start := time.Now()
	data, err := e.Export()
	if err == nil && e.slot != nil {
		err = e.slot.Save(ctx, data)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observe("save", start, err)
	return err
}

// mutate runs fn against the open document and keeps its result on success.
func (e *Editor) mutate(command string, fn func(p model.Project) (model.Project, error)) (model.Project, error) {
	start := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	var (
		next model.Project
		err  error
	)
	if e.project == nil {
		err = ErrNoProject
	} else {
		next, err = fn(*e.project)
	}
	if err == nil {
		e.project = &next
	}
	e.observe(command, start, err)
	if err != nil {
		return next, err
	}
	return next.Clone(), nil
}

func (e *Editor) observe(command string, start time.Time, err error) {
	ev := coremetrics.CommandEvent{Command: command, Err: err, Duration: time.Since(start), Time: start}
	if rerr := e.sink.RecordCommand(ev); rerr != nil {
		e.log.Errorf("record %s: %v", command, rerr)
	}
	if err != nil {
		e.log.Warnf("%s failed: %v", command, err)
		return
	}
	if e.project == nil {
		e.log.Debugf("%s ok", command)
		return
	}
	stats := coremetrics.StatsOf(*e.project)
	e.log.Debugw(command+" ok", map[string]any{
		"project":  e.project.ID,
		"sessions": stats.Sessions,
		"duration": ev.Duration.String(),
	})
	if rec, ok := e.sink.(coremetrics.DocumentRecorder); ok {
		if rerr := rec.RecordDocument(stats); rerr != nil {
			e.log.Errorf("record document: %v", rerr)
		}
	}
}
