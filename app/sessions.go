package app

import (
	"github.com/kilianp07/eventplan/core/materials"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
)

// AppendSessions places back-to-back sessions and inserts them all, or none
// when any of them overlaps.
func (e *Editor) AppendSessions(pl scheduler.Placement) ([]model.Session, error) {
	var created []model.Session
	_, err := e.mutate("append_sessions", func(p model.Project) (model.Project, error) {
		next, sessions, err := e.sched.Append(p, pl)
		created = sessions
		return next, err
	})
	return created, err
}

// UpdateSession replaces the session with the same id.
func (e *Editor) UpdateSession(s model.Session) (model.Project, error) {
	return e.mutate("update_session", func(p model.Project) (model.Project, error) {
		return e.sched.Update(p, s)
	})
}

// ShiftSession moves a session by minutes, keeping its duration.
func (e *Editor) ShiftSession(id string, minutes float64) (model.Session, error) {
	return e.sessionCommand("shift_session", func(p model.Project) (model.Project, model.Session, error) {
		return e.sched.Shift(p, id, minutes)
	})
}

// ResizeSession sets a session's duration in minutes, keeping its start.
func (e *Editor) ResizeSession(id string, minutes float64) (model.Session, error) {
	return e.sessionCommand("resize_session", func(p model.Project) (model.Project, model.Session, error) {
		return e.sched.Resize(p, id, minutes)
	})
}

// SetSessionMaterials replaces a session's materials.
func (e *Editor) SetSessionMaterials(id string, mats []model.MaterialQty) (model.Session, error) {
	return e.sessionCommand("set_session_materials", func(p model.Project) (model.Project, model.Session, error) {
		return e.sched.SetMaterials(p, id, mats)
	})
}

// RemoveSession deletes a session. Removing an unknown id succeeds and
// reports false.
func (e *Editor) RemoveSession(id string) (bool, error) {
	var removed bool
	_, err := e.mutate("remove_session", func(p model.Project) (model.Project, error) {
		next, ok := e.sched.Remove(p, id)
		removed = ok
		return next, nil
	})
	return removed, err
}

// Materials rolls up the open document's materials.
func (e *Editor) Materials(opts ...materials.Option) (materials.Result, error) {
	p, ok := e.Project()
	if !ok {
		return materials.Result{}, ErrNoProject
	}
	return materials.Aggregate(p, opts...), nil
}

// Summary totals one owner's scheduled time.
func (e *Editor) Summary(ownerID string) (scheduler.Summary, error) {
	p, ok := e.Project()
	if !ok {
		return scheduler.Summary{}, ErrNoProject
	}
	return scheduler.Summarize(p.Sessions, ownerID), nil
}

func (e *Editor) sessionCommand(command string, fn func(model.Project) (model.Project, model.Session, error)) (model.Session, error) {
	var s model.Session
	_, err := e.mutate(command, func(p model.Project) (model.Project, error) {
		next, changed, err := fn(p)
		s = changed
		return next, err
	})
	return s, err
}
