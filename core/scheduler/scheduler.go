package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/eventplan/core/model"
)

// Defaults are copied onto every session created by a placement.
type Defaults struct {
	LocationID string
	TaskID     string
	Note       string
	Materials  []model.MaterialQty
}

// Placement describes a run of back-to-back sessions for one owner.
type Placement struct {
	Start     time.Time
	Durations []float64 // minutes, fractional allowed
	OwnerID   string
	OwnerRole model.Role
	Defaults  Defaults
}

// Scheduler creates and mutates sessions. The zero value uses the wall clock
// and random UUIDs.
type Scheduler struct {
	Now   func() time.Time
	NewID model.IDFunc
}

// New returns a Scheduler with default clock and id generator.
func New() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) now() time.Time {
	if s == nil || s.Now == nil {
		return model.Instant(time.Now())
	}
	return model.Instant(s.Now())
}

func (s *Scheduler) newID() string {
	if s == nil || s.NewID == nil {
		return model.NewID()
	}
	return s.NewID()
}

// Minutes converts fractional minutes to a duration at millisecond
// resolution.
func Minutes(m float64) time.Duration {
	return time.Duration(math.Round(m*60_000)) * time.Millisecond
}

// PlaceSequential builds one session per duration, each starting where the
// previous one ends. It does not check overlaps.
func (s *Scheduler) PlaceSequential(p Placement) ([]model.Session, error) {
	cursor := model.Instant(p.Start)
	sessions := make([]model.Session, 0, len(p.Durations))
	for i, minutes := range p.Durations {
		d := Minutes(minutes)
		if d <= 0 {
			return nil, fmt.Errorf("duration %d (%v min): %w", i, minutes, model.ErrInvalidDuration)
		}
		end := cursor.Add(d)
		sessions = append(sessions, model.Session{
			ID:         s.newID(),
			OwnerID:    p.OwnerID,
			OwnerRole:  p.OwnerRole,
			Start:      cursor,
			End:        end,
			LocationID: p.Defaults.LocationID,
			TaskID:     p.Defaults.TaskID,
			Note:       p.Defaults.Note,
			Materials:  model.CloneMaterials(p.Defaults.Materials),
		})
		cursor = end
	}
	return sessions, nil
}

// Insert adds sessions to the project. The new sessions are checked against
// the existing ones and against each other; on a reused id or any overlap
// nothing is added.
func (s *Scheduler) Insert(p model.Project, sessions ...model.Session) (model.Project, error) {
	combined := make([]model.Session, len(p.Sessions), len(p.Sessions)+len(sessions))
	copy(combined, p.Sessions)
	for _, cand := range sessions {
		if !cand.End.After(cand.Start) {
			return p, fmt.Errorf("session %s: %w", cand.ID, model.ErrInvalidDuration)
		}
		if indexOf(combined, cand.ID) >= 0 {
			return p, &model.DuplicateIDError{Kind: "session", ID: cand.ID}
		}
		if other, ok := findOverlap(combined, cand); ok {
			return p, overlapError(cand, other)
		}
		combined = append(combined, cand.Clone())
	}
	out := p.Touch(s.now())
	out.Sessions = Sort(combined)
	return out, nil
}

// Append places a sequential run and inserts it in one step.
func (s *Scheduler) Append(p model.Project, pl Placement) (model.Project, []model.Session, error) {
	sessions, err := s.PlaceSequential(pl)
	if err != nil {
		return p, nil, err
	}
	out, err := s.Insert(p, sessions...)
	if err != nil {
		return p, nil, err
	}
	return out, sessions, nil
}

// Update replaces the session with the same id.
func (s *Scheduler) Update(p model.Project, updated model.Session) (model.Project, error) {
	idx := indexOf(p.Sessions, updated.ID)
	if idx < 0 {
		return p, &model.NotFoundError{Kind: "session", ID: updated.ID}
	}
	if !updated.End.After(updated.Start) {
		return p, fmt.Errorf("session %s: %w", updated.ID, model.ErrInvalidDuration)
	}
	if other, ok := findOverlap(p.Sessions, updated); ok {
		return p, overlapError(updated, other)
	}
	out := p.Touch(s.now())
	out.Sessions[idx] = updated.Clone()
	out.Sessions = Sort(out.Sessions)
	return out, nil
}

// Shift moves a session by a signed number of minutes, keeping its duration.
func (s *Scheduler) Shift(p model.Project, id string, minutes float64) (model.Project, model.Session, error) {
	target, ok := p.FindSession(id)
	if !ok {
		return p, model.Session{}, &model.NotFoundError{Kind: "session", ID: id}
	}
	d := Minutes(minutes)
	target.Start = target.Start.Add(d)
	target.End = target.End.Add(d)
	return s.apply(p, target)
}

// Resize sets a session's end to its start plus minutes.
func (s *Scheduler) Resize(p model.Project, id string, minutes float64) (model.Project, model.Session, error) {
	target, ok := p.FindSession(id)
	if !ok {
		return p, model.Session{}, &model.NotFoundError{Kind: "session", ID: id}
	}
	target.End = target.Start.Add(Minutes(minutes))
	return s.apply(p, target)
}

// SetMaterials replaces a session's material list.
func (s *Scheduler) SetMaterials(p model.Project, id string, materials []model.MaterialQty) (model.Project, model.Session, error) {
	target, ok := p.FindSession(id)
	if !ok {
		return p, model.Session{}, &model.NotFoundError{Kind: "session", ID: id}
	}
	target.Materials = model.CloneMaterials(materials)
	return s.apply(p, target)
}

// Remove deletes a session. Unknown ids leave the project untouched.
func (s *Scheduler) Remove(p model.Project, id string) (model.Project, bool) {
	idx := indexOf(p.Sessions, id)
	if idx < 0 {
		return p, false
	}
	out := p.Touch(s.now())
	out.Sessions = append(out.Sessions[:idx], out.Sessions[idx+1:]...)
	return out, true
}

func (s *Scheduler) apply(p model.Project, target model.Session) (model.Project, model.Session, error) {
	out, err := s.Update(p, target)
	if err != nil {
		return p, model.Session{}, err
	}
	return out, target, nil
}

func indexOf(sessions []model.Session, id string) int {
	for i, s := range sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func overlapError(cand, other model.Session) error {
	return &model.OverlapError{
		SessionID:     cand.ID,
		ConflictingID: other.ID,
		OwnerID:       cand.OwnerID,
		Role:          cand.OwnerRole,
	}
}
