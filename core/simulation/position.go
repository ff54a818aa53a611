package simulation

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
)

// PositionAt returns where an owner is at the given instant, derived from
// that owner's sessions in any order. Inside a session (ends inclusive) the
// session's location is returned; between two sessions the position moves in
// a straight line from the previous location to the next one. Before the
// first session and after the last the nearest session's location holds.
// The boolean is false when no location resolves.
func PositionAt(sessions []model.Session, layout Layout, at time.Time) (r2.Vec, bool) {
	if len(sessions) == 0 {
		return r2.Vec{}, false
	}
	sorted := scheduler.Sort(sessions)
	for i, s := range sorted {
		if !at.Before(s.Start) && !at.After(s.End) {
			return locate(s, layout)
		}
		if !at.Before(s.Start) {
			continue
		}
		if i == 0 {
			return locate(s, layout)
		}
		return travel(sorted[i-1], s, layout, at)
	}
	return locate(sorted[len(sorted)-1], layout)
}

func travel(prev, next model.Session, layout Layout, at time.Time) (r2.Vec, bool) {
	from, okFrom := locate(prev, layout)
	to, okTo := locate(next, layout)
	if okFrom && okTo {
		window := next.Start.Sub(prev.End)
		if window > 0 {
			ratio := float64(at.Sub(prev.End)) / float64(window)
			if ratio >= 0 && ratio <= 1 {
				return lerp(from, to, ratio), true
			}
		}
	}
	if okFrom {
		return from, true
	}
	return to, okTo
}

func lerp(a, b r2.Vec, ratio float64) r2.Vec {
	return r2.Add(a, r2.Scale(ratio, r2.Sub(b, a)))
}

func locate(s model.Session, layout Layout) (r2.Vec, bool) {
	if s.LocationID == "" {
		return r2.Vec{}, false
	}
	p, ok := layout[s.LocationID]
	return p, ok
}

// Bounds is the visible span of the timeline.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// TimelineBounds returns the earliest start and latest end over all
// sessions of all owners.
func TimelineBounds(p model.Project) (Bounds, bool) {
	if len(p.Sessions) == 0 {
		return Bounds{}, false
	}
	b := Bounds{Start: p.Sessions[0].Start, End: p.Sessions[0].End}
	for _, s := range p.Sessions[1:] {
		if s.Start.Before(b.Start) {
			b.Start = s.Start
		}
		if s.End.After(b.End) {
			b.End = s.End
		}
	}
	return b, true
}
