package simulation

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
)

// ErrInvalidStep is returned when the playback step is not positive.
var ErrInvalidStep = errors.New("playback step must be positive")

// Frame is every owner's position at one instant. Owners without a resolved
// position are absent.
type Frame struct {
	At        time.Time
	Positions map[string]r2.Vec
}

// Playback samples all owner positions from the start of the timeline to its
// end, every step. The last frame is always the timeline end.
func Playback(p model.Project, step time.Duration) ([]Frame, error) {
	if step <= 0 {
		return nil, ErrInvalidStep
	}
	bounds, ok := TimelineBounds(p)
	if !ok {
		return nil, nil
	}
	layout := BuildLayout(p)
	owners := p.Owners()
	timelines := make([][]model.Session, len(owners))
	for i, o := range owners {
		timelines[i] = scheduler.OwnerSessions(p.Sessions, o.ID, o.Role)
	}

	var frames []Frame
	for at := bounds.Start; ; at = at.Add(step) {
		if at.After(bounds.End) {
			at = bounds.End
		}
		f := Frame{At: at, Positions: make(map[string]r2.Vec, len(owners))}
		for i, o := range owners {
			if pos, ok := PositionAt(timelines[i], layout, at); ok {
				f.Positions[o.ID] = pos
			}
		}
		frames = append(frames, f)
		if !at.Before(bounds.End) {
			break
		}
	}
	return frames, nil
}
