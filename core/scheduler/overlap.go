package scheduler

import (
	"sort"
	"time"

	"github.com/kilianp07/eventplan/core/model"
)

// Overlaps reports whether two distinct sessions intersect as half-open
// intervals. Every overlap check in the engine reduces to this function.
func Overlaps(a, b model.Session) bool {
	if a.ID == b.ID {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OwnerHasOverlap reports whether candidate overlaps a session sharing its
// owner id and owner role.
func OwnerHasOverlap(sessions []model.Session, candidate model.Session) bool {
	_, ok := findOverlap(sessions, candidate)
	return ok
}

func findOverlap(sessions []model.Session, candidate model.Session) (model.Session, bool) {
	for _, s := range sessions {
		if s.OwnerID != candidate.OwnerID || s.OwnerRole != candidate.OwnerRole {
			continue
		}
		if Overlaps(s, candidate) {
			return s, true
		}
	}
	return model.Session{}, false
}

// Sort returns the sessions ordered by start. Equal starts keep their input
// order.
func Sort(sessions []model.Session) []model.Session {
	out := make([]model.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// OwnerSessions filters the sessions of one owner timeline.
func OwnerSessions(sessions []model.Session, ownerID string, role model.Role) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if s.OwnerID == ownerID && s.OwnerRole == role {
			out = append(out, s)
		}
	}
	return out
}

// Summary is the scheduled load of one owner.
type Summary struct {
	TotalMinutes float64 `json:"total_minutes"`
	Count        int     `json:"count"`
}

// Summarize totals the sessions of ownerID.
func Summarize(sessions []model.Session, ownerID string) Summary {
	var sum Summary
	var total time.Duration
	for _, s := range sessions {
		if s.OwnerID != ownerID {
			continue
		}
		sum.Count++
		total += s.Duration()
	}
	sum.TotalMinutes = total.Minutes()
	return sum
}
