// Package scheduler places, moves and removes sessions while keeping the
// per-owner no-overlap invariant. Overlap is half-open: a session ending at
// the instant another begins does not conflict with it. Mutations are
// all-or-nothing and return a new project.
package scheduler
