package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("invalid document")
	// ErrOverlap matches any *OverlapError.
	ErrOverlap = errors.New("session overlap")
	// ErrDuplicateName matches any *DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrDuplicateID matches any *DuplicateIDError.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDuration is returned when a session would not end after it starts.
	ErrInvalidDuration = errors.New("duration must be positive")
)

// FieldIssue is one offending field of a rejected document.
type FieldIssue struct {
	Path    string
	Message string
}

func (i FieldIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every issue found in a document.
type ValidationError struct {
	Issues []FieldIssue
}

// Add records an issue.
func (e *ValidationError) Add(path, message string) {
	e.Issues = append(e.Issues, FieldIssue{Path: path, Message: message})
}

// HasIssues reports whether any issue was recorded.
func (e *ValidationError) HasIssues() bool {
	return e != nil && len(e.Issues) > 0
}

// Paths returns the offending field paths in report order.
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		paths = append(paths, i.Path)
	}
	return paths
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// OverlapError reports a session that would overlap another session of the
// same owner.
type OverlapError struct {
	SessionID     string
	ConflictingID string
	OwnerID       string
	Role          Role
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("session %s overlaps session %s of %s owner %s",
		e.SessionID, e.ConflictingID, strings.ToLower(string(e.Role)), e.OwnerID)
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }

// DuplicateNameError reports a catalog entry whose display name is taken.
type DuplicateNameError struct {
	Catalog string
	Name    string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Catalog, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// DuplicateIDError reports an entity whose id is already used by another
// entity of the same kind.
type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s id %q already in use", e.Kind, e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
