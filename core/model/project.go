// Package model defines the event plan document: the project, its owners,
// catalogs and scheduled sessions. Mutations return new Project values and
// never modify the receiver.
package model

import (
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the only document version this engine reads or writes.
const SchemaVersion = 1

// TimeLayout is the exchange form of every instant. It is fixed width in UTC
// so string order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// DefaultClientName labels the client placeholder created with a new project.
const DefaultClientName = "Primary client"

// Role tells whether an owner is the client or a staff member.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleStaff  Role = "STAFF"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleStaff
}

// Owner is a person sessions belong to.
type Owner struct {
	ID    string
	Name  string
	Email string
	Phone string
	Role  Role
}

// Location is a physical place sessions can be bound to.
type Location struct {
	ID   string
	Name string
	Lat  *float64
	Lng  *float64
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// MaterialQty assigns a quantity of a catalog material to a session.
type MaterialQty struct {
	MaterialID string
	Quantity   float64
}

// TaskType is a task catalog entry.
type TaskType struct {
	ID               string
	Name             string
	RequiresSubtasks bool
	DefaultMaterials []MaterialQty
}

// MaterialType is a material catalog entry.
type MaterialType struct {
	ID   string
	Name string
	Unit string
}

// Session is a time-boxed activity owned by one owner. End is exclusive.
type Session struct {
	ID         string
	OwnerID    string
	OwnerRole  Role
	Start      time.Time
	End        time.Time
	LocationID string
	TaskID     string
	Note       string
	Materials  []MaterialQty
}

// Duration returns End - Start.
func (s Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Clone returns a copy of s that shares no slices with it.
func (s Session) Clone() Session {
	s.Materials = CloneMaterials(s.Materials)
	return s
}

// DateRange is the planned span of the event.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Project is the persisted document.
type Project struct {
	ID            string
	Name          string
	Notes         string
	Dates         DateRange
	Locations     []Location
	Client        *Owner
	Staff         []Owner
	TaskTypes     []TaskType
	MaterialTypes []MaterialType
	Sessions      []Session
	CreatedAt     time.Time
	UpdatedAt     time.Time
	SchemaVersion int
}

// IDFunc generates identifiers for new entities.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }

// Instant normalizes t to the resolution and zone documents store.
func Instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NewProject creates an empty document with a client placeholder.
func NewProject(name string, start, end, now time.Time, ids IDFunc) Project {
	if ids == nil {
		ids = NewID
	}
	now = Instant(now)
	return Project{
		ID:    ids(),
		Name:  name,
		Dates: DateRange{Start: Instant(start), End: Instant(end)},
		Client: &Owner{
			ID:   ids(),
			Name: DefaultClientName,
			Role: RoleClient,
		},
		Locations:     []Location{},
		Staff:         []Owner{},
		TaskTypes:     []TaskType{},
		MaterialTypes: []MaterialType{},
		Sessions:      []Session{},
		CreatedAt:     now,
		UpdatedAt:     now,
		SchemaVersion: SchemaVersion,
	}
}

// Touch returns a copy of p with UpdatedAt set to now.
func (p Project) Touch(now time.Time) Project {
	out := p.Clone()
	out.UpdatedAt = Instant(now)
	return out
}

// Clone deep copies p.
func (p Project) Clone() Project {
	out := p
	if p.Client != nil {
		c := *p.Client
		out.Client = &c
	}
	out.Locations = cloneSlice(p.Locations, func(l Location) Location {
		l.Lat = cloneFloat(l.Lat)
		l.Lng = cloneFloat(l.Lng)
		return l
	})
	out.Staff = cloneSlice(p.Staff, nil)
	out.TaskTypes = cloneSlice(p.TaskTypes, func(t TaskType) TaskType {
		t.DefaultMaterials = CloneMaterials(t.DefaultMaterials)
		return t
	})
	out.MaterialTypes = cloneSlice(p.MaterialTypes, nil)
	out.Sessions = cloneSlice(p.Sessions, Session.Clone)
	return out
}

// FindSession returns the session with the given id.
func (p Project) FindSession(id string) (Session, bool) {
	for _, s := range p.Sessions {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return Session{}, false
}

// Owner looks an owner up by id among the client and the staff.
func (p Project) Owner(id string) (Owner, bool) {
	if p.Client != nil && p.Client.ID == id {
		return *p.Client, true
	}
	for _, o := range p.Staff {
		if o.ID == id {
			return o, true
		}
	}
	return Owner{}, false
}

// Owners lists the client first, then the staff in insertion order.
func (p Project) Owners() []Owner {
	owners := make([]Owner, 0, len(p.Staff)+1)
	if p.Client != nil {
		owners = append(owners, *p.Client)
	}
	return append(owners, p.Staff...)
}

// CloneMaterials copies a material list. Empty lists become nil.
func CloneMaterials(in []MaterialQty) []MaterialQty {
	if len(in) == 0 {
		return nil
	}
	out := make([]MaterialQty, len(in))
	copy(out, in)
	return out
}

func cloneSlice[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		if fn != nil {
			v = fn(v)
		}
		out[i] = v
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
