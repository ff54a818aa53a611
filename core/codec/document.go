// Package codec converts projects to and from their JSON exchange form and
// validates documents coming from outside the engine.
package codec

import (
	"time"

	"github.com/kilianp07/eventplan/core/model"
)

// Document is the exchange form of a project. Pointer fields distinguish a
// missing value from a zero one.
type Document struct {
	ID            string            `json:"id" validate:"required"`
	Name          string            `json:"name" validate:"required"`
	Notes         string            `json:"notes,omitempty"`
	Dates         *DateRangeDoc     `json:"dates" validate:"required"`
	Locations     []LocationDoc     `json:"locations" validate:"required,dive"`
	Client        *OwnerDoc         `json:"client,omitempty" validate:"omitempty"`
	Staff         []OwnerDoc        `json:"staff" validate:"required,dive"`
	TaskTypes     []TaskTypeDoc     `json:"taskTypes" validate:"required,dive"`
	MaterialTypes []MaterialTypeDoc `json:"materialTypes" validate:"required,dive"`
	Sessions      []SessionDoc      `json:"sessions" validate:"required,dive"`
	CreatedAt     string            `json:"createdAt" validate:"required,instant"`
	UpdatedAt     string            `json:"updatedAt" validate:"required,instant"`
	SchemaVersion *int              `json:"schemaVersion" validate:"required"`
}

type DateRangeDoc struct {
	Start string `json:"start" validate:"required,instant"`
	End   string `json:"end" validate:"required,instant"`
}

type OwnerDoc struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role" validate:"required,oneof=CLIENT STAFF"`
}

type LocationDoc struct {
	ID   string   `json:"id" validate:"required"`
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Lng  *float64 `json:"lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type MaterialQtyDoc struct {
	MaterialID string   `json:"materialId" validate:"required"`
	Quantity   *float64 `json:"quantity" validate:"required,gte=0"`
}

type TaskTypeDoc struct {
	ID               string           `json:"id" validate:"required"`
	Name             string           `json:"name" validate:"required"`
	RequiresSubtasks bool             `json:"requiresSubtasks,omitempty"`
	DefaultMaterials []MaterialQtyDoc `json:"defaultMaterials,omitempty" validate:"omitempty,dive"`
}

type MaterialTypeDoc struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Unit string `json:"unit" validate:"required"`
}

type SessionDoc struct {
	ID         string           `json:"id" validate:"required"`
	OwnerID    string           `json:"ownerId" validate:"required"`
	OwnerRole  string           `json:"ownerRole" validate:"required,oneof=CLIENT STAFF"`
	Start      string           `json:"start" validate:"required,instant"`
	End        string           `json:"end" validate:"required,instant"`
	LocationID string           `json:"locationId,omitempty"`
	TaskID     string           `json:"taskId,omitempty"`
	Note       string           `json:"note,omitempty"`
	Materials  []MaterialQtyDoc `json:"materials,omitempty" validate:"omitempty,dive"`
}

// FromProject maps a project to its exchange form.
func FromProject(p model.Project) *Document {
	version := p.SchemaVersion
	doc := &Document{
		ID:    p.ID,
		Name:  p.Name,
		Notes: p.Notes,
		Dates: &DateRangeDoc{
			Start: formatInstant(p.Dates.Start),
			End:   formatInstant(p.Dates.End),
		},
		Locations:     make([]LocationDoc, 0, len(p.Locations)),
		Staff:         make([]OwnerDoc, 0, len(p.Staff)),
		TaskTypes:     make([]TaskTypeDoc, 0, len(p.TaskTypes)),
		MaterialTypes: make([]MaterialTypeDoc, 0, len(p.MaterialTypes)),
		Sessions:      make([]SessionDoc, 0, len(p.Sessions)),
		CreatedAt:     formatInstant(p.CreatedAt),
		UpdatedAt:     formatInstant(p.UpdatedAt),
		SchemaVersion: &version,
	}
	if p.Client != nil {
		c := fromOwner(*p.Client)
		doc.Client = &c
	}
	for _, l := range p.Locations {
		doc.Locations = append(doc.Locations, LocationDoc{ID: l.ID, Name: l.Name, Lat: copyFloat(l.Lat), Lng: copyFloat(l.Lng)})
	}
	for _, o := range p.Staff {
		doc.Staff = append(doc.Staff, fromOwner(o))
	}
	for _, t := range p.TaskTypes {
		doc.TaskTypes = append(doc.TaskTypes, TaskTypeDoc{
			ID:               t.ID,
			Name:             t.Name,
			RequiresSubtasks: t.RequiresSubtasks,
			DefaultMaterials: fromMaterials(t.DefaultMaterials),
		})
	}
	for _, m := range p.MaterialTypes {
		doc.MaterialTypes = append(doc.MaterialTypes, MaterialTypeDoc{ID: m.ID, Name: m.Name, Unit: m.Unit})
	}
	for _, s := range p.Sessions {
		doc.Sessions = append(doc.Sessions, SessionDoc{
			ID:         s.ID,
			OwnerID:    s.OwnerID,
			OwnerRole:  string(s.OwnerRole),
			Start:      formatInstant(s.Start),
			End:        formatInstant(s.End),
			LocationID: s.LocationID,
			TaskID:     s.TaskID,
			Note:       s.Note,
			Materials:  fromMaterials(s.Materials),
		})
	}
	return doc
}

// toProject maps a document that already passed validation. Instants are
// known to parse.
func toProject(d *Document) model.Project {
	p := model.Project{
		ID:    d.ID,
		Name:  d.Name,
		Notes: d.Notes,
		Dates: model.DateRange{
			Start: mustInstant(d.Dates.Start),
			End:   mustInstant(d.Dates.End),
		},
		Locations:     make([]model.Location, 0, len(d.Locations)),
		Staff:         make([]model.Owner, 0, len(d.Staff)),
		TaskTypes:     make([]model.TaskType, 0, len(d.TaskTypes)),
		MaterialTypes: make([]model.MaterialType, 0, len(d.MaterialTypes)),
		Sessions:      make([]model.Session, 0, len(d.Sessions)),
		CreatedAt:     mustInstant(d.CreatedAt),
		UpdatedAt:     mustInstant(d.UpdatedAt),
		SchemaVersion: *d.SchemaVersion,
	}
	if d.Client != nil {
		c := toOwner(*d.Client)
		p.Client = &c
	}
	for _, l := range d.Locations {
		p.Locations = append(p.Locations, model.Location{ID: l.ID, Name: l.Name, Lat: copyFloat(l.Lat), Lng: copyFloat(l.Lng)})
	}
	for _, o := range d.Staff {
		p.Staff = append(p.Staff, toOwner(o))
	}
	for _, t := range d.TaskTypes {
		p.TaskTypes = append(p.TaskTypes, model.TaskType{
			ID:               t.ID,
			Name:             t.Name,
			RequiresSubtasks: t.RequiresSubtasks,
			DefaultMaterials: toMaterials(t.DefaultMaterials),
		})
	}
	for _, m := range d.MaterialTypes {
		p.MaterialTypes = append(p.MaterialTypes, model.MaterialType{ID: m.ID, Name: m.Name, Unit: m.Unit})
	}
	for _, s := range d.Sessions {
		p.Sessions = append(p.Sessions, model.Session{
			ID:         s.ID,
			OwnerID:    s.OwnerID,
			OwnerRole:  model.Role(s.OwnerRole),
			Start:      mustInstant(s.Start),
			End:        mustInstant(s.End),
			LocationID: s.LocationID,
			TaskID:     s.TaskID,
			Note:       s.Note,
			Materials:  toMaterials(s.Materials),
		})
	}
	return p
}

func fromOwner(o model.Owner) OwnerDoc {
	return OwnerDoc{ID: o.ID, Name: o.Name, Email: o.Email, Phone: o.Phone, Role: string(o.Role)}
}

func toOwner(o OwnerDoc) model.Owner {
	return model.Owner{ID: o.ID, Name: o.Name, Email: o.Email, Phone: o.Phone, Role: model.Role(o.Role)}
}

func fromMaterials(in []model.MaterialQty) []MaterialQtyDoc {
	if len(in) == 0 {
		return nil
	}
	out := make([]MaterialQtyDoc, 0, len(in))
	for _, m := range in {
		q := m.Quantity
		out = append(out, MaterialQtyDoc{MaterialID: m.MaterialID, Quantity: &q})
	}
	return out
}

func toMaterials(in []MaterialQtyDoc) []model.MaterialQty {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.MaterialQty, 0, len(in))
	for _, m := range in {
		out = append(out, model.MaterialQty{MaterialID: m.MaterialID, Quantity: *m.Quantity})
	}
	return out
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(model.TimeLayout)
}

// parseInstant accepts any RFC 3339 instant with at most millisecond
// precision and returns it in UTC.
func parseInstant(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.Nanosecond()%int(time.Millisecond) != 0 {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func mustInstant(s string) time.Time {
	t, _ := parseInstant(s)
	return t
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
