package model

import "time"

// Catalog names used in DuplicateNameError.
const (
	CatalogLocation = "location"
	CatalogTask     = "task"
	CatalogMaterial = "material"
)

// AddLocation appends loc to the location catalog. A missing id is generated.
func (p Project) AddLocation(loc Location, now time.Time, ids IDFunc) (Project, Location, error) {
	for _, l := range p.Locations {
		if l.Name == loc.Name {
			return p, Location{}, &DuplicateNameError{Catalog: CatalogLocation, Name: loc.Name}
		}
	}
	loc.ID = orNewID(loc.ID, ids)
	for _, l := range p.Locations {
		if l.ID == loc.ID {
			return p, Location{}, &DuplicateIDError{Kind: CatalogLocation, ID: loc.ID}
		}
	}
	loc.Lat = cloneFloat(loc.Lat)
	loc.Lng = cloneFloat(loc.Lng)
	out := p.Touch(now)
	out.Locations = append(out.Locations, loc)
	return out, loc, nil
}

// AddTaskType appends t to the task catalog.
func (p Project) AddTaskType(t TaskType, now time.Time, ids IDFunc) (Project, TaskType, error) {
	for _, existing := range p.TaskTypes {
		if existing.Name == t.Name {
			return p, TaskType{}, &DuplicateNameError{Catalog: CatalogTask, Name: t.Name}
		}
	}
	t.ID = orNewID(t.ID, ids)
	for _, existing := range p.TaskTypes {
		if existing.ID == t.ID {
			return p, TaskType{}, &DuplicateIDError{Kind: CatalogTask, ID: t.ID}
		}
	}
	t.DefaultMaterials = CloneMaterials(t.DefaultMaterials)
	out := p.Touch(now)
	out.TaskTypes = append(out.TaskTypes, t)
	return out, t, nil
}

// AddMaterialType appends m to the material catalog.
func (p Project) AddMaterialType(m MaterialType, now time.Time, ids IDFunc) (Project, MaterialType, error) {
	for _, existing := range p.MaterialTypes {
		if existing.Name == m.Name {
			return p, MaterialType{}, &DuplicateNameError{Catalog: CatalogMaterial, Name: m.Name}
		}
	}
	m.ID = orNewID(m.ID, ids)
	for _, existing := range p.MaterialTypes {
		if existing.ID == m.ID {
			return p, MaterialType{}, &DuplicateIDError{Kind: CatalogMaterial, ID: m.ID}
		}
	}
	out := p.Touch(now)
	out.MaterialTypes = append(out.MaterialTypes, m)
	return out, m, nil
}

// AddStaff appends a staff member. The role is forced to STAFF. The id must
// not be taken by the client or another staff member.
func (p Project) AddStaff(o Owner, now time.Time, ids IDFunc) (Project, Owner, error) {
	o.ID = orNewID(o.ID, ids)
	if _, taken := p.Owner(o.ID); taken {
		return p, Owner{}, &DuplicateIDError{Kind: "owner", ID: o.ID}
	}
	o.Role = RoleStaff
	out := p.Touch(now)
	out.Staff = append(out.Staff, o)
	return out, o, nil
}

// ClientPatch holds the client fields a caller may change. Nil leaves the
// field untouched.
type ClientPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// UpdateClient patches the client display fields. Identity and role never
// change.
func (p Project) UpdateClient(patch ClientPatch, now time.Time) (Project, error) {
	if p.Client == nil {
		return p, &NotFoundError{Kind: "client", ID: ""}
	}
	out := p.Touch(now)
	if patch.Name != nil {
		out.Client.Name = *patch.Name
	}
	if patch.Email != nil {
		out.Client.Email = *patch.Email
	}
	if patch.Phone != nil {
		out.Client.Phone = *patch.Phone
	}
	return out, nil
}

// DetailsPatch holds the project header fields a caller may change.
type DetailsPatch struct {
	Name  *string
	Notes *string
	Dates *DateRange
}

// UpdateDetails patches the project name, notes and date range.
func (p Project) UpdateDetails(patch DetailsPatch, now time.Time) Project {
	out := p.Touch(now)
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Notes != nil {
		out.Notes = *patch.Notes
	}
	if patch.Dates != nil {
		out.Dates = DateRange{Start: Instant(patch.Dates.Start), End: Instant(patch.Dates.End)}
	}
	return out
}

func orNewID(id string, ids IDFunc) string {
	if id != "" {
		return id
	}
	if ids == nil {
		ids = NewID
	}
	return ids()
}
