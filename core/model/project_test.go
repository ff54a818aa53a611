package model

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs(prefix string) IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewProject(t *testing.T) {
	now := time.Date(2024, 2, 1, 12, 0, 0, 123456789, time.FixedZone("CET", 3600))
	p := NewProject("Gala", t0, t0.Add(24*time.Hour), now, seqIDs("id-"))

	assert.Equal(t, "id-1", p.ID)
	require.NotNil(t, p.Client)
	assert.Equal(t, "id-2", p.Client.ID)
	assert.Equal(t, RoleClient, p.Client.Role)
	assert.Equal(t, DefaultClientName, p.Client.Name)
	assert.Equal(t, SchemaVersion, p.SchemaVersion)
	assert.Equal(t, time.Date(2024, 2, 1, 11, 0, 0, 123000000, time.UTC), p.CreatedAt)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.NotNil(t, p.Sessions)
	assert.Empty(t, p.Sessions)
}

func TestCloneIsDeep(t *testing.T) {
	lat := 40.0
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	p.Locations = append(p.Locations, Location{ID: "l1", Name: "Hall", Lat: &lat})
	p.Sessions = append(p.Sessions, Session{ID: "s1", Materials: []MaterialQty{{MaterialID: "m1", Quantity: 1}}})

	c := p.Clone()
	*c.Locations[0].Lat = 1
	c.Sessions[0].Materials[0].Quantity = 9
	c.Client.Name = "changed"

	assert.Equal(t, 40.0, *p.Locations[0].Lat)
	assert.Equal(t, 1.0, p.Sessions[0].Materials[0].Quantity)
	assert.Equal(t, DefaultClientName, p.Client.Name)
}

func TestAddCatalogEntriesRejectDuplicates(t *testing.T) {
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	later := t0.Add(time.Hour)

	p, loc, err := p.AddLocation(Location{Name: "Hall"}, later, seqIDs("loc-"))
	require.NoError(t, err)
	assert.Equal(t, "loc-1", loc.ID)
	assert.Equal(t, later, p.UpdatedAt)

	before := p.Clone()
	_, _, err = p.AddLocation(Location{Name: "Hall"}, later.Add(time.Hour), nil)
	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, CatalogLocation, dup.Catalog)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, before, p)

	p, _, err = p.AddTaskType(TaskType{ID: "t1", Name: "Setup"}, later, nil)
	require.NoError(t, err)
	_, _, err = p.AddTaskType(TaskType{Name: "Setup"}, later, nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, p.TaskTypes, 1)

	p, m, err := p.AddMaterialType(MaterialType{Name: "Chair", Unit: "unit"}, later, seqIDs("mat-"))
	require.NoError(t, err)
	assert.Equal(t, "mat-1", m.ID)
	_, _, err = p.AddMaterialType(MaterialType{Name: "Chair", Unit: "box"}, later, nil)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, p.MaterialTypes, 1)
}

func TestAddStaffForcesRole(t *testing.T) {
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	p, o, err := p.AddStaff(Owner{Name: "Ana", Role: RoleClient}, t0, seqIDs("st-"))
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, o.Role)
	assert.Equal(t, "st-1", o.ID)

	got, ok := p.Owner("st-1")
	require.True(t, ok)
	assert.Equal(t, "Ana", got.Name)
	assert.Len(t, p.Owners(), 2)
}

func TestAddCatalogEntriesRejectTakenIDs(t *testing.T) {
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	p, _, err := p.AddLocation(Location{ID: "loc", Name: "Hall"}, t0, nil)
	require.NoError(t, err)
	p, _, err = p.AddTaskType(TaskType{ID: "task", Name: "Setup"}, t0, nil)
	require.NoError(t, err)
	p, _, err = p.AddMaterialType(MaterialType{ID: "mat", Name: "Chair"}, t0, nil)
	require.NoError(t, err)
	p, _, err = p.AddStaff(Owner{ID: "ana", Name: "Ana"}, t0, nil)
	require.NoError(t, err)
	before := p.Clone()

	_, _, err = p.AddLocation(Location{ID: "loc", Name: "Lobby"}, t0, nil)
	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, CatalogLocation, dup.Kind)
	assert.Equal(t, "loc", dup.ID)

	_, _, err = p.AddTaskType(TaskType{ID: "task", Name: "Teardown"}, t0, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, _, err = p.AddMaterialType(MaterialType{ID: "mat", Name: "Table"}, t0, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, _, err = p.AddStaff(Owner{ID: "ana", Name: "Other Ana"}, t0, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, _, err = p.AddStaff(Owner{ID: p.Client.ID, Name: "Client twin"}, t0, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.False(t, errors.Is(err, ErrDuplicateName))

	assert.Equal(t, before, p)
}

func TestUpdateClient(t *testing.T) {
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	name := "ACME"
	out, err := p.UpdateClient(ClientPatch{Name: &name}, t0)
	require.NoError(t, err)
	assert.Equal(t, "ACME", out.Client.Name)
	assert.Equal(t, RoleClient, out.Client.Role)
	assert.Equal(t, DefaultClientName, p.Client.Name)

	p.Client = nil
	_, err = p.UpdateClient(ClientPatch{Name: &name}, t0)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateDetails(t *testing.T) {
	p := NewProject("Gala", t0, t0, t0, seqIDs("id-"))
	notes := "bring badges"
	out := p.UpdateDetails(DetailsPatch{Notes: &notes}, t0.Add(time.Minute))
	assert.Equal(t, "Gala", out.Name)
	assert.Equal(t, notes, out.Notes)
	assert.Equal(t, t0.Add(time.Minute), out.UpdatedAt)
}

func TestErrorsMessages(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("sessions[0].end", "is required")
	verr.Add("schemaVersion", "must equal 1")
	assert.True(t, verr.HasIssues())
	assert.Equal(t, []string{"sessions[0].end", "schemaVersion"}, verr.Paths())
	assert.Equal(t, "validation failed: sessions[0].end: is required; schemaVersion: must equal 1", verr.Error())
	assert.ErrorIs(t, verr, ErrValidation)

	oerr := &OverlapError{SessionID: "a", ConflictingID: "b", OwnerID: "o", Role: RoleStaff}
	assert.Equal(t, "session a overlaps session b of staff owner o", oerr.Error())
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", oerr), ErrOverlap)
}
