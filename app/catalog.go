package app

import (
	"github.com/kilianp07/eventplan/core/model"
)

// AddLocation adds a location with a unique name.
func (e *Editor) AddLocation(loc model.Location) (model.Location, error) {
	var added model.Location
	_, err := e.mutate("add_location", func(p model.Project) (model.Project, error) {
		next, l, err := p.AddLocation(loc, e.now(), e.ids)
		added = l
		return next, err
	})
	return added, err
}

// AddTaskType adds a task type with a unique name.
func (e *Editor) AddTaskType(t model.TaskType) (model.TaskType, error) {
	var added model.TaskType
	_, err := e.mutate("add_task_type", func(p model.Project) (model.Project, error) {
		next, tt, err := p.AddTaskType(t, e.now(), e.ids)
		added = tt
		return next, err
	})
	return added, err
}

// AddMaterialType adds a material type with a unique name.
func (e *Editor) AddMaterialType(m model.MaterialType) (model.MaterialType, error) {
	var added model.MaterialType
	_, err := e.mutate("add_material_type", func(p model.Project) (model.Project, error) {
		next, mt, err := p.AddMaterialType(m, e.now(), e.ids)
		added = mt
		return next, err
	})
	return added, err
}

// AddStaff appends a staff member.
func (e *Editor) AddStaff(o model.Owner) (model.Owner, error) {
	var added model.Owner
	_, err := e.mutate("add_staff", func(p model.Project) (model.Project, error) {
		next, st, err := p.AddStaff(o, e.now(), e.ids)
		added = st
		return next, err
	})
	return added, err
}

// UpdateClient patches the client owner.
func (e *Editor) UpdateClient(patch model.ClientPatch) (model.Project, error) {
	return e.mutate("update_client", func(p model.Project) (model.Project, error) {
		return p.UpdateClient(patch, e.now())
	})
}

// UpdateDetails patches the document header.
func (e *Editor) UpdateDetails(patch model.DetailsPatch) (model.Project, error) {
	return e.mutate("update_details", func(p model.Project) (model.Project, error) {
		return p.UpdateDetails(patch, e.now()), nil
	})
}
