package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/eventplan/app"
	"github.com/kilianp07/eventplan/core/model"
)

func newLocationCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "location", Short: "Location catalog commands"}
	var lat, lng float64
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a location, optionally with coordinates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := model.Location{Name: args[0]}
			hasLat, hasLng := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
			if hasLat != hasLng {
				return fmt.Errorf("--lat and --lng must be given together")
			}
			if hasLat {
				loc.Lat, loc.Lng = &lat, &lng
			}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				added, err := ed.AddLocation(loc)
				if err != nil {
					return err
				}
				return printID(cmd, "location", added.ID)
			})
		},
	}
	add.Flags().Float64Var(&lat, "lat", 0, "latitude")
	add.Flags().Float64Var(&lng, "lng", 0, "longitude")
	c.AddCommand(add)
	return c
}

func newTaskCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "task", Short: "Task type catalog commands"}
	var subtasks bool
	var mats []string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a task type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := parseMaterials(mats)
			if err != nil {
				return err
			}
			t := model.TaskType{Name: args[0], RequiresSubtasks: subtasks, DefaultMaterials: defaults}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				added, err := ed.AddTaskType(t)
				if err != nil {
					return err
				}
				return printID(cmd, "task", added.ID)
			})
		},
	}
	add.Flags().BoolVar(&subtasks, "requires-subtasks", false, "task is split into subtasks")
	add.Flags().StringSliceVar(&mats, "material", nil, "default material as id=quantity (repeatable)")
	c.AddCommand(add)
	return c
}

func newMaterialCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "material", Short: "Material type catalog commands"}
	var unit string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a material type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				added, err := ed.AddMaterialType(model.MaterialType{Name: args[0], Unit: unit})
				if err != nil {
					return err
				}
				return printID(cmd, "material", added.ID)
			})
		},
	}
	add.Flags().StringVar(&unit, "unit", "", "unit of measure")
	_ = add.MarkFlagRequired("unit")
	c.AddCommand(add)
	return c
}

func newStaffCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "staff", Short: "Staff commands"}
	var email, phone string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				added, err := ed.AddStaff(model.Owner{Name: args[0], Email: email, Phone: phone})
				if err != nil {
					return err
				}
				return printID(cmd, "staff", added.ID)
			})
		},
	}
	add.Flags().StringVar(&email, "email", "", "email address")
	add.Flags().StringVar(&phone, "phone", "", "phone number")
	c.AddCommand(add)
	return c
}

func printID(cmd *cobra.Command, kind, id string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", kind, id)
	return err
}
