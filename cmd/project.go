package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/eventplan/app"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/infra/logger"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var name, start, end string
	var force bool
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new empty project",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dates, err := parseRange(start, end)
			if err != nil {
				return err
			}
			ed, err := opts.newEditor()
			if err != nil {
				return err
			}
			defer func() {
				if cerr := ed.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			if !force {
				if _, ok, _ := ed.Restore(cmd.Context()); ok {
					return fmt.Errorf("a project already exists in %s; use --force to replace it", opts.location())
				}
			}
			p := ed.Create(name, dates)
			if err := ed.Save(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created project %s\n", p.ID)
			return err
		},
	}
	c.Flags().StringVar(&name, "name", "", "project name")
	c.Flags().StringVar(&start, "start", "", "first day (RFC 3339)")
	c.Flags().StringVar(&end, "end", "", "last day (RFC 3339)")
	c.Flags().BoolVar(&force, "force", false, "replace an existing project")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("start")
	_ = c.MarkFlagRequired("end")
	return c
}

func parseRange(start, end string) (model.DateRange, error) {
	s, err := parseInstant(start)
	if err != nil {
		return model.DateRange{}, err
	}
	e, err := parseInstant(end)
	if err != nil {
		return model.DateRange{}, err
	}
	if e.Before(s) {
		return model.DateRange{}, fmt.Errorf("end %s is before start %s", end, start)
	}
	return model.DateRange{Start: s, End: e}, nil
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the project document against the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "valid: %s (%d sessions)\n", p.Name, len(p.Sessions))
				return err
			})
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					if _, werr := fmt.Fprintln(cmd.OutOrStdout(), issue.String()); werr != nil {
						logger.New("cli").Errorf("write issue: %v", werr)
					}
				}
			}
			return err
		},
	}
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the project header and catalog sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				w := cmd.OutOrStdout()
				client := "-"
				if p.Client != nil {
					client = p.Client.Name
				}
				_, err := fmt.Fprintf(w, "id:        %s\nname:      %s\ndates:     %s .. %s\nclient:    %s\nstaff:     %d\nlocations: %d\ntasks:     %d\nmaterials: %d\nsessions:  %d\nupdated:   %s\n",
					p.ID, p.Name, formatInstant(p.Dates.Start), formatInstant(p.Dates.End), client,
					len(p.Staff), len(p.Locations), len(p.TaskTypes), len(p.MaterialTypes), len(p.Sessions),
					formatInstant(p.UpdatedAt))
				return err
			})
		},
	}
}

func newClientCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "client", Short: "Client owner commands"}
	var name, email, phone string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update the client's contact details",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := model.ClientPatch{
				Name:  optionalString(cmd.Flags().Changed("name"), name),
				Email: optionalString(cmd.Flags().Changed("email"), email),
				Phone: optionalString(cmd.Flags().Changed("phone"), phone),
			}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				p, err := ed.UpdateClient(patch)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "client %s updated\n", p.Client.ID)
				return err
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&email, "email", "", "email address")
	set.Flags().StringVar(&phone, "phone", "", "phone number")
	c.AddCommand(set)
	return c
}
