package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/eventplan/app"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{Use: "sessions", Short: "Session scheduling commands"}
	c.AddCommand(
		newSessionsAddCmd(opts),
		newSessionsShiftCmd(opts),
		newSessionsResizeCmd(opts),
		newSessionsRemoveCmd(opts),
		newSessionsListCmd(opts),
	)
	return c
}

func newSessionsAddCmd(opts *rootOptions) *cobra.Command {
	var (
		owner, start, location, task, note, template string
		durations                                    []float64
		mats                                         []string
	)
	c := &cobra.Command{
		Use:   "add",
		Short: "Place back-to-back sessions for one owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseInstant(start)
			if err != nil {
				return err
			}
			defaults, err := parseMaterials(mats)
			if err != nil {
				return err
			}
			pl := scheduler.Placement{
				Start:     at,
				Durations: durations,
				OwnerID:   owner,
				Defaults:  scheduler.Defaults{LocationID: location, TaskID: task, Note: note, Materials: defaults},
			}
			if template != "" {
				tmpl, err := scheduler.LoadTemplate(template)
				if err != nil {
					return fmt.Errorf("load template: %w", err)
				}
				pl = overrideTemplate(cmd, tmpl.Placement(pl), pl)
			}
			if len(pl.Durations) == 0 {
				return fmt.Errorf("--durations or --template is required")
			}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				p, _ := ed.Project()
				o, ok := p.Owner(owner)
				if !ok {
					return &model.NotFoundError{Kind: "owner", ID: owner}
				}
				pl.OwnerRole = o.Role
				created, err := ed.AppendSessions(pl)
				if err != nil {
					return err
				}
				for _, s := range created {
					if err := printSession(cmd, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "owner id")
	c.Flags().StringVar(&start, "start", "", "start of the first session (RFC 3339)")
	c.Flags().Float64SliceVar(&durations, "durations", nil, "session durations in minutes, comma separated")
	c.Flags().StringVar(&location, "location", "", "location id")
	c.Flags().StringVar(&task, "task", "", "task type id")
	c.Flags().StringVar(&note, "note", "", "note copied to every session")
	c.Flags().StringSliceVar(&mats, "material", nil, "material as id=quantity (repeatable)")
	c.Flags().StringVar(&template, "template", "", "YAML or JSON placement template")
	_ = c.MarkFlagRequired("owner")
	_ = c.MarkFlagRequired("start")
	return c
}

// overrideTemplate lets flags given on the command line win over the
// template's values.
func overrideTemplate(cmd *cobra.Command, fromTemplate, fromFlags scheduler.Placement) scheduler.Placement {
	flags := cmd.Flags()
	if flags.Changed("durations") {
		fromTemplate.Durations = fromFlags.Durations
	}
	if flags.Changed("location") {
		fromTemplate.Defaults.LocationID = fromFlags.Defaults.LocationID
	}
	if flags.Changed("task") {
		fromTemplate.Defaults.TaskID = fromFlags.Defaults.TaskID
	}
	if flags.Changed("note") {
		fromTemplate.Defaults.Note = fromFlags.Defaults.Note
	}
	if flags.Changed("material") {
		fromTemplate.Defaults.Materials = fromFlags.Defaults.Materials
	}
	return fromTemplate
}

func minutesArg(s string) (float64, error) {
	m, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q", s)
	}
	return m, nil
}

func newSessionsShiftCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shift ID MINUTES",
		Short: "Move a session, keeping its duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := minutesArg(args[1])
			if err != nil {
				return err
			}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				s, err := ed.ShiftSession(args[0], m)
				if err != nil {
					return err
				}
				return printSession(cmd, s)
			})
		},
	}
}

func newSessionsResizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resize ID MINUTES",
		Short: "Set a session's duration, keeping its start",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := minutesArg(args[1])
			if err != nil {
				return err
			}
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				s, err := ed.ResizeSession(args[0], m)
				if err != nil {
					return err
				}
				return printSession(cmd, s)
			})
		},
	}
}

func newSessionsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, true, func(ed *app.Editor) error {
				removed, err := ed.RemoveSession(args[0])
				if err != nil {
					return err
				}
				msg := "removed"
				if !removed {
					msg = "not found, nothing removed"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "session %s %s\n", args[0], msg)
				return err
			})
		},
	}
}

func newSessionsListCmd(opts *rootOptions) *cobra.Command {
	var owner string
	c := &cobra.Command{
		Use:   "list",
		Short: "List sessions in start order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				if _, err := fmt.Fprintln(tw, "ID\tOWNER\tROLE\tSTART\tEND\tMINUTES\tLOCATION\tTASK"); err != nil {
					return err
				}
				for _, s := range scheduler.Sort(p.Sessions) {
					if owner != "" && s.OwnerID != owner {
						continue
					}
					name := s.OwnerID
					if o, ok := p.Owner(s.OwnerID); ok {
						name = o.Name
					}
					if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID, name, s.OwnerRole, formatInstant(s.Start), formatInstant(s.End),
						strconv.FormatFloat(s.Duration().Minutes(), 'f', -1, 64), dash(s.LocationID), dash(s.TaskID)); err != nil {
						return err
					}
				}
				return tw.Flush()
			})
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "only this owner's sessions")
	return c
}

func printSession(cmd *cobra.Command, s model.Session) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "session %s %s %s\n", s.ID, formatInstant(s.Start), formatInstant(s.End))
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
