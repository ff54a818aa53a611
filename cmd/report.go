package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/eventplan/app"
	"github.com/kilianp07/eventplan/core/materials"
	"github.com/kilianp07/eventplan/core/model"
	"github.com/kilianp07/eventplan/core/scheduler"
	"github.com/kilianp07/eventplan/core/simulation"
	"github.com/kilianp07/eventplan/pkg/export"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var owner string
	c := &cobra.Command{
		Use:   "summary",
		Short: "Total scheduled time per owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				if _, err := fmt.Fprintln(tw, "OWNER\tROLE\tSESSIONS\tMINUTES"); err != nil {
					return err
				}
				for _, o := range p.Owners() {
					if owner != "" && o.ID != owner {
						continue
					}
					sum, err := ed.Summary(o.ID)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", o.Name, o.Role, sum.Count,
						strconv.FormatFloat(sum.TotalMinutes, 'f', -1, 64)); err != nil {
						return err
					}
				}
				return tw.Flush()
			})
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "only this owner")
	return c
}

func newMaterialsCmd(opts *rootOptions) *cobra.Command {
	var format string
	var all bool
	c := &cobra.Command{
		Use:   "materials",
		Short: "Roll material quantities up per material and owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			var aggOpts []materials.Option
			if all {
				aggOpts = append(aggOpts, materials.IncludeUnused())
			}
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				res, err := ed.Materials(aggOpts...)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				switch format {
				case "text":
					_, err = fmt.Fprintln(w, materials.ToDelimitedText(res))
					return err
				case "csv":
					return export.WriteCSV(w, res)
				case "json":
					return export.WriteJSON(w, res)
				case "html":
					p, _ := ed.Project()
					return export.WriteMaterialsChart(w, p.Name+" materials", res)
				default:
					return fmt.Errorf("unknown format %q: use text, csv, json or html", format)
				}
			})
		},
	}
	c.Flags().StringVar(&format, "format", "text", "output format: text, csv, json or html")
	c.Flags().BoolVar(&all, "all", false, "include catalog materials no session uses")
	return c
}

func newPositionCmd(opts *rootOptions) *cobra.Command {
	var owner, at string
	c := &cobra.Command{
		Use:   "position",
		Short: "Estimate where an owner is at an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseInstant(at)
			if err != nil {
				return err
			}
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				o, ok := p.Owner(owner)
				if !ok {
					return &model.NotFoundError{Kind: "owner", ID: owner}
				}
				sessions := scheduler.OwnerSessions(p.Sessions, o.ID, o.Role)
				pos, ok := simulation.PositionAt(sessions, simulation.BuildLayout(p), when)
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "no position")
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "x=%.4f y=%.4f\n", pos.X, pos.Y)
				return err
			})
		},
	}
	c.Flags().StringVar(&owner, "owner", "", "owner id")
	c.Flags().StringVar(&at, "at", "", "instant (RFC 3339)")
	_ = c.MarkFlagRequired("owner")
	_ = c.MarkFlagRequired("at")
	return c
}

func newBoundsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Show the earliest start and latest end of the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				b, ok := simulation.TimelineBounds(p)
				if !ok {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatInstant(b.Start), formatInstant(b.End))
				return err
			})
		},
	}
}

func newPlaybackCmd(opts *rootOptions) *cobra.Command {
	var step float64
	c := &cobra.Command{
		Use:   "playback",
		Short: "Sample every owner's position across the timeline as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := opts.cfg.Simulation.Step()
			if cmd.Flags().Changed("step") {
				d = scheduler.Minutes(step)
			}
			return opts.withProject(cmd, false, func(ed *app.Editor) error {
				p, _ := ed.Project()
				frames, err := simulation.Playback(p, d)
				if err != nil {
					return err
				}
				return export.WriteFramesCSV(cmd.OutOrStdout(), frames)
			})
		},
	}
	c.Flags().Float64Var(&step, "step", 0, "minutes between frames (defaults to simulation.step_minutes)")
	return c
}
