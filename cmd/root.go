package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/eventplan/app"
	"github.com/kilianp07/eventplan/config"
	coremetrics "github.com/kilianp07/eventplan/core/metrics"
	"github.com/kilianp07/eventplan/core/monitoring"
	"github.com/kilianp07/eventplan/infra/logger"
	inframon "github.com/kilianp07/eventplan/infra/monitoring"
	"github.com/kilianp07/eventplan/infra/store"
)

type rootOptions struct {
	cfgPath string
	file    string
	cfg     *config.Config
}

// NewRootCmd builds the eventplan command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "eventplan",
		Short:         "Plan event sessions, materials and staff movements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file")
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "project document (defaults to the autosave slot)")

	root.AddCommand(
		newInitCmd(opts),
		newValidateCmd(opts),
		newInfoCmd(opts),
		newClientCmd(opts),
		newLocationCmd(opts),
		newTaskCmd(opts),
		newMaterialCmd(opts),
		newStaffCmd(opts),
		newSessionsCmd(opts),
		newSummaryCmd(opts),
		newMaterialsCmd(opts),
		newPositionCmd(opts),
		newBoundsCmd(opts),
		newPlaybackCmd(opts),
	)
	return root
}

// Execute runs the CLI. Unexpected failures go to the configured error
// tracker; domain rejections such as overlaps do not.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer monitoring.Flush(2 * time.Second)
	defer monitoring.Recover()
	c, err := NewRootCmd().ExecuteContextC(ctx)
	if reportable(err) {
		tags := map[string]string{}
		if c != nil {
			tags["command"] = c.CommandPath()
		}
		monitoring.CaptureException(err, tags)
	}
	return err
}

func reportable(err error) bool {
	if err == nil || errors.Is(err, errNoDocument) || errors.Is(err, app.ErrNoProject) {
		return false
	}
	return coremetrics.CommandEvent{Err: err}.Result() == coremetrics.ResultError
}

func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}); err != nil {
		return err
	}
	mon, err := inframon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return fmt.Errorf("error reporting: %w", err)
	}
	monitoring.Init(mon)
	o.cfg = cfg
	return nil
}

// newEditor builds an editor whose slot is --file when given.
func (o *rootOptions) newEditor() (*app.Editor, error) {
	if o.file != "" {
		return app.NewWithSlot(o.cfg, store.NewFileStore(o.file))
	}
	return app.New(o.cfg)
}

func (o *rootOptions) location() string {
	if o.file != "" {
		return o.file
	}
	return "the autosave slot"
}

// withProject opens the document, runs fn, and writes the document back
// when mutate is true.
func (o *rootOptions) withProject(cmd *cobra.Command, mutate bool, fn func(ed *app.Editor) error) (err error) {
	ed, err := o.newEditor()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ed.Close(); cerr != nil {
			logger.New("cli").Errorf("close editor: %v", cerr)
			if err == nil {
				err = cerr
			}
		}
	}()
	ctx := cmd.Context()
	_, ok, err := ed.Restore(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no project in %s: %w", o.location(), errNoDocument)
	}
	if err := fn(ed); err != nil {
		return err
	}
	if !mutate {
		return nil
	}
	return ed.Save(ctx)
}

var errNoDocument = errors.New("run init first")
