package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/runhub/runhub/internal/core/activity"
	"github.com/runhub/runhub/internal/printer"
	"github.com/runhub/runhub/internal/runhub"
)

type SyncCmd struct {
	flags *Flags
}

// NewSyncCmd creates a new sync command
func NewSyncCmd(flags *Flags) *SyncCmd {
	return &SyncCmd{flags: flags}
}

// Register adds the sync command to the application
func (cmd *SyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "sync",
		Usage:       "Pull new activities from Strava",
		UsageText:   "runhub sync",
		Description: "Asks the backend to resync with Strava and reports what changed.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *SyncCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if _, err := cmd.flags.Service.Bootstrap(ctx, ""); err != nil {
		return err
	}

	changes, err := cmd.flags.Service.RefreshActivities(ctx)
	if errors.Is(err, runhub.ErrNotConnected) {
		p.Errorf("Not connected. Run 'runhub connect' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	snap := cmd.flags.Service.Snapshot()

	if changes == (activity.Changes{}) {
		p.Successf("Already up to date (%d runs)", len(snap.Activities))
		return nil
	}

	p.Successf("Synced %d runs", len(snap.Activities))
	if changes.Added > 0 {
		p.CheckItem("added", fmt.Sprintf("%d", changes.Added))
	}
	if changes.Updated > 0 {
		p.CheckItem("updated", fmt.Sprintf("%d", changes.Updated))
	}
	if changes.Deleted > 0 {
		p.WarnItem("deleted", fmt.Sprintf("%d", changes.Deleted))
	}
	return nil
}
