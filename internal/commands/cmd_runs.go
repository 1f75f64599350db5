package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/runhub/runhub/internal/core/activity"
	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/printer"
	"github.com/runhub/runhub/internal/runhub"
)

type RunsCmd struct {
	flags *Flags
	out   io.Writer
}

// NewRunsCmd creates a new runs command
func NewRunsCmd(flags *Flags) *RunsCmd {
	return &RunsCmd{flags: flags, out: os.Stdout}
}

// Register adds the runs command to the application
func (cmd *RunsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "runs",
		Usage:       "List recent runs",
		UsageText:   "runhub runs [--page N | --all]",
		Description: "Displays a table of runs with distance, time, and pace, newest first.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "page to show (1-based)",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "show every run, ignoring pagination",
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RunsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if _, err := cmd.flags.Service.Bootstrap(ctx, ""); err != nil {
		return err
	}

	err := cmd.flags.Service.FetchActivities(ctx)
	if errors.Is(err, runhub.ErrNotConnected) {
		p.Errorf("Not connected. Run 'runhub connect' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch activities: %w", err)
	}

	snap := cmd.flags.Service.Snapshot()
	if snap.Collection == runhub.CollectionEmpty {
		p.Infof("No runs yet. Lace up!")
		return nil
	}

	acts := snap.Activities
	pageSize := cmd.flags.Config.PageSize
	page := 1
	if !c.Bool("all") {
		page = metrics.ClampPage(int(c.Int("page")), metrics.TotalPages(len(acts), pageSize))
		acts = metrics.Page(acts, page, pageSize)
	}

	cmd.printTable(acts)

	if !c.Bool("all") {
		total := metrics.TotalPages(len(snap.Activities), pageSize)
		if total > 1 {
			p.Infof("Page %d of %d (%d runs). Use --page or --all.", page, total, len(snap.Activities))
		}
	}
	return nil
}

func (cmd *RunsCmd) printTable(acts []activity.Activity) {
	w := tabwriter.NewWriter(cmd.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tNAME\tDISTANCE\tTIME\tPACE")
	for _, a := range acts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.StartDate.Local().Format("Jan 02"),
			a.Name,
			formatMiles(metrics.Miles(a.Distance)),
			formatDuration(a.MovingTime),
			metrics.Pace(a.Distance, a.MovingTime),
		)
	}
	_ = w.Flush()
}
