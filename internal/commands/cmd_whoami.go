package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/printer"
	"github.com/runhub/runhub/internal/runhub"
)

type WhoamiCmd struct {
	flags *Flags
}

// NewWhoamiCmd creates a new whoami command
func NewWhoamiCmd(flags *Flags) *WhoamiCmd {
	return &WhoamiCmd{flags: flags}
}

// Register adds the whoami command to the application
func (cmd *WhoamiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "whoami",
		Usage:       "Show the connected athlete",
		UsageText:   "runhub whoami",
		Description: "Prints the connected athlete's profile and most recent badges.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *WhoamiCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	res, err := cmd.flags.Service.Bootstrap(ctx, "")
	if err != nil {
		return err
	}
	if res.Identity.IsZero() {
		p.Errorf("Not connected. Run 'runhub connect' first.")
		return nil
	}

	p.Section("Athlete")
	p.CheckItem("id", res.Identity.UserID)

	if err := cmd.flags.Service.FetchAthlete(ctx); err == nil {
		if name := cmd.flags.Service.Snapshot().Athlete.DisplayName(); name != "" {
			p.CheckItem("name", name)
		}
	}

	badges, err := cmd.flags.Service.Badges(ctx)
	if errors.Is(err, runhub.ErrNotConnected) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch badges: %w", err)
	}

	if len(badges) == 0 {
		return nil
	}

	p.Printf("")
	p.Section("Recent badges")
	for _, b := range metrics.RecentBadges(badges, metrics.BadgePreviewCount) {
		p.CheckItem(b.Name, b.EarnedDate.Format("Jan 2, 2006"))
	}
	return nil
}
