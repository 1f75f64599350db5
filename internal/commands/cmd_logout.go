package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/runhub/runhub/internal/printer"
)

type LogoutCmd struct {
	flags *Flags
}

// NewLogoutCmd creates a new logout command
func NewLogoutCmd(flags *Flags) *LogoutCmd {
	return &LogoutCmd{flags: flags}
}

// Register adds the logout command to the application
func (cmd *LogoutCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "logout",
		Usage:       "Forget the saved identity",
		UsageText:   "runhub logout",
		Description: "Deletes the locally saved identity. Purely local; no requests are made.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *LogoutCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	if err := cmd.flags.Service.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	p.Successf("Signed out. Run 'runhub connect' to link an account again.")
	return nil
}
