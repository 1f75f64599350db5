package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/runhub/runhub/internal/printer"
	"github.com/runhub/runhub/internal/styles"
)

type ConnectCmd struct {
	flags *Flags
}

// NewConnectCmd creates a new connect command
func NewConnectCmd(flags *Flags) *ConnectCmd {
	return &ConnectCmd{flags: flags}
}

// Register adds the connect command to the application
func (cmd *ConnectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "connect",
		Usage:     "Link your Strava account",
		UsageText: "runhub connect [--url <redirect-url>]",
		Description: `Opens the authorization flow. Visit the printed URL in a browser, approve
access, then paste the URL the browser lands on back here. The identity in
that URL is saved locally so future runs start signed in.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "redirect URL to process without prompting",
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ConnectCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	redirectURL := c.String("url")
	if redirectURL == "" {
		p.Infof("Open this URL in your browser and approve access:")
		p.Printf("")
		p.Printf("  %s", cmd.flags.Service.AuthorizeURL())
		p.Printf("")

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Redirect URL").
				Description("Paste the full URL your browser ended up on").
				Value(&redirectURL).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return errors.New("redirect URL is required")
					}
					if _, err := url.Parse(s); err != nil {
						return errors.New("not a valid URL")
					}
					return nil
				}),
		)).WithTheme(styles.FormTheme())
		if err := form.Run(); err != nil {
			return fmt.Errorf("read redirect URL: %w", err)
		}
		redirectURL = strings.TrimSpace(redirectURL)
	}

	res, err := cmd.flags.Service.Bootstrap(ctx, redirectURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if res.AuthError != "" {
		p.Errorf("Authorization was declined (%s). Nothing was saved.", res.AuthError)
		return nil
	}
	if res.Identity.IsZero() {
		p.Warnf("That URL carried no credentials. Approve access and paste the final URL.")
		return nil
	}

	p.Success(
		fmt.Sprintf("Connected as athlete %s", res.Identity.UserID),
		"identity saved to "+cmd.flags.Config.IdentityFile(),
	)
	return nil
}
