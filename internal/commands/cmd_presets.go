package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tempbox/internal/core/expiry"
	"github.com/hay-kot/tempbox/internal/core/styles"
	"github.com/hay-kot/tempbox/pkg/iojson"
)

type PresetsCmd struct {
	json bool
}

// NewPresetsCmd creates a new presets command
func NewPresetsCmd() *PresetsCmd {
	return &PresetsCmd{}
}

// Register adds the presets command to the application
func (cmd *PresetsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "presets",
		Usage:     "List the expiry presets accepted at registration",
		UsageText: "tempbox presets [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PresetsCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer
	if cmd.json {
		return iojson.WriteWith(w, c.Root().ErrWriter, expiry.Presets)
	}

	_, _ = fmt.Fprintln(w, styles.Title.Render("Expiry presets"))
	for _, p := range expiry.Presets {
		_, _ = fmt.Fprintf(w, "  %s  %s\n",
			styles.TextBold.Render(fmt.Sprintf("%-4s", p.Display)),
			styles.TextMuted.Render(p.Label),
		)
	}
	return nil
}
