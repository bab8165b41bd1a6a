package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tempbox/internal/printer"
	"github.com/hay-kot/tempbox/pkg/iojson"
)

type SweepCmd struct {
	flags  *Flags
	remote remoteFlags
	now    int64
}

// NewSweepCmd creates a new sweep command
func NewSweepCmd(flags *Flags) *SweepCmd {
	return &SweepCmd{flags: flags}
}

// Register adds the sweep command to the application
func (cmd *SweepCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sweep",
		Usage:     "Trigger a cleanup sweep on a running server",
		UsageText: "tempbox sweep [--url URL] [--secret SECRET] [--now MS]",
		Description: `Calls POST /api/cleanup and prints the JSON response.

Expired files are deleted from the file host in batches. Files whose batch
fails stay registered and are retried by the next sweep.`,
		Flags: append(cmd.remote.flags(),
			&cli.Int64Flag{
				Name:        "now",
				Usage:       "evaluate expiry at this instant (ms since epoch) instead of the server clock",
				Destination: &cmd.now,
			},
		),
		Action: cmd.run,
	})

	return app
}

type sweepResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Results *struct {
		Failed int `json:"failed"`
	} `json:"results"`
}

func (cmd *SweepCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	path := "/api/cleanup"
	if cmd.now != 0 {
		path += "?" + url.Values{"now": {strconv.FormatInt(cmd.now, 10)}}.Encode()
	}

	status, body, err := cmd.remote.remote(cmd.flags.Config).do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return fmt.Errorf("trigger sweep: %w", err)
	}

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, json.RawMessage(body)); err != nil {
		return err
	}

	if status != http.StatusOK {
		p.Errorf("%s", describeFailure(status, body))
		return cli.Exit("", 1)
	}

	var res sweepResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if res.Results != nil && res.Results.Failed > 0 {
		p.Warnf("%s", res.Message)
		return nil
	}
	p.Successf("%s", res.Message)
	return nil
}
