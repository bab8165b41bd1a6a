package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tempbox/internal/printer"
	"github.com/hay-kot/tempbox/pkg/iojson"
)

// fileRegistration is one entry of the register input.
type fileRegistration struct {
	FileID       string `json:"fileId"`
	FolderID     string `json:"folderId,omitempty"`
	FileName     string `json:"fileName"`
	DownloadURL  string `json:"downloadUrl"`
	DirectLink   string `json:"directLink,omitempty"`
	DirectLinkID string `json:"directLinkId,omitempty"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	Expiry       string `json:"expiry"`
}

type FilesCmd struct {
	flags  *Flags
	remote remoteFlags
	input  iojson.FileReader[[]fileRegistration]
}

// NewFilesCmd creates a new files command
func NewFilesCmd(flags *Flags) *FilesCmd {
	return &FilesCmd{flags: flags}
}

// Register adds the files command to the application
func (cmd *FilesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "files",
		Usage: "Manage tracked files on a running server",
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Register uploaded files for expiry",
				UsageText: "tempbox files register [-f files.json]",
				Description: `Reads a JSON array of registrations from a file or stdin, e.g.

  [{"fileId": "abc", "fileName": "cat.png", "size": 1024, "expiry": "1h"}]

and registers each one. expiry is a preset code, see 'tempbox presets'.`,
				Flags:  append(cmd.remote.flags(), cmd.input.Flag()),
				Action: cmd.runRegister,
			},
			{
				Name:      "ls",
				Usage:     "List tracked files",
				UsageText: "tempbox files ls",
				Flags:     cmd.remote.flags(),
				Action:    cmd.runList,
			},
		},
	})

	return app
}

func (cmd *FilesCmd) runRegister(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	regs, err := cmd.input.Read()
	if err != nil {
		return err
	}
	if len(regs) == 0 {
		p.Infof("No files to register")
		return nil
	}

	r := cmd.remote.remote(cmd.flags.Config)
	created := make([]json.RawMessage, 0, len(regs))
	failed := 0

	for _, reg := range regs {
		status, body, err := r.do(ctx, http.MethodPost, "/api/files", reg)
		if err != nil {
			return fmt.Errorf("register %s: %w", reg.FileID, err)
		}
		if status != http.StatusCreated {
			failed++
			p.Errorf("%s: %s", reg.FileID, describeFailure(status, body))
			continue
		}
		created = append(created, body)
	}

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, created); err != nil {
		return err
	}

	if failed > 0 {
		p.Errorf("%d of %d file(s) failed to register", failed, len(regs))
		return cli.Exit("", 1)
	}
	p.Successf("Registered %d file(s)", len(created))
	return nil
}

func (cmd *FilesCmd) runList(ctx context.Context, c *cli.Command) error {
	status, body, err := cmd.remote.remote(cmd.flags.Config).do(ctx, http.MethodGet, "/api/files", nil)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}
	if status != http.StatusOK {
		printer.Ctx(ctx).Errorf("%s", describeFailure(status, body))
		return cli.Exit("", 1)
	}
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, json.RawMessage(body))
}
