package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tempbox/internal/core/config"
	"github.com/hay-kot/tempbox/internal/httpclient"
)

const remoteTimeout = 5 * time.Minute

// remote calls the HTTP API of a running server.
type remote struct {
	baseURL string
	secret  string
	client  *http.Client
}

func newRemote(baseURL, secret string) *remote {
	return &remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  httpclient.New(remoteTimeout),
	}
}

// do sends body as JSON (when non-nil) and returns the status and raw body.
func (r *remote) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		payload = data
	}

	resp, err := httpclient.Do(ctx, r.client, httpclient.NoRetry(), func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if r.secret != "" {
			req.Header.Set("Authorization", "Bearer "+r.secret)
		}
		return req, nil
	})
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// remoteFlags are shared by commands that talk to a running server.
type remoteFlags struct {
	url    string
	secret string
}

func (rf *remoteFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "base URL of the tempbox server",
			Sources:     cli.EnvVars("TEMPBOX_URL"),
			Value:       "http://localhost:8080",
			Destination: &rf.url,
		},
		&cli.StringFlag{
			Name:        "secret",
			Usage:       "cron secret sent as a bearer token (defaults to cleanup.secret)",
			Sources:     cli.EnvVars(config.EnvCronSecret),
			Destination: &rf.secret,
		},
	}
}

func (rf *remoteFlags) remote(cfg *config.Config) *remote {
	secret := rf.secret
	if secret == "" && cfg != nil {
		secret = cfg.Cleanup.Secret
	}
	return newRemote(rf.url, secret)
}

// apiError is the error body shape of the server.
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func describeFailure(status int, body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Sprintf("server returned %d", status)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%d)", e.Error, e.Details, status)
	}
	return fmt.Sprintf("%s (%d)", e.Error, status)
}
