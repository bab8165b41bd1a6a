package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tempbox/internal/core/auth"
	"github.com/hay-kot/tempbox/internal/core/config"
	"github.com/hay-kot/tempbox/internal/core/expiry"
	"github.com/hay-kot/tempbox/internal/core/logging"
	"github.com/hay-kot/tempbox/internal/core/sweep"
	"github.com/hay-kot/tempbox/internal/gofile"
	"github.com/hay-kot/tempbox/internal/httpclient"
	"github.com/hay-kot/tempbox/internal/mailtm"
	"github.com/hay-kot/tempbox/internal/server"
)

type ServeCmd struct {
	flags *Flags
	addr  string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the HTTP server",
		UsageText: "tempbox serve [--addr ADDR]",
		Description: `Serves the cleanup trigger, the file registry API, and the mail proxy.

When cleanup.interval is set, sweeps also run in-process on that interval.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (overrides server.addr)",
				Sources:     cli.EnvVars("TEMPBOX_ADDR"),
				Destination: &cmd.addr,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := *cmd.flags.Config
	if cmd.addr != "" {
		cfg.Server.Addr = cmd.addr
	}

	for _, w := range cfg.Warnings() {
		log.Warn().Str("item", w.Item).Msg(w.Message)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := expiry.NewRegistry()

	deleter, err := newDeleter(cfg.Gofile)
	if err != nil {
		return err
	}

	sweeper := sweep.New(registry, deleter,
		sweep.WithBatchSize(cfg.Cleanup.BatchSize),
		sweep.WithBatchDelay(cfg.Cleanup.BatchDelay),
		sweep.WithLogger(logging.Component("sweep")),
	)

	verifier, err := auth.NewVerifier(cfg.Cleanup.Secret)
	if err != nil {
		return fmt.Errorf("setup auth: %w", err)
	}
	if verifier.Enabled() {
		log.Info().Str("secret_fingerprint", verifier.Fingerprint()).Msg("cleanup secret configured")
	}

	mail := mailtm.New(
		mailtm.WithBaseURL(cfg.MailTM.BaseURL),
		mailtm.WithHTTPClient(httpclient.New(cfg.MailTM.Timeout)),
	)

	handler := server.NewHandler(server.Options{
		Registry: registry,
		Sweeper:  sweeper,
		Mail:     mail,
		Verifier: verifier,
		Limiter:  server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Origins:  cfg.CORS.AllowedOrigins,
	})

	srv := server.New(cfg.Server, handler)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	if cfg.Cleanup.Interval > 0 {
		log.Info().Dur("interval", cfg.Cleanup.Interval).Msg("scheduled sweeps enabled")
		go sweep.Start(ctx, sweeper, cfg.Cleanup.Interval)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newDeleter builds the file host client. Without a token the server still
// runs, but every batch fails and its files stay registered.
func newDeleter(cfg config.GofileConfig) (sweep.Deleter, error) {
	retry := httpclient.DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries

	client, err := gofile.New(gofile.Config{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		HTTPClient: httpclient.New(cfg.Timeout),
		Retry:      retry,
	})
	if errors.Is(err, gofile.ErrMissingToken) {
		return unconfiguredDeleter{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("setup gofile client: %w", err)
	}
	return client, nil
}

type unconfiguredDeleter struct{}

func (unconfiguredDeleter) DeleteContent(context.Context, []string) error {
	return gofile.ErrMissingToken
}
