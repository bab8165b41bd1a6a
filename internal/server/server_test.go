package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tempbox/internal/core/auth"
	"github.com/hay-kot/tempbox/internal/core/config"
	"github.com/hay-kot/tempbox/internal/core/expiry"
	"github.com/hay-kot/tempbox/internal/core/sweep"
)

func testServerConfig() config.ServerConfig {
	cfg := config.DefaultConfig().Server
	cfg.Addr = "127.0.0.1:0"
	return cfg
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := New(testServerConfig(), http.NotFoundHandler())
	assert.Empty(t, srv.Addr(), "no address before Start")

	require.NoError(t, srv.Start(context.Background()), "Start() error")
	assert.NotEmpty(t, srv.Addr())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, srv.Shutdown(shutdownCtx), "Shutdown() error")
}

func TestServer_ServesHandler(t *testing.T) {
	f := newFixture(t, fixtureOpts{secret: testSecret})
	srv := New(testServerConfig(), f.srv.Config.Handler)

	require.NoError(t, srv.Start(context.Background()), "Start() error")
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	baseURL := "http://" + srv.Addr()

	tests := []struct {
		name     string
		endpoint string
		want     int
	}{
		{name: "health", endpoint: "/healthz", want: http.StatusOK},
		{name: "presets", endpoint: "/api/expiry-options", want: http.StatusOK},
		{name: "cleanup without secret", endpoint: "/api/cleanup", want: http.StatusUnauthorized},
		{name: "unknown route", endpoint: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(baseURL + tt.endpoint)
			require.NoError(t, err, "GET %s error", tt.endpoint)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, tt.want, resp.StatusCode, "GET %s", tt.endpoint)
		})
	}
}

func TestServer_StartFailsOnBusyAddr(t *testing.T) {
	first := New(testServerConfig(), http.NotFoundHandler())
	require.NoError(t, first.Start(context.Background()))
	defer func() { _ = first.Shutdown(context.Background()) }()

	cfg := testServerConfig()
	cfg.Addr = first.Addr()
	second := New(cfg, http.NotFoundHandler())
	assert.Error(t, second.Start(context.Background()))
}

type slowDeleter struct {
	delay time.Duration
}

func (d slowDeleter) DeleteContent(context.Context, []string) error {
	time.Sleep(d.delay)
	return nil
}

func TestServer_CleanupOutlivesWriteTimeout(t *testing.T) {
	reg := expiry.NewRegistry()
	seedExpired(reg, 10)
	verifier, err := auth.NewVerifier(testSecret)
	require.NoError(t, err)

	nop := zerolog.Nop()
	h := NewHandler(Options{
		Registry: reg,
		Sweeper: sweep.New(reg, slowDeleter{delay: 150 * time.Millisecond},
			sweep.WithLogger(nop),
			sweep.WithClock(func() time.Time { return testNow }),
			noPause(),
		),
		Verifier: verifier,
		Clock:    func() time.Time { return testNow },
		Logger:   &nop,
	})

	cfg := testServerConfig()
	cfg.WriteTimeout = 100 * time.Millisecond
	srv := New(cfg, h)
	require.NoError(t, srv.Start(context.Background()))
	defer func() { _ = srv.Shutdown(context.Background()) }()

	req, err := http.NewRequest(http.MethodPost, "http://"+srv.Addr()+"/api/cleanup", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testSecret)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "response should survive the write timeout")
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	results, ok := body["results"].(map[string]any)
	require.True(t, ok, "results present")
	assert.EqualValues(t, 10, results["attempted"])
	assert.EqualValues(t, 10, results["successful"])
	assert.Zero(t, reg.Size())
}
