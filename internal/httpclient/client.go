// Package httpclient builds the instrumented HTTP clients used to reach
// upstream APIs and retries their requests with backoff.
package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New returns an http.Client with an OpenTelemetry transport and the given
// overall request timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
