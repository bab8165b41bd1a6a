package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hay-kot/tempbox/internal/core/auth"
	"github.com/hay-kot/tempbox/internal/core/expiry"
	"github.com/hay-kot/tempbox/internal/core/logging"
	"github.com/hay-kot/tempbox/internal/core/sweep"
	"github.com/hay-kot/tempbox/internal/mailtm"
)

// Options wires the handler's collaborators.
type Options struct {
	Registry *expiry.Registry
	Sweeper  *sweep.Sweeper
	Mail     *mailtm.Client
	Verifier *auth.Verifier
	Limiter  *RateLimiter
	// Origins are glob patterns matched against the Origin header of mail
	// proxy requests. "*" allows any origin.
	Origins []string
	Clock   func() time.Time
	Logger  *zerolog.Logger
}

type handlers struct {
	registry *expiry.Registry
	sweeper  *sweep.Sweeper
	mail     *mailtm.Client
	verifier *auth.Verifier
	clock    func() time.Time
	logger   zerolog.Logger
}

// NewHandler builds the instrumented route tree.
func NewHandler(opts Options) http.Handler {
	h := &handlers{
		registry: opts.Registry,
		sweeper:  opts.Sweeper,
		mail:     opts.Mail,
		verifier: opts.Verifier,
		clock:    opts.Clock,
	}
	if h.clock == nil {
		h.clock = time.Now
	}
	if opts.Logger != nil {
		h.logger = logging.Attach(*opts.Logger)
	} else {
		h.logger = logging.Attach(logging.Component("http"))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.healthz)

	mux.HandleFunc("GET /api/cleanup", h.cleanup)
	mux.HandleFunc("POST /api/cleanup", h.cleanup)

	mux.HandleFunc("GET /api/expiry-options", h.expiryOptions)
	mux.Handle("POST /api/files", h.protected(h.registerFile))
	mux.Handle("GET /api/files", h.protected(h.listFiles))
	mux.Handle("GET /api/files/expiring", h.protected(h.expiringFiles))
	mux.Handle("GET /api/files/{id}", h.protected(h.getFile))
	mux.Handle("DELETE /api/files/{id}", h.protected(h.deleteFile))

	var mail http.Handler = http.HandlerFunc(h.mailProxy)
	if opts.Limiter != nil {
		mail = rateLimit(opts.Limiter, mail)
	}
	mux.Handle("/api/mail-tm", cors(opts.Origins, mail))

	return otelhttp.NewHandler(requestLogger(h.logger, mux), "tempbox")
}

func (h *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": h.registry.Size(),
	})
}

// protected rejects requests without the configured bearer secret.
func (h *handlers) protected(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.verifier.VerifyRequest(r) {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	})
}
