package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hay-kot/tempbox/internal/core/sweep"
)

type cleanupResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Cleaned *int          `json:"cleaned,omitempty"`
	Results *sweep.Result `json:"results,omitempty"`
	Joined  bool          `json:"joined,omitempty"`
}

// cleanup runs one sweep. The caller must present the cron secret; a
// rejected call touches neither the registry nor the file host.
func (h *handlers) cleanup(w http.ResponseWriter, r *http.Request) {
	if !h.verifier.VerifyRequest(r) {
		h.logger.Warn().Ctx(r.Context()).Msg("unauthorized cleanup attempt")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	now := h.clock()
	overridden := false
	if raw := r.URL.Query().Get("now"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid now parameter")
			return
		}
		now = time.UnixMilli(ms)
		overridden = true
	}

	// The sweep outlives a caller that disconnects mid-run so that the
	// registry is reconciled with every delete that was issued.
	ctx := context.WithoutCancel(r.Context())

	// A sweep can run longer than the server's write timeout. Lift the
	// deadline for this response so the summary reaches the caller.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn().Ctx(ctx).Err(err).Msg("failed to clear write deadline")
	}

	res, err := h.sweeper.Run(ctx, now)
	if err != nil {
		h.logger.Error().Ctx(ctx).Err(err).Msg("cleanup failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Cleanup failed", Details: err.Error()})
		return
	}

	if res.Joined && overridden {
		h.logger.Warn().Ctx(ctx).
			Int64("now", now.UnixMilli()).
			Msg("now override ignored, joined a sweep already in flight")
	}

	if res.Empty() {
		cleaned := 0
		writeJSON(w, http.StatusOK, cleanupResponse{
			Success: true,
			Message: "No expired files to clean up",
			Cleaned: &cleaned,
			Joined:  res.Joined,
		})
		return
	}

	h.logger.Info().Ctx(ctx).
		Int("attempted", res.Attempted).
		Int("failed", res.Failed).
		Msg(res.Message())

	writeJSON(w, http.StatusOK, cleanupResponse{
		Success: true,
		Message: res.Message(),
		Results: &res,
		Joined:  res.Joined,
	})
}
