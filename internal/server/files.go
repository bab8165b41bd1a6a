package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/hay-kot/tempbox/internal/core/expiry"
)

type registerRequest struct {
	FileID       string `json:"fileId"`
	FolderID     string `json:"folderId"`
	FileName     string `json:"fileName"`
	DownloadURL  string `json:"downloadUrl"`
	DirectLink   string `json:"directLink"`
	DirectLinkID string `json:"directLinkId"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimetype"`
	Expiry       string `json:"expiry"`
}

type fileView struct {
	File          expiry.Record `json:"file"`
	TimeRemaining string        `json:"timeRemaining"`
	HumanSize     string        `json:"humanSize"`
}

func newFileView(rec expiry.Record, now time.Time) fileView {
	return fileView{
		File:          rec,
		TimeRemaining: expiry.FormatTimeRemaining(rec.ExpiresAt, now),
		HumanSize:     rec.HumanSize(),
	}
}

func newFileViews(recs []expiry.Record, now time.Time) []fileView {
	out := make([]fileView, len(recs))
	for i, rec := range recs {
		out[i] = newFileView(rec, now)
	}
	return out
}

func (h *handlers) expiryOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, expiry.Presets)
}

func (h *handlers) registerFile(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body", Details: err.Error()})
		return
	}

	preset, err := expiry.ParseExpiry(req.Expiry)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid expiry", Details: err.Error()})
		return
	}

	now := h.clock()
	rec, err := expiry.NewRecord(req.FileID, now, preset.Duration)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid file", Details: err.Error()})
		return
	}
	rec.FolderID = req.FolderID
	rec.FileName = req.FileName
	rec.DownloadURL = req.DownloadURL
	rec.DirectLink = req.DirectLink
	rec.DirectLinkID = req.DirectLinkID
	rec.Size = req.Size
	rec.MimeType = req.MimeType

	h.registry.Add(rec)
	h.logger.Debug().Ctx(r.Context()).
		Str("file_id", rec.ID).
		Time("expires_at", rec.ExpiresAt).
		Msg("registered file")

	writeJSON(w, http.StatusCreated, newFileView(rec, now))
}

func (h *handlers) listFiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newFileViews(h.registry.GetAll(), h.clock()))
}

func (h *handlers) expiringFiles(w http.ResponseWriter, r *http.Request) {
	window := expiry.DefaultSoonWindow
	if raw := r.URL.Query().Get("within"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			writeError(w, http.StatusBadRequest, "Invalid within parameter")
			return
		}
		window = time.Duration(minutes) * time.Minute
	}

	now := h.clock()
	writeJSON(w, http.StatusOK, newFileViews(h.registry.GetExpiringSoon(window, now), now))
}

func (h *handlers) getFile(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.registry.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	writeJSON(w, http.StatusOK, newFileView(rec, h.clock()))
}

// deleteFile unregisters a record. The file host is not contacted.
func (h *handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	if !h.registry.Remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
