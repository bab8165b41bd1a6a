package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hay-kot/tempbox/internal/core/auth"
	"github.com/hay-kot/tempbox/internal/mailtm"
)

// mailProxy forwards /api/mail-tm?action=... to the mail API. Mailbox
// tokens travel per request in the Authorization header and are never
// retained.
func (h *handlers) mailProxy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	action := q.Get("action")
	id := q.Get("id")
	page, _ := strconv.Atoi(q.Get("page"))
	ctx := r.Context()

	h.logger.Debug().Ctx(ctx).
		Str("action", action).
		Str("id", id).
		Int("page", page).
		Msg("mail proxy request")

	switch action {
	case "domains":
		if id != "" {
			domain, err := h.mail.Domain(ctx, id)
			if err != nil {
				h.mailError(w, r, "Failed to fetch domain", err)
				return
			}
			writeJSON(w, http.StatusOK, domain)
			return
		}
		res, err := h.mail.Domains(ctx, page)
		if err != nil {
			h.mailError(w, r, "Failed to fetch domains", err)
			return
		}
		writeJSON(w, http.StatusOK, res)

	case "create-account":
		creds, ok := credentialsFrom(w, r)
		if !ok {
			return
		}
		account, err := h.mail.CreateAccount(ctx, creds)
		if err != nil {
			h.mailError(w, r, "Failed to create account", err)
			return
		}
		h.logger.Info().Ctx(ctx).Str("address", account.Address).Msg("account created")
		writeJSON(w, http.StatusCreated, account)

	case "get-token":
		creds, ok := credentialsFrom(w, r)
		if !ok {
			return
		}
		tok, err := h.mail.Token(ctx, creds)
		if err != nil {
			h.mailError(w, r, "Failed to get token", err)
			return
		}
		writeJSON(w, http.StatusOK, tok)

	case "new-inbox":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		inbox, err := h.mail.NewInbox(ctx, h.clock())
		if err != nil {
			h.mailError(w, r, "Failed to create inbox", err)
			return
		}
		h.logger.Info().Ctx(ctx).Str("address", inbox.Account.Address).Msg("inbox created")
		writeJSON(w, http.StatusCreated, inbox)

	case "messages":
		token, ok := mailToken(w, r)
		if !ok {
			return
		}
		res, err := h.mail.Messages(ctx, token, page)
		if err != nil {
			h.mailError(w, r, "Failed to fetch messages", err)
			return
		}
		mailtm.AnnotateReceived(res.Members, h.clock())
		writeJSON(w, http.StatusOK, res)

	case "message":
		token, ok := mailToken(w, r)
		if !ok {
			return
		}
		if !requireID(w, id) {
			return
		}
		switch r.Method {
		case http.MethodGet:
			msg, err := h.mail.Message(ctx, token, id)
			if err != nil {
				h.mailError(w, r, "Failed to fetch message", err)
				return
			}
			writeJSON(w, http.StatusOK, msg)
		case http.MethodDelete:
			if err := h.mail.DeleteMessage(ctx, token, id); err != nil {
				h.mailError(w, r, "Failed to delete message", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPatch:
			res, err := h.mail.MarkSeen(ctx, token, id)
			if err != nil {
				h.mailError(w, r, "Failed to mark message as read", err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		default:
			writeError(w, http.StatusBadRequest, "Invalid request")
		}

	case "source":
		token, ok := mailToken(w, r)
		if !ok {
			return
		}
		if !requireID(w, id) {
			return
		}
		src, err := h.mail.Source(ctx, token, id)
		if err != nil {
			h.mailError(w, r, "Failed to fetch message source", err)
			return
		}
		writeJSON(w, http.StatusOK, src)

	case "account":
		token, ok := mailToken(w, r)
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			var (
				account mailtm.Account
				err     error
			)
			if id != "" {
				account, err = h.mail.Account(ctx, token, id)
			} else {
				account, err = h.mail.Me(ctx, token)
			}
			if err != nil {
				h.mailError(w, r, "Failed to fetch account", err)
				return
			}
			writeJSON(w, http.StatusOK, account)
		case http.MethodDelete:
			if !requireID(w, id) {
				return
			}
			if err := h.mail.DeleteAccount(ctx, token, id); err != nil {
				h.mailError(w, r, "Failed to delete account", err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusBadRequest, "Invalid request")
		}

	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
	}
}

// mailError reports an upstream failure. Classified API errors keep the
// upstream status; anything else is a 500.
func (h *handlers) mailError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error().Ctx(r.Context()).Err(err).Msg(msg)

	if errors.Is(err, mailtm.ErrNoDomains) {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: msg, Details: err.Error()})
		return
	}

	var apiErr *mailtm.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 {
		writeJSON(w, apiErr.StatusCode, errorBody{
			Error:   msg,
			Details: apiErr.Message,
			Type:    string(apiErr.Type),
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorBody{Error: msg, Details: err.Error()})
}

func credentialsFrom(w http.ResponseWriter, r *http.Request) (mailtm.Credentials, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return mailtm.Credentials{}, false
	}

	var creds mailtm.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Address == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing address or password")
		return mailtm.Credentials{}, false
	}
	if !mailtm.IsValidEmail(creds.Address) {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return mailtm.Credentials{}, false
	}
	return creds, true
}

func mailToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := auth.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return "", false
	}
	return token, true
}

func requireID(w http.ResponseWriter, id string) bool {
	if id == "" {
		writeError(w, http.StatusBadRequest, "Missing id")
		return false
	}
	return true
}
