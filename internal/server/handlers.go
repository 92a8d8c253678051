package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/redletters/rlauth/auth"
)

type handlers struct {
	svc TokenService
}

// setTokenRequest is the PUT /v1/auth/token body.
type setTokenRequest struct {
	Token string `json:"token"`
}

func (h *handlers) getToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.svc.ResolveToken(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(ctx, w, token, http.StatusOK)
}

func (h *handlers) setToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req setTokenRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSONError(ctx, w, "malformed request body", "bad_request", http.StatusBadRequest)
		return
	}

	if err := h.svc.StoreToken(ctx, req.Token); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteToken(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteToken(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps an auth error to its status code and stable message.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	code := auth.Code(err)

	status := http.StatusInternalServerError
	switch code {
	case auth.CodeNotFound:
		status = http.StatusNotFound
	case auth.CodeInvalidFormat:
		status = http.StatusUnprocessableEntity
	case auth.CodeKeychainError, auth.CodeFileError:
		status = http.StatusBadGateway
	case auth.CodeCanceled:
		if errors.Is(err, r.Context().Err()) {
			// Client went away; nobody reads the response
			return
		}
		status = http.StatusServiceUnavailable
	default:
		slog.ErrorContext(ctx, "token operation failed", "error", auth.Message(err))
	}

	writeJSONError(ctx, w, auth.Message(err), code, status)
}
