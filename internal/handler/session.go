package handler

import (
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

// SessionHandler handles HTTP requests for generator sessions.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleStart handles POST /api/v1/sessions requests.
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Start(r.Context())
	if err != nil {
		slog.Error("failed to start session", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/session requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleSetOptions handles PATCH /api/v1/session/options requests.
func (h *SessionHandler) HandleSetOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.OptionsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.SetOptions(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGenerate handles POST /api/v1/session/generate requests.
func (h *SessionHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.SessionGenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.service.Generate(r.Context(), id, req)
	if err != nil {
		slog.Debug("session generate rejected", "session_id", id, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleReset handles POST /api/v1/session/reset requests.
func (h *SessionHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Reset(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
