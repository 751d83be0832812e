// Package handlers provides HTTP handlers for the type service API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/letmehues/flink/pkg/config"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/apierror"
	"github.com/letmehues/flink/server/types"
)

// SessionHandler handles planning-session lifecycle requests.
type SessionHandler struct {
	sessionMgr *session.Manager
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionMgr *session.Manager) *SessionHandler {
	return &SessionHandler{sessionMgr: sessionMgr}
}

// Create opens a new planning session with a fresh type bridge.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequestError("malformed request body"))
		return
	}

	database := req.Database
	if database == "" {
		database = config.DefaultDatabase
	}
	schema := req.Schema
	if schema == "" {
		schema = config.DefaultSchema
	}

	s, err := h.sessionMgr.CreateSession(r.Context(), database, schema)
	if err != nil {
		sendError(w, apierror.NewInvalidRequestError(err.Error()))
		return
	}

	sendJSON(w, http.StatusCreated, types.SessionResponse{
		Success: true,
		Data:    sessionData(s),
	})
}

// Close ends a planning session, discarding its conversion cache.
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := h.sessionMgr.CloseSession(r.Context(), handle); err != nil {
		sendError(w, apierror.NewSessionNotFoundError(handle))
		return
	}
	sendJSON(w, http.StatusOK, types.SessionResponse{Success: true})
}

// List returns all live planning sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions := h.sessionMgr.ListSessions(r.Context())
	data := make([]types.SessionData, len(sessions))
	for i, s := range sessions {
		data[i] = *sessionData(s)
	}
	sendJSON(w, http.StatusOK, types.SessionListResponse{Success: true, Data: data})
}

func sessionData(s *session.Session) *types.SessionData {
	return &types.SessionData{
		Handle:    s.Handle,
		Database:  s.Database,
		Schema:    s.Schema,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// sendJSON writes a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// sendError writes the unified error envelope. Bridge errors keep their own
// code; everything else is classified by the apierror package.
func sendError(w http.ResponseWriter, err error) {
	se := apierror.FromError(err)
	sendJSON(w, statusForCode(se.Code), se.ToResponse())
}

func statusForCode(code string) int {
	switch code {
	case apierror.CodeInvalidRequest, apierror.CodeParseError:
		return http.StatusBadRequest
	case apierror.CodeSessionNotFound:
		return http.StatusNotFound
	case apierror.CodeInternalError:
		return http.StatusInternalServerError
	default:
		// Bridge errors: the request was well-formed but the types cannot
		// be converted.
		return http.StatusUnprocessableEntity
	}
}
