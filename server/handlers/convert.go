package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/letmehues/flink/pkg/planner"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/apierror"
	"github.com/letmehues/flink/server/types"
)

// ConvertHandler handles type conversion requests against a session's
// bridge.
type ConvertHandler struct {
	sessionMgr *session.Manager
}

// NewConvertHandler creates a new conversion handler.
func NewConvertHandler(sessionMgr *session.Manager) *ConvertHandler {
	return &ConvertHandler{sessionMgr: sessionMgr}
}

// Convert maps an engine type to its canonical planner type.
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req types.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequestError("malformed request body"))
		return
	}

	s, err := h.sessionMgr.GetSession(r.Context(), req.SessionHandle)
	if err != nil {
		sendError(w, apierror.NewSessionNotFoundError(req.SessionHandle))
		return
	}

	engineType, err := engineTypeFromDescriptor(req.Type)
	if err != nil {
		sendError(w, apierror.NewInvalidRequestError(err.Error()))
		return
	}

	plannerType, err := s.Bridge.CreatePlannerType(engineType, req.Nullable)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, types.ConvertResponse{
		Success: true,
		Data: &types.ConvertData{
			Type:      descriptorFromPlanner(plannerType),
			CacheSize: s.Bridge.CacheSize(),
		},
	})
}

// Reverse maps a planner type back to an engine type.
func (h *ConvertHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req types.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequestError("malformed request body"))
		return
	}

	s, err := h.sessionMgr.GetSession(r.Context(), req.SessionHandle)
	if err != nil {
		sendError(w, apierror.NewSessionNotFoundError(req.SessionHandle))
		return
	}

	plannerType, err := plannerTypeFromDescriptor(s.Bridge.Factory(), req.Type)
	if err != nil {
		sendError(w, apierror.NewInvalidRequestError(err.Error()))
		return
	}

	engineType, err := s.Bridge.ToEngineType(plannerType)
	if err != nil {
		sendError(w, err)
		return
	}

	d := descriptorFromEngine(engineType)
	sendJSON(w, http.StatusOK, types.ReverseResponse{Success: true, Data: &d})
}

// Common computes the least-restrictive type of the supplied planner types.
func (h *ConvertHandler) Common(w http.ResponseWriter, r *http.Request) {
	var req types.CommonTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequestError("malformed request body"))
		return
	}
	if len(req.Types) == 0 {
		sendError(w, apierror.NewInvalidRequestError("at least one type is required"))
		return
	}

	s, err := h.sessionMgr.GetSession(r.Context(), req.SessionHandle)
	if err != nil {
		sendError(w, apierror.NewSessionNotFoundError(req.SessionHandle))
		return
	}

	operands := make([]*planner.Type, len(req.Types))
	for i, d := range req.Types {
		operand, err := plannerTypeFromDescriptor(s.Bridge.Factory(), d)
		if err != nil {
			sendError(w, apierror.NewInvalidRequestError(err.Error()))
			return
		}
		operands[i] = operand
	}

	result, err := s.Bridge.LeastRestrictive(operands)
	if err != nil {
		sendError(w, err)
		return
	}

	d := descriptorFromPlanner(result)
	sendJSON(w, http.StatusOK, types.CommonTypeResponse{Success: true, Data: &d})
}
