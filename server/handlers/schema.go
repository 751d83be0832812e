package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/letmehues/flink/pkg/ddl"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/apierror"
	"github.com/letmehues/flink/server/types"
)

// SchemaHandler derives planner row types from CREATE TABLE statements.
type SchemaHandler struct {
	sessionMgr *session.Manager
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler(sessionMgr *session.Manager) *SchemaHandler {
	return &SchemaHandler{sessionMgr: sessionMgr}
}

// Derive parses a CREATE TABLE statement and converts the resulting engine
// row type through the session's bridge.
func (h *SchemaHandler) Derive(w http.ResponseWriter, r *http.Request) {
	var req types.DeriveSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequestError("malformed request body"))
		return
	}
	if req.SQL == "" {
		sendError(w, apierror.NewInvalidRequestError("sql is required"))
		return
	}

	s, err := h.sessionMgr.GetSession(r.Context(), req.SessionHandle)
	if err != nil {
		sendError(w, apierror.NewSessionNotFoundError(req.SessionHandle))
		return
	}

	schema, err := ddl.DeriveTableSchema(req.SQL)
	if err != nil {
		sendError(w, apierror.NewParseError(err.Error()))
		return
	}

	plannerType, err := s.Bridge.CreatePlannerType(schema.RowType, false)
	if err != nil {
		sendError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, types.DeriveSchemaResponse{
		Success: true,
		Data: &types.DeriveSchemaData{
			QualifiedName: ddl.QualifiedName(schema.Database, schema.Schema, schema.Table),
			EngineType:    descriptorFromEngine(schema.RowType),
			PlannerType:   descriptorFromPlanner(plannerType),
		},
	})
}
