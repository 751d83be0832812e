package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/apierror"
	"github.com/letmehues/flink/server/types"
)

func TestSchemaHandler_Derive(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewSchemaHandler(mgr)

	w := postJSON(t, h.Derive, types.DeriveSchemaRequest{
		SessionHandle: s.Handle,
		SQL: `CREATE TABLE orders (
			id BIGINT NOT NULL,
			amount DECIMAL(10, 2),
			note VARCHAR(255)
		)`,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.DeriveSchemaResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected a successful response with data")
	}
	if resp.Data.QualifiedName != "DEFAULT.PUBLIC.ORDERS" {
		t.Errorf("unexpected qualified name %q", resp.Data.QualifiedName)
	}
	if resp.Data.EngineType.Kind != "ROW" || len(resp.Data.EngineType.Fields) != 3 {
		t.Errorf("unexpected engine row type: %+v", resp.Data.EngineType)
	}
	if resp.Data.PlannerType.Kind != "ROW" {
		t.Errorf("unexpected planner type kind %q", resp.Data.PlannerType.Kind)
	}

	id := resp.Data.EngineType.Fields[0]
	if id.Name != "ID" && id.Name != "id" {
		t.Errorf("unexpected first column name %q", id.Name)
	}
	if id.Nullable {
		t.Error("expected NOT NULL column to be non-nullable")
	}
}

func TestSchemaHandler_Derive_ParseError(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewSchemaHandler(mgr)

	w := postJSON(t, h.Derive, types.DeriveSchemaRequest{
		SessionHandle: s.Handle,
		SQL:           "SELECT * FROM orders",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp apierror.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Code != apierror.CodeParseError {
		t.Errorf("expected code %s, got %s", apierror.CodeParseError, resp.Code)
	}
}

func TestSchemaHandler_Derive_MissingSQL(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewSchemaHandler(mgr)

	w := postJSON(t, h.Derive, types.DeriveSchemaRequest{SessionHandle: s.Handle})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSchemaHandler_Derive_UnknownSession(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSchemaHandler(mgr)

	w := postJSON(t, h.Derive, types.DeriveSchemaRequest{
		SessionHandle: "missing",
		SQL:           "CREATE TABLE t (id INT)",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
