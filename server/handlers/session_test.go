package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/letmehues/flink/pkg/config"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/types"
)

func TestSessionHandler_Create(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSessionHandler(mgr)

	w := postJSON(t, h.Create, types.CreateSessionRequest{
		Database: "ANALYTICS",
		Schema:   "REPORTS",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected a successful response with data")
	}
	if resp.Data.Handle == "" {
		t.Error("expected a non-empty session handle")
	}
	if resp.Data.Database != "ANALYTICS" || resp.Data.Schema != "REPORTS" {
		t.Errorf("unexpected session context: %s.%s", resp.Data.Database, resp.Data.Schema)
	}
}

func TestSessionHandler_Create_Defaults(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSessionHandler(mgr)

	w := postJSON(t, h.Create, types.CreateSessionRequest{})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var resp types.SessionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Data.Database != config.DefaultDatabase {
		t.Errorf("expected default database %s, got %s", config.DefaultDatabase, resp.Data.Database)
	}
	if resp.Data.Schema != config.DefaultSchema {
		t.Errorf("expected default schema %s, got %s", config.DefaultSchema, resp.Data.Schema)
	}
}

func TestSessionHandler_CloseAndList(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSessionHandler(mgr)

	s := newTestSession(t, mgr)

	r := chi.NewRouter()
	r.Delete("/v1/sessions/{handle}", h.Close)

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/"+s.Handle, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)

	var listResp types.SessionListResponse
	if err := json.Unmarshal(listW.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(listResp.Data) != 0 {
		t.Errorf("expected no live sessions, got %d", len(listResp.Data))
	}
}

func TestSessionHandler_Close_Unknown(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSessionHandler(mgr)

	r := chi.NewRouter()
	r.Delete("/v1/sessions/{handle}", h.Close)

	req := httptest.NewRequest(http.MethodDelete, "/v1/sessions/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestSessionHandler_Create_MalformedBody(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewSessionHandler(mgr)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
