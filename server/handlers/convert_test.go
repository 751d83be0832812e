package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/letmehues/flink/pkg/bridge"
	"github.com/letmehues/flink/pkg/session"
	"github.com/letmehues/flink/server/apierror"
	"github.com/letmehues/flink/server/types"
)

func newTestSession(t *testing.T, mgr *session.Manager) *session.Session {
	t.Helper()
	s, err := mgr.CreateSession(context.Background(), "PROD", "PUBLIC")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	return s
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestConvertHandler_Convert(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Convert, types.ConvertRequest{
		SessionHandle: s.Handle,
		Type:          types.TypeDescriptor{Kind: "INT"},
		Nullable:      true,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ConvertResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected a successful response with data")
	}
	if resp.Data.Type.Kind != "INTEGER" || !resp.Data.Type.Nullable {
		t.Errorf("expected nullable INTEGER, got %+v", resp.Data.Type)
	}
	if resp.Data.Type.Digest != "INTEGER" {
		t.Errorf("expected digest INTEGER, got %q", resp.Data.Type.Digest)
	}
	if resp.Data.CacheSize != 1 {
		t.Errorf("expected cache size 1, got %d", resp.Data.CacheSize)
	}
}

func TestConvertHandler_Convert_CharRejected(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Convert, types.ConvertRequest{
		SessionHandle: s.Handle,
		Type:          types.TypeDescriptor{Kind: "CHAR"},
		Nullable:      true,
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp apierror.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Code != bridge.CodeUnsupportedEngineType {
		t.Errorf("expected code %s, got %s", bridge.CodeUnsupportedEngineType, resp.Code)
	}
	if resp.SQLState != apierror.SQLStateFeatureNotSupported {
		t.Errorf("expected SQL state %s, got %s", apierror.SQLStateFeatureNotSupported, resp.SQLState)
	}
}

func TestConvertHandler_Convert_UnknownSession(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Convert, types.ConvertRequest{
		SessionHandle: "nope",
		Type:          types.TypeDescriptor{Kind: "INT"},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestConvertHandler_Reverse(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Reverse, types.ReverseRequest{
		SessionHandle: s.Handle,
		Type:          types.TypeDescriptor{Kind: "BIGINT", Nullable: true},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ReverseResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Data == nil || resp.Data.Kind != "LONG" {
		t.Errorf("expected engine LONG, got %+v", resp.Data)
	}
}

func TestConvertHandler_Reverse_DecimalNotYetSupported(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Reverse, types.ReverseRequest{
		SessionHandle: s.Handle,
		Type:          types.TypeDescriptor{Kind: "DECIMAL", Precision: 10, Scale: 2},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp apierror.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Code != bridge.CodeNotYetSupported {
		t.Errorf("expected code %s, got %s", bridge.CodeNotYetSupported, resp.Code)
	}
}

func TestConvertHandler_Common(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Common, types.CommonTypeRequest{
		SessionHandle: s.Handle,
		Types: []types.TypeDescriptor{
			{Kind: "INTEGER"},
			{Kind: "INTEGER"},
			{Kind: "INTEGER", Nullable: true},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.CommonTypeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Data == nil || resp.Data.Kind != "INTEGER" || !resp.Data.Nullable {
		t.Errorf("expected nullable INTEGER, got %+v", resp.Data)
	}
}

func TestConvertHandler_Common_DynamicConflict(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	w := postJSON(t, h.Common, types.CommonTypeRequest{
		SessionHandle: s.Handle,
		Types: []types.TypeDescriptor{
			{Kind: "ANY"},
			{Kind: "INTEGER"},
		},
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp apierror.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Code != bridge.CodeAmbiguousDynamicType {
		t.Errorf("expected code %s, got %s", bridge.CodeAmbiguousDynamicType, resp.Code)
	}
}

func TestConvertHandler_Convert_StructuredDescriptor(t *testing.T) {
	mgr := session.NewManager(time.Hour)
	s := newTestSession(t, mgr)
	h := NewConvertHandler(mgr)

	intDesc := types.TypeDescriptor{Kind: "INT"}
	w := postJSON(t, h.Convert, types.ConvertRequest{
		SessionHandle: s.Handle,
		Type: types.TypeDescriptor{
			Kind:    "ARRAY",
			Element: &intDesc,
		},
		Nullable: false,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ConvertResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Data.Type.Kind != "ARRAY" {
		t.Fatalf("expected ARRAY, got %s", resp.Data.Type.Kind)
	}
	if resp.Data.Type.Element == nil || !resp.Data.Type.Element.Nullable {
		t.Error("expected array element to be forced nullable")
	}
}
