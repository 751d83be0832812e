package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/letmehues/flink/pkg/bridge"
	"github.com/letmehues/flink/pkg/planner"
)

func TestGetSQLState(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{bridge.CodeUnsupportedEngineType, SQLStateFeatureNotSupported},
		{bridge.CodeUnsupportedPlannerType, SQLStateFeatureNotSupported},
		{bridge.CodeNotYetSupported, SQLStateFeatureNotSupported},
		{bridge.CodeStandaloneNull, SQLStateDataException},
		{bridge.CodeAmbiguousDynamicType, SQLStateSyntaxError},
		{CodeInvalidRequest, SQLStateSyntaxError},
		{CodeParseError, SQLStateSyntaxError},
		{CodeSessionNotFound, SQLStateConnectionException},
		{"XXX9999", SQLStateGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := GetSQLState(tt.code); got != tt.want {
				t.Errorf("GetSQLState(%s) = %s, want %s", tt.code, got, tt.want)
			}
		})
	}
}

func TestServiceError_Error(t *testing.T) {
	err := New(CodeInvalidRequest, "bad input")
	want := "[SVC0001] bad input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestServiceError_Is(t *testing.T) {
	err := NewSessionNotFoundError("abc")
	if !errors.Is(err, &ServiceError{Code: CodeSessionNotFound}) {
		t.Error("expected errors.Is to match on code")
	}
	if errors.Is(err, &ServiceError{Code: CodeInvalidRequest}) {
		t.Error("expected errors.Is not to match a different code")
	}
}

func TestFromError_PassesServiceErrorThrough(t *testing.T) {
	orig := NewParseError("syntax error near FROM")
	got := FromError(fmt.Errorf("handling request: %w", orig))
	if got != orig {
		t.Errorf("expected the wrapped ServiceError, got %+v", got)
	}
}

func TestFromError_ConvertsBridgeError(t *testing.T) {
	f := planner.NewFactory()
	berr := bridge.NewUnsupportedPlannerTypeError(f.MakeKind(planner.KindAny, true))

	got := FromError(berr)
	if got.Code != bridge.CodeUnsupportedPlannerType {
		t.Errorf("expected code %s, got %s", bridge.CodeUnsupportedPlannerType, got.Code)
	}
	if got.SQLState != SQLStateFeatureNotSupported {
		t.Errorf("expected SQL state %s, got %s", SQLStateFeatureNotSupported, got.SQLState)
	}
}

func TestFromError_WrapsUnknownErrors(t *testing.T) {
	got := FromError(errors.New("boom"))
	if got.Code != CodeInternalError {
		t.Errorf("expected code %s, got %s", CodeInternalError, got.Code)
	}
	if got.SQLState != SQLStateGeneralError {
		t.Errorf("expected SQL state %s, got %s", SQLStateGeneralError, got.SQLState)
	}
}

func TestFromError_Nil(t *testing.T) {
	if got := FromError(nil); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := New(CodeSessionNotFound, "session not found or expired: abc").ToResponse()

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded ErrorResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Success {
		t.Error("expected success=false")
	}
	if decoded.Code != CodeSessionNotFound || decoded.SQLState != SQLStateConnectionException {
		t.Errorf("unexpected decoded response: %+v", decoded)
	}
}
