// Package apierror maps type-bridge failures onto the type service's wire
// error envelope.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/letmehues/flink/pkg/bridge"
)

// Service error codes for failures that occur outside the bridge itself.
const (
	CodeInvalidRequest  = "SVC0001"
	CodeSessionNotFound = "SVC0002"
	CodeParseError      = "SVC0003"
	CodeInternalError   = "SVC0004"
)

// SQLState represents SQL standard error states.
const (
	SQLStateSuccess             = "00000"
	SQLStateFeatureNotSupported = "0A000"
	SQLStateSyntaxError         = "42000"
	SQLStateDataException       = "22000"
	SQLStateConnectionException = "08003"
	SQLStateGeneralError        = "HY000"
)

// GetSQLState returns the SQL state for a given error code.
func GetSQLState(code string) string {
	mapping := map[string]string{
		bridge.CodeUnsupportedEngineType:  SQLStateFeatureNotSupported,
		bridge.CodeUnsupportedPlannerType: SQLStateFeatureNotSupported,
		bridge.CodeNotYetSupported:        SQLStateFeatureNotSupported,
		bridge.CodeStandaloneNull:         SQLStateDataException,
		bridge.CodeAmbiguousDynamicType:   SQLStateSyntaxError,
		CodeInvalidRequest:                SQLStateSyntaxError,
		CodeParseError:                    SQLStateSyntaxError,
		CodeSessionNotFound:               SQLStateConnectionException,
	}

	if state, ok := mapping[code]; ok {
		return state
	}
	return SQLStateGeneralError
}

// ServiceError represents a type-service error with a stable code and SQL
// state.
type ServiceError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	SQLState string `json:"sqlState,omitempty"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is checks if this error matches another error by code.
func (e *ServiceError) Is(target error) bool {
	var se *ServiceError
	if errors.As(target, &se) {
		return e.Code == se.Code
	}
	return false
}

// MarshalJSON implements custom JSON marshaling.
func (e *ServiceError) MarshalJSON() ([]byte, error) {
	type Alias ServiceError
	return json.Marshal(&struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	})
}

// ErrorResponse represents the JSON response structure for errors. This is
// the unified response type used by all handlers.
type ErrorResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Code     string `json:"code"`
	SQLState string `json:"sqlState,omitempty"`
}

// ToResponse converts the ServiceError to an ErrorResponse.
func (e *ServiceError) ToResponse() *ErrorResponse {
	return &ErrorResponse{
		Success:  false,
		Message:  e.Message,
		Code:     e.Code,
		SQLState: e.SQLState,
	}
}

// New creates a ServiceError with the given code and message.
func New(code, message string) *ServiceError {
	return &ServiceError{
		Code:     code,
		Message:  message,
		SQLState: GetSQLState(code),
	}
}

// NewInvalidRequestError creates an error for a malformed request.
func NewInvalidRequestError(reason string) *ServiceError {
	return New(CodeInvalidRequest, fmt.Sprintf("invalid request: %s", reason))
}

// NewSessionNotFoundError creates an error for an unknown or expired
// session handle.
func NewSessionNotFoundError(handle string) *ServiceError {
	return New(CodeSessionNotFound, fmt.Sprintf("session not found or expired: %s", handle))
}

// NewParseError creates an error for unparseable DDL input.
func NewParseError(reason string) *ServiceError {
	return New(CodeParseError, reason)
}

// FromError converts any error to a ServiceError. Bridge errors keep their
// own code and get a SQL state; anything else becomes an internal error.
func FromError(err error) *ServiceError {
	if err == nil {
		return nil
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}

	var be *bridge.BridgeError
	if errors.As(err, &be) {
		return &ServiceError{
			Code:     be.Code,
			Message:  be.Message,
			SQLState: GetSQLState(be.Code),
		}
	}

	return New(CodeInternalError, err.Error())
}
