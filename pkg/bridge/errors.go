package bridge

import (
	"errors"
	"fmt"

	"github.com/letmehues/flink/pkg/planner"
	"github.com/letmehues/flink/pkg/types"
)

// Bridge error codes. All bridge failures are deterministic and surfaced
// synchronously; there is no transient or retryable class.
const (
	// Conversion errors (TYP01xx)
	CodeUnsupportedEngineType  = "TYP0101"
	CodeUnsupportedPlannerType = "TYP0102"
	CodeStandaloneNull         = "TYP0103"

	// Coercion errors (TYP02xx)
	CodeAmbiguousDynamicType = "TYP0201"

	// Known gaps (TYP09xx)
	CodeNotYetSupported = "TYP0901"
)

// BridgeError represents a type-bridge failure with a stable code.
type BridgeError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is checks if this error matches another error by code.
func (e *BridgeError) Is(target error) bool {
	var be *BridgeError
	if errors.As(target, &be) {
		return e.Code == be.Code
	}
	return false
}

// IsCode reports whether err is a BridgeError carrying the given code.
func IsCode(err error, code string) bool {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// NewUnsupportedEngineTypeError creates an error for an engine type with no
// planner equivalent.
func NewUnsupportedEngineTypeError(t types.EngineType) *BridgeError {
	return &BridgeError{
		Code:    CodeUnsupportedEngineType,
		Message: fmt.Sprintf("engine type %s has no planner representation", t),
	}
}

// NewUnsupportedPlannerTypeError creates an error for a planner type with no
// engine equivalent.
func NewUnsupportedPlannerTypeError(t *planner.Type) *BridgeError {
	return &BridgeError{
		Code:    CodeUnsupportedPlannerType,
		Message: fmt.Sprintf("planner type %s has no engine representation", t),
	}
}

// NewNoCommonTypeError creates an error for operand kinds the promotion
// algorithm cannot combine into an engine-representable type.
func NewNoCommonTypeError(ts []*planner.Type) *BridgeError {
	return &BridgeError{
		Code:    CodeUnsupportedPlannerType,
		Message: fmt.Sprintf("no common planner type for operands %s", formatTypeList(ts)),
	}
}

// NewStandaloneNullError creates an error for a bare NULL planner type:
// nullability must always attach to a concrete engine type.
func NewStandaloneNullError() *BridgeError {
	return &BridgeError{
		Code:    CodeStandaloneNull,
		Message: "standalone NULL type cannot be mapped to an engine type",
	}
}

// NewAmbiguousDynamicTypeError creates an error for a dynamic type mixed
// with a differing concrete type during coercion.
func NewAmbiguousDynamicTypeError(ts []*planner.Type) *BridgeError {
	return &BridgeError{
		Code:    CodeAmbiguousDynamicType,
		Message: fmt.Sprintf("dynamic type mixed with differing concrete types in %s", formatTypeList(ts)),
	}
}

// NewNotYetSupportedError creates an error for a known, intentional gap.
func NewNotYetSupportedError(what string) *BridgeError {
	return &BridgeError{
		Code:    CodeNotYetSupported,
		Message: fmt.Sprintf("%s is not supported yet", what),
	}
}

func formatTypeList(ts []*planner.Type) string {
	out := "["
	for i, t := range ts {
		if i > 0 {
			out += ", "
		}
		out += t.String()
	}
	return out + "]"
}
