// Package config provides configuration constants for the type bridge.
package config

import (
	"math"
	"time"
)

// Default database and schema settings for table references.
const (
	DefaultDatabase = "DEFAULT"
	DefaultSchema   = "PUBLIC"
)

// Engine-side user defaults for DECIMAL types requested without explicit
// precision and scale. These take precedence over the planner's own defaults
// so that engine -> planner -> engine round-trips stay consistent.
const (
	DefaultDecimalPrecision = 38
	DefaultDecimalScale     = 18
)

// MaxDecimalPrecision is the largest decimal precision the planner can
// represent.
const MaxDecimalPrecision = 38

// Variable-length text settings. An unbounded engine string must not reach
// the planner as a raw oversized integer; requests at or beyond
// MaxVarcharLength receive DefaultVarcharLength instead.
const (
	DefaultVarcharLength = 65536
	MaxVarcharLength     = math.MaxInt32
)

// DefaultSessionTimeout is the idle timeout for planning sessions created
// through the type service.
const DefaultSessionTimeout = 24 * time.Hour
