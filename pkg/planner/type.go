// Package planner implements the relational-algebra type system consumed by
// the SQL validator and logical optimizer. Types are immutable and
// canonicalized: within one Factory, structurally equal types share a single
// instance, so the optimizer can compare types by pointer identity.
package planner

import (
	"fmt"
	"strings"

	"github.com/letmehues/flink/pkg/types"
)

// Kind identifies a planner type variant.
type Kind int

// Planner type kinds.
const (
	KindBoolean Kind = iota
	KindTinyInt
	KindSmallInt
	KindInteger
	KindBigInt
	KindFloat
	KindDouble
	KindDecimal
	KindChar
	KindVarchar
	KindDate
	KindTime
	KindTimestamp
	KindVarBinary
	KindNull   // untyped NULL literal marker
	KindAny    // fully dynamic type
	KindSymbol // keyword-literal operands (e.g. trim flags)
	KindRow
	KindArray
	KindMap
)

// String returns the planner type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "BOOLEAN"
	case KindTinyInt:
		return "TINYINT"
	case KindSmallInt:
		return "SMALLINT"
	case KindInteger:
		return "INTEGER"
	case KindBigInt:
		return "BIGINT"
	case KindFloat:
		return "FLOAT"
	case KindDouble:
		return "DOUBLE"
	case KindDecimal:
		return "DECIMAL"
	case KindChar:
		return "CHAR"
	case KindVarchar:
		return "VARCHAR"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindVarBinary:
		return "VARBINARY"
	case KindNull:
		return "NULL"
	case KindAny:
		return "ANY"
	case KindSymbol:
		return "SYMBOL"
	case KindRow:
		return "ROW"
	case KindArray:
		return "ARRAY"
	case KindMap:
		return "MAP"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

// PrecisionNone marks kinds that carry no precision.
const PrecisionNone = -1

// Field is a named component of a row type.
type Field struct {
	Name string
	Type *Type
}

// Type is one planner type. Instances are created only through a Factory and
// must never be mutated after construction: canonicalization hashes them by
// digest, and the optimizer compares them by identity.
type Type struct {
	kind      Kind
	nullable  bool
	precision int
	scale     int
	fields    []Field // KindRow
	elem      *Type   // KindArray
	key       *Type   // KindMap
	value     *Type   // KindMap

	// origin is the engine type this planner type was derived from, when it
	// was built by the bridge. Planner types built independently by the
	// optimizer carry no origin and reverse-map structurally.
	origin *types.EngineType

	digest string
}

// Kind returns the type's kind.
func (t *Type) Kind() Kind { return t.kind }

// IsNullable reports whether the type admits NULL values.
func (t *Type) IsNullable() bool { return t.nullable }

// Precision returns the precision, or PrecisionNone when not applicable.
func (t *Type) Precision() int { return t.precision }

// Scale returns the scale, or PrecisionNone when not applicable.
func (t *Type) Scale() int { return t.scale }

// Fields returns the ordered row fields, nil for non-row kinds.
func (t *Type) Fields() []Field { return t.fields }

// Element returns the array element type, nil for non-array kinds.
func (t *Type) Element() *Type { return t.elem }

// KeyType returns the map key type, nil for non-map kinds.
func (t *Type) KeyType() *Type { return t.key }

// ValueType returns the map value type, nil for non-map kinds.
func (t *Type) ValueType() *Type { return t.value }

// Origin returns the engine type this type was derived from, or nil.
func (t *Type) Origin() *types.EngineType { return t.origin }

// Digest returns the full canonical string form, including nullability.
func (t *Type) Digest() string { return t.digest }

// String returns the canonical form, same as Digest.
func (t *Type) String() string { return t.digest }

// IsNumeric returns true for exact and approximate numeric kinds.
func (t *Type) IsNumeric() bool {
	switch t.kind {
	case KindTinyInt, KindSmallInt, KindInteger, KindBigInt, KindFloat, KindDouble, KindDecimal:
		return true
	default:
		return false
	}
}

// IsCharacter returns true for character string kinds.
func (t *Type) IsCharacter() bool {
	return t.kind == KindChar || t.kind == KindVarchar
}

// computeDigest builds the canonical string for a type. The digest fully
// determines canonical identity, so everything that distinguishes two types
// must appear in it; the origin back-reference deliberately does not.
func computeDigest(t *Type) string {
	var sb strings.Builder
	writeDigest(&sb, t)
	return sb.String()
}

func writeDigest(sb *strings.Builder, t *Type) {
	switch t.kind {
	case KindDecimal:
		fmt.Fprintf(sb, "DECIMAL(%d, %d)", t.precision, t.scale)
	case KindChar, KindVarchar:
		fmt.Fprintf(sb, "%s(%d)", t.kind, t.precision)
	case KindRow:
		sb.WriteString("ROW(")
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(" ")
			sb.WriteString(f.Type.digest)
		}
		sb.WriteString(")")
	case KindArray:
		sb.WriteString("ARRAY<")
		sb.WriteString(t.elem.digest)
		sb.WriteString(">")
	case KindMap:
		sb.WriteString("MAP<")
		sb.WriteString(t.key.digest)
		sb.WriteString(", ")
		sb.WriteString(t.value.digest)
		sb.WriteString(">")
	default:
		sb.WriteString(t.kind.String())
	}
	if !t.nullable {
		sb.WriteString(" NOT NULL")
	}
}
