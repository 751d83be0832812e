// Package types defines the engine-native logical type system used for
// execution-time data representation.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies an engine type variant. The set is closed: the bridge
// matches exhaustively over it and rejects anything it does not know.
type Kind int

// Engine type kinds.
const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindDate
	KindTime
	KindTimestamp
	KindBinary
	KindChar // retained for completeness; the bridge rejects it
	KindDecimal
	KindRow
	KindArray
	KindMap
)

// String returns the engine type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "BOOLEAN"
	case KindByte:
		return "BYTE"
	case KindShort:
		return "SHORT"
	case KindInt:
		return "INT"
	case KindLong:
		return "LONG"
	case KindFloat:
		return "FLOAT"
	case KindDouble:
		return "DOUBLE"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindBinary:
		return "BINARY"
	case KindChar:
		return "CHAR"
	case KindDecimal:
		return "DECIMAL"
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

// PrecisionUnspecified marks a decimal requested without an explicit
// precision or scale. The bridge substitutes the engine user defaults.
const PrecisionUnspecified = -1

// Field is a named, individually nullable component of a row type.
type Field struct {
	Name     string
	Type     EngineType
	Nullable bool
}

// EngineType is the closed tagged variant describing one engine type.
// Equality is structural; use Equal or compare Digest values.
type EngineType struct {
	Kind      Kind
	Precision int         // KindDecimal only
	Scale     int         // KindDecimal only
	Fields    []Field     // KindRow only
	Elem      *EngineType // KindArray only
	Key       *EngineType // KindMap only
	Value     *EngineType // KindMap only
}

// Primitive returns the engine type for a primitive kind. Composite kinds
// have dedicated constructors.
func Primitive(k Kind) EngineType {
	return EngineType{Kind: k}
}

// Decimal returns an exact numeric type. Pass PrecisionUnspecified for
// either parameter to request the engine user defaults.
func Decimal(precision, scale int) EngineType {
	return EngineType{Kind: KindDecimal, Precision: precision, Scale: scale}
}

// Row returns a row type with the given ordered fields.
func Row(fields ...Field) EngineType {
	return EngineType{Kind: KindRow, Fields: fields}
}

// Array returns an array type with the given element type.
func Array(elem EngineType) EngineType {
	return EngineType{Kind: KindArray, Elem: &elem}
}

// Map returns a map type with the given key and value types.
func Map(key, value EngineType) EngineType {
	return EngineType{Kind: KindMap, Key: &key, Value: &value}
}

// IsNumeric returns true for exact and approximate numeric kinds.
func (t EngineType) IsNumeric() bool {
	switch t.Kind {
	case KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble, KindDecimal:
		return true
	default:
		return false
	}
}

// IsTemporal returns true for date/time kinds.
func (t EngineType) IsTemporal() bool {
	switch t.Kind {
	case KindDate, KindTime, KindTimestamp:
		return true
	default:
		return false
	}
}

// IsComposite returns true for row, array and map kinds.
func (t EngineType) IsComposite() bool {
	switch t.Kind {
	case KindRow, KindArray, KindMap:
		return true
	default:
		return false
	}
}

// Equal reports structural equality.
func (t EngineType) Equal(other EngineType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindDecimal:
		return t.Precision == other.Precision && t.Scale == other.Scale
	case KindRow:
		if len(t.Fields) != len(other.Fields) {
			return false
		}
		for i, f := range t.Fields {
			o := other.Fields[i]
			if f.Name != o.Name || f.Nullable != o.Nullable || !f.Type.Equal(o.Type) {
				return false
			}
		}
		return true
	case KindArray:
		return t.Elem.Equal(*other.Elem)
	case KindMap:
		return t.Key.Equal(*other.Key) && t.Value.Equal(*other.Value)
	default:
		return true
	}
}

// Digest returns the canonical string form of the type. Structurally equal
// types produce identical digests, so the digest doubles as a hash key.
func (t EngineType) Digest() string {
	var sb strings.Builder
	t.writeDigest(&sb)
	return sb.String()
}

func (t EngineType) writeDigest(sb *strings.Builder) {
	switch t.Kind {
	case KindDecimal:
		if t.Precision == PrecisionUnspecified || t.Precision == 0 {
			sb.WriteString("DECIMAL")
			return
		}
		fmt.Fprintf(sb, "DECIMAL(%d, %d)", t.Precision, t.Scale)
	case KindRow:
		sb.WriteString("ROW(")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(" ")
			f.Type.writeDigest(sb)
			if !f.Nullable {
				sb.WriteString(" NOT NULL")
			}
		}
		sb.WriteString(")")
	case KindArray:
		sb.WriteString("ARRAY<")
		t.Elem.writeDigest(sb)
		sb.WriteString(">")
	case KindMap:
		sb.WriteString("MAP<")
		t.Key.writeDigest(sb)
		sb.WriteString(", ")
		t.Value.writeDigest(sb)
		sb.WriteString(">")
	default:
		sb.WriteString(t.Kind.String())
	}
}

// String returns the canonical form, same as Digest.
func (t EngineType) String() string {
	return t.Digest()
}
