package planner

import (
	"sync"

	"github.com/letmehues/flink/pkg/config"
	"github.com/letmehues/flink/pkg/types"
)

// Planner-side defaults for decimals requested without explicit parameters.
// These intentionally differ from the engine user defaults in pkg/config;
// the bridge substitutes the engine defaults before calling MakeDecimal.
const (
	plannerDecimalPrecision = 19
	plannerDecimalScale     = 0
)

// Factory constructs and canonicalizes planner types. Structurally equal
// types built through one factory are pointer-identical for the factory's
// lifetime; the table is append-only with no eviction.
type Factory struct {
	mu    sync.Mutex
	canon map[string]*Type
}

// NewFactory creates an empty type factory.
func NewFactory() *Factory {
	return &Factory{
		canon: make(map[string]*Type),
	}
}

// canonicalize interns the type, returning the first instance seen for its
// digest. The lookup-or-insert is atomic to preserve the identity invariant
// when a factory is shared across planning goroutines.
func (f *Factory) canonicalize(t *Type) *Type {
	t.digest = computeDigest(t)

	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.canon[t.digest]; ok {
		return existing
	}
	f.canon[t.digest] = t
	return t
}

// Count returns the number of canonical types interned so far.
func (f *Factory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.canon)
}

// MakeKind constructs a precision-free type for the given kind. Kinds that
// carry precision get their per-kind default.
func (f *Factory) MakeKind(kind Kind, nullable bool) *Type {
	switch kind {
	case KindDecimal:
		return f.MakeDecimal(types.PrecisionUnspecified, types.PrecisionUnspecified, nullable)
	case KindChar, KindVarchar:
		return f.makeCharacter(kind, f.DefaultPrecision(kind), nullable)
	default:
		return f.canonicalize(&Type{
			kind:      kind,
			nullable:  nullable,
			precision: PrecisionNone,
			scale:     PrecisionNone,
		})
	}
}

// MakeVarchar constructs a variable-length text type. A negative length, or
// one at or beyond config.MaxVarcharLength, is replaced with the configured
// default: the planner clamps representable lengths, so an unbounded-text
// request must not surface as a raw oversized integer.
func (f *Factory) MakeVarchar(length int, nullable bool) *Type {
	return f.makeCharacter(KindVarchar, length, nullable)
}

// MakeChar constructs a fixed-length text type under the same length policy
// as MakeVarchar.
func (f *Factory) MakeChar(length int, nullable bool) *Type {
	return f.makeCharacter(KindChar, length, nullable)
}

func (f *Factory) makeCharacter(kind Kind, length int, nullable bool) *Type {
	if length < 0 || length >= config.MaxVarcharLength {
		length = f.DefaultPrecision(kind)
	}
	return f.canonicalize(&Type{
		kind:      kind,
		nullable:  nullable,
		precision: length,
		scale:     PrecisionNone,
	})
}

// MakeDecimal constructs an exact numeric type. Unspecified parameters fall
// back to the planner defaults; precision is capped at the representable
// maximum.
func (f *Factory) MakeDecimal(precision, scale int, nullable bool) *Type {
	if precision <= 0 {
		precision = plannerDecimalPrecision
		scale = plannerDecimalScale
	}
	if precision > config.MaxDecimalPrecision {
		precision = config.MaxDecimalPrecision
	}
	if scale < 0 {
		scale = 0
	}
	return f.canonicalize(&Type{
		kind:      KindDecimal,
		nullable:  nullable,
		precision: precision,
		scale:     scale,
	})
}

// MakeRow constructs a row type with the given ordered fields. The origin
// back-reference may be nil for rows built independently of the bridge.
func (f *Factory) MakeRow(fields []Field, origin *types.EngineType, nullable bool) *Type {
	return f.canonicalize(&Type{
		kind:      KindRow,
		nullable:  nullable,
		precision: PrecisionNone,
		scale:     PrecisionNone,
		fields:    fields,
		origin:    origin,
	})
}

// MakeArray constructs an array type with the given element type.
func (f *Factory) MakeArray(elem *Type, origin *types.EngineType, nullable bool) *Type {
	return f.canonicalize(&Type{
		kind:      KindArray,
		nullable:  nullable,
		precision: PrecisionNone,
		scale:     PrecisionNone,
		elem:      elem,
		origin:    origin,
	})
}

// MakeMap constructs a map type with the given key and value types.
func (f *Factory) MakeMap(key, value *Type, origin *types.EngineType, nullable bool) *Type {
	return f.canonicalize(&Type{
		kind:      KindMap,
		nullable:  nullable,
		precision: PrecisionNone,
		scale:     PrecisionNone,
		key:       key,
		value:     value,
		origin:    origin,
	})
}

// WithNullability returns the canonical instance of t with the requested
// nullability. When the flag already matches, t itself is returned.
func (f *Factory) WithNullability(t *Type, nullable bool) *Type {
	if t.nullable == nullable {
		return t
	}
	flipped := &Type{
		kind:      t.kind,
		nullable:  nullable,
		precision: t.precision,
		scale:     t.scale,
		fields:    t.fields,
		elem:      t.elem,
		key:       t.key,
		value:     t.value,
		origin:    t.origin,
	}
	return f.canonicalize(flipped)
}

// DefaultPrecision returns the default precision for kinds that carry one,
// and PrecisionNone for the rest.
func (f *Factory) DefaultPrecision(kind Kind) int {
	switch kind {
	case KindChar:
		return 1
	case KindVarchar:
		return config.DefaultVarcharLength
	case KindDecimal:
		return plannerDecimalPrecision
	default:
		return PrecisionNone
	}
}
