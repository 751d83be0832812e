// Package bridge translates between the engine-native logical type system
// and the planner type system. One TypeBridge serves one planning session:
// it memoizes every (engine type, nullability) conversion so that the
// optimizer's identity-based type comparisons hold for the session's
// lifetime.
package bridge

import (
	"fmt"
	"sync"

	"github.com/letmehues/flink/pkg/config"
	"github.com/letmehues/flink/pkg/planner"
	"github.com/letmehues/flink/pkg/types"
)

type cacheKey struct {
	digest   string
	nullable bool
}

// TypeBridge converts engine types to canonical planner types and back.
// The cache is append-only and never evicted; discard the bridge with the
// planning session that owns it.
type TypeBridge struct {
	factory *planner.Factory

	mu   sync.Mutex
	seen map[cacheKey]*planner.Type
}

// New creates a bridge with a fresh planner type factory.
func New() *TypeBridge {
	return &TypeBridge{
		factory: planner.NewFactory(),
		seen:    make(map[cacheKey]*planner.Type),
	}
}

// Factory returns the planner type factory backing this bridge. Planner
// types built directly on it share the bridge's canonical identity table.
func (b *TypeBridge) Factory() *planner.Factory {
	return b.factory
}

// CreatePlannerType converts an engine type to its canonical planner type.
// Repeated calls with the same engine type and nullability return the
// identical instance. Char has no planner equivalent and fails with
// CodeUnsupportedEngineType, as does any kind missing from the mapping:
// new engine kinds must be added here explicitly.
func (b *TypeBridge) CreatePlannerType(t types.EngineType, nullable bool) (*planner.Type, error) {
	// The whole lookup-or-insert is atomic so that concurrent callers can
	// never intern two instances for one key.
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createLocked(t, nullable)
}

func (b *TypeBridge) createLocked(t types.EngineType, nullable bool) (*planner.Type, error) {
	key := cacheKey{digest: t.Digest(), nullable: nullable}
	if cached, ok := b.seen[key]; ok {
		// Canonicalization stays unconditional even on the hit path.
		return b.factory.WithNullability(cached, nullable), nil
	}

	base, err := b.makePlannerType(t, nullable)
	if err != nil {
		return nil, err
	}

	result := b.factory.WithNullability(base, nullable)
	b.seen[key] = result
	return result, nil
}

func (b *TypeBridge) makePlannerType(t types.EngineType, nullable bool) (*planner.Type, error) {
	switch t.Kind {
	case types.KindBoolean:
		return b.factory.MakeKind(planner.KindBoolean, nullable), nil
	case types.KindByte:
		return b.factory.MakeKind(planner.KindTinyInt, nullable), nil
	case types.KindShort:
		return b.factory.MakeKind(planner.KindSmallInt, nullable), nil
	case types.KindInt:
		return b.factory.MakeKind(planner.KindInteger, nullable), nil
	case types.KindLong:
		return b.factory.MakeKind(planner.KindBigInt, nullable), nil
	case types.KindFloat:
		return b.factory.MakeKind(planner.KindFloat, nullable), nil
	case types.KindDouble:
		return b.factory.MakeKind(planner.KindDouble, nullable), nil
	case types.KindString:
		return b.factory.MakeVarchar(config.DefaultVarcharLength, nullable), nil
	case types.KindDate:
		return b.factory.MakeKind(planner.KindDate, nullable), nil
	case types.KindTime:
		return b.factory.MakeKind(planner.KindTime, nullable), nil
	case types.KindTimestamp:
		return b.factory.MakeKind(planner.KindTimestamp, nullable), nil
	case types.KindBinary:
		return b.factory.MakeKind(planner.KindVarBinary, nullable), nil
	case types.KindDecimal:
		precision, scale := decimalDefaults(t)
		return b.factory.MakeDecimal(precision, scale, nullable), nil
	case types.KindRow:
		return b.makeRowType(t, nullable)
	case types.KindArray:
		return b.makeArrayType(t, nullable)
	case types.KindMap:
		return b.makeMapType(t, nullable)
	default:
		// Char lands here deliberately: it has no planner equivalent.
		return nil, NewUnsupportedEngineTypeError(t)
	}
}

// decimalDefaults substitutes the engine user defaults for an unspecified
// precision/scale pair. The planner has its own defaults, but the engine's
// must win to keep round-trips consistent.
func decimalDefaults(t types.EngineType) (int, int) {
	if t.Precision <= 0 {
		return config.DefaultDecimalPrecision, config.DefaultDecimalScale
	}
	if t.Scale < 0 {
		return t.Precision, 0
	}
	return t.Precision, t.Scale
}

func (b *TypeBridge) makeRowType(t types.EngineType, nullable bool) (*planner.Type, error) {
	fields := make([]planner.Field, len(t.Fields))
	for i, f := range t.Fields {
		child, err := b.createLocked(f.Type, f.Nullable)
		if err != nil {
			return nil, err
		}
		fields[i] = planner.Field{Name: f.Name, Type: child}
	}
	origin := t
	return b.factory.MakeRow(fields, &origin, nullable), nil
}

func (b *TypeBridge) makeArrayType(t types.EngineType, nullable bool) (*planner.Type, error) {
	// The engine array type does not track element-level NULL constraints,
	// so the element is always represented as nullable at the planner level.
	elem, err := b.createLocked(*t.Elem, true)
	if err != nil {
		return nil, err
	}
	origin := t
	return b.factory.MakeArray(elem, &origin, nullable), nil
}

func (b *TypeBridge) makeMapType(t types.EngineType, nullable bool) (*planner.Type, error) {
	// Same reasoning as for arrays: key and value are forced nullable.
	key, err := b.createLocked(*t.Key, true)
	if err != nil {
		return nil, err
	}
	value, err := b.createLocked(*t.Value, true)
	if err != nil {
		return nil, err
	}
	origin := t
	return b.factory.MakeMap(key, value, &origin, nullable), nil
}

// BuildRowType converts named engine field types into a planner row type.
// A nil nullables slice marks every field nullable. The row itself is
// constructed non-nullable, matching how the validator builds relation row
// types.
func (b *TypeBridge) BuildRowType(names []string, engineTypes []types.EngineType, nullables []bool) (*planner.Type, error) {
	if len(names) != len(engineTypes) {
		return nil, fmt.Errorf("field name count %d does not match type count %d", len(names), len(engineTypes))
	}
	if nullables != nil && len(nullables) != len(names) {
		return nil, fmt.Errorf("nullability count %d does not match field count %d", len(nullables), len(names))
	}

	fields := make([]types.Field, len(names))
	for i, name := range names {
		nullable := true
		if nullables != nil {
			nullable = nullables[i]
		}
		fields[i] = types.Field{Name: name, Type: engineTypes[i], Nullable: nullable}
	}
	return b.CreatePlannerType(types.Row(fields...), false)
}

// CacheSize returns the number of memoized conversions, for introspection.
func (b *TypeBridge) CacheSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.seen)
}
