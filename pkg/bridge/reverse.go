package bridge

import (
	"github.com/letmehues/flink/pkg/planner"
	"github.com/letmehues/flink/pkg/types"
)

// ToEngineType maps a planner type back to an engine type. Structured types
// carrying an origin back-reference return it directly, which is lossless;
// structural types built independently by the optimizer are reconstructed
// recursively, with field nullability taken from whatever the structure
// reports.
func (b *TypeBridge) ToEngineType(t *planner.Type) (types.EngineType, error) {
	switch t.Kind() {
	case planner.KindBoolean:
		return types.Primitive(types.KindBoolean), nil
	case planner.KindTinyInt:
		return types.Primitive(types.KindByte), nil
	case planner.KindSmallInt:
		return types.Primitive(types.KindShort), nil
	case planner.KindInteger:
		return types.Primitive(types.KindInt), nil
	case planner.KindBigInt:
		return types.Primitive(types.KindLong), nil
	case planner.KindFloat:
		return types.Primitive(types.KindFloat), nil
	case planner.KindDouble:
		return types.Primitive(types.KindDouble), nil
	case planner.KindChar, planner.KindVarchar:
		return types.Primitive(types.KindString), nil
	case planner.KindDate:
		return types.Primitive(types.KindDate), nil
	case planner.KindTime:
		return types.Primitive(types.KindTime), nil
	case planner.KindTimestamp:
		return types.Primitive(types.KindTimestamp), nil
	case planner.KindVarBinary:
		return types.Primitive(types.KindBinary), nil
	case planner.KindSymbol:
		// Symbol types represent keyword-literal operands and are carried
		// as plain integers on the engine side.
		return types.Primitive(types.KindInt), nil
	case planner.KindDecimal:
		return types.EngineType{}, NewNotYetSupportedError("decimal reverse mapping")
	case planner.KindNull:
		return types.EngineType{}, NewStandaloneNullError()
	case planner.KindRow:
		if origin := t.Origin(); origin != nil {
			return *origin, nil
		}
		return b.reconstructRow(t)
	case planner.KindArray:
		if origin := t.Origin(); origin != nil {
			return *origin, nil
		}
		elem, err := b.ToEngineType(t.Element())
		if err != nil {
			return types.EngineType{}, err
		}
		return types.Array(elem), nil
	case planner.KindMap:
		if origin := t.Origin(); origin != nil {
			return *origin, nil
		}
		key, err := b.ToEngineType(t.KeyType())
		if err != nil {
			return types.EngineType{}, err
		}
		value, err := b.ToEngineType(t.ValueType())
		if err != nil {
			return types.EngineType{}, err
		}
		return types.Map(key, value), nil
	default:
		return types.EngineType{}, NewUnsupportedPlannerTypeError(t)
	}
}

// reconstructRow rebuilds an engine row from a structural planner row that
// was not produced by this bridge. The reported field nullability may differ
// from what an equivalent bridge-produced type would have carried.
func (b *TypeBridge) reconstructRow(t *planner.Type) (types.EngineType, error) {
	fields := make([]types.Field, len(t.Fields()))
	for i, f := range t.Fields() {
		child, err := b.ToEngineType(f.Type)
		if err != nil {
			return types.EngineType{}, err
		}
		fields[i] = types.Field{Name: f.Name, Type: child, Nullable: f.Type.IsNullable()}
	}
	return types.Row(fields...), nil
}
