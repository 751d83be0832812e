package handlers

import (
	"fmt"

	"github.com/letmehues/flink/pkg/planner"
	enginetypes "github.com/letmehues/flink/pkg/types"
	"github.com/letmehues/flink/server/types"
)

// engineTypeFromDescriptor decodes an engine type from its wire form.
func engineTypeFromDescriptor(d types.TypeDescriptor) (enginetypes.EngineType, error) {
	kind, ok := enginetypes.KindFromName(d.Kind)
	if !ok {
		return enginetypes.EngineType{}, fmt.Errorf("unknown engine kind %q", d.Kind)
	}

	switch kind {
	case enginetypes.KindDecimal:
		precision, scale := d.Precision, d.Scale
		if precision == 0 {
			precision, scale = enginetypes.PrecisionUnspecified, enginetypes.PrecisionUnspecified
		}
		return enginetypes.Decimal(precision, scale), nil
	case enginetypes.KindRow:
		if len(d.Fields) == 0 {
			return enginetypes.EngineType{}, fmt.Errorf("row type requires fields")
		}
		fields := make([]enginetypes.Field, len(d.Fields))
		for i, fd := range d.Fields {
			ft, err := engineTypeFromDescriptor(fd.Type)
			if err != nil {
				return enginetypes.EngineType{}, fmt.Errorf("field %q: %w", fd.Name, err)
			}
			fields[i] = enginetypes.Field{Name: fd.Name, Type: ft, Nullable: fd.Nullable}
		}
		return enginetypes.Row(fields...), nil
	case enginetypes.KindArray:
		if d.Element == nil {
			return enginetypes.EngineType{}, fmt.Errorf("array type requires an element")
		}
		elem, err := engineTypeFromDescriptor(*d.Element)
		if err != nil {
			return enginetypes.EngineType{}, err
		}
		return enginetypes.Array(elem), nil
	case enginetypes.KindMap:
		if d.Key == nil || d.Value == nil {
			return enginetypes.EngineType{}, fmt.Errorf("map type requires key and value")
		}
		key, err := engineTypeFromDescriptor(*d.Key)
		if err != nil {
			return enginetypes.EngineType{}, err
		}
		value, err := engineTypeFromDescriptor(*d.Value)
		if err != nil {
			return enginetypes.EngineType{}, err
		}
		return enginetypes.Map(key, value), nil
	default:
		return enginetypes.Primitive(kind), nil
	}
}

// descriptorFromEngine encodes an engine type into its wire form.
func descriptorFromEngine(t enginetypes.EngineType) types.TypeDescriptor {
	d := types.TypeDescriptor{
		Kind:   t.Kind.String(),
		Digest: t.Digest(),
	}
	switch t.Kind {
	case enginetypes.KindDecimal:
		d.Precision = t.Precision
		d.Scale = t.Scale
	case enginetypes.KindRow:
		d.Fields = make([]types.FieldDescriptor, len(t.Fields))
		for i, f := range t.Fields {
			d.Fields[i] = types.FieldDescriptor{
				Name:     f.Name,
				Type:     descriptorFromEngine(f.Type),
				Nullable: f.Nullable,
			}
		}
	case enginetypes.KindArray:
		elem := descriptorFromEngine(*t.Elem)
		d.Element = &elem
	case enginetypes.KindMap:
		key := descriptorFromEngine(*t.Key)
		value := descriptorFromEngine(*t.Value)
		d.Key = &key
		d.Value = &value
	}
	return d
}

// plannerTypeFromDescriptor decodes a planner type from its wire form,
// building it through the session's factory so canonical identity holds.
func plannerTypeFromDescriptor(f *planner.Factory, d types.TypeDescriptor) (*planner.Type, error) {
	kind, ok := planner.KindFromName(d.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown planner kind %q", d.Kind)
	}

	switch kind {
	case planner.KindDecimal:
		return f.MakeDecimal(d.Precision, d.Scale, d.Nullable), nil
	case planner.KindChar, planner.KindVarchar:
		length := d.Precision
		if length == 0 {
			length = planner.PrecisionNone
		}
		if kind == planner.KindChar {
			return f.MakeChar(length, d.Nullable), nil
		}
		return f.MakeVarchar(length, d.Nullable), nil
	case planner.KindRow:
		if len(d.Fields) == 0 {
			return nil, fmt.Errorf("row type requires fields")
		}
		fields := make([]planner.Field, len(d.Fields))
		for i, fd := range d.Fields {
			ft, err := plannerTypeFromDescriptor(f, fd.Type)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", fd.Name, err)
			}
			fields[i] = planner.Field{Name: fd.Name, Type: ft}
		}
		return f.MakeRow(fields, nil, d.Nullable), nil
	case planner.KindArray:
		if d.Element == nil {
			return nil, fmt.Errorf("array type requires an element")
		}
		elem, err := plannerTypeFromDescriptor(f, *d.Element)
		if err != nil {
			return nil, err
		}
		return f.MakeArray(elem, nil, d.Nullable), nil
	case planner.KindMap:
		if d.Key == nil || d.Value == nil {
			return nil, fmt.Errorf("map type requires key and value")
		}
		key, err := plannerTypeFromDescriptor(f, *d.Key)
		if err != nil {
			return nil, err
		}
		value, err := plannerTypeFromDescriptor(f, *d.Value)
		if err != nil {
			return nil, err
		}
		return f.MakeMap(key, value, nil, d.Nullable), nil
	default:
		return f.MakeKind(kind, d.Nullable), nil
	}
}

// descriptorFromPlanner encodes a planner type into its wire form.
func descriptorFromPlanner(t *planner.Type) types.TypeDescriptor {
	d := types.TypeDescriptor{
		Kind:     t.Kind().String(),
		Nullable: t.IsNullable(),
		Digest:   t.Digest(),
	}
	switch t.Kind() {
	case planner.KindDecimal, planner.KindChar, planner.KindVarchar:
		d.Precision = t.Precision()
		if t.Kind() == planner.KindDecimal {
			d.Scale = t.Scale()
		}
	case planner.KindRow:
		d.Fields = make([]types.FieldDescriptor, len(t.Fields()))
		for i, f := range t.Fields() {
			d.Fields[i] = types.FieldDescriptor{
				Name:     f.Name,
				Type:     descriptorFromPlanner(f.Type),
				Nullable: f.Type.IsNullable(),
			}
		}
	case planner.KindArray:
		elem := descriptorFromPlanner(t.Element())
		d.Element = &elem
	case planner.KindMap:
		key := descriptorFromPlanner(t.KeyType())
		value := descriptorFromPlanner(t.ValueType())
		d.Key = &key
		d.Value = &value
	}
	return d
}
