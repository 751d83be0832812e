package planner

// numericRank orders numeric kinds by restrictiveness for widening. A higher
// rank safely represents every lower-ranked kind (decimal sits between exact
// and approximate numerics, as the host promotion rules define it).
var numericRank = map[Kind]int{
	KindTinyInt:  1,
	KindSmallInt: 2,
	KindInteger:  3,
	KindBigInt:   4,
	KindDecimal:  5,
	KindFloat:    6,
	KindDouble:   7,
}

// LeastRestrictive implements the generic type-promotion algorithm: numeric
// widening, character-string promotion and precision merging. NULL-kind
// inputs only force nullability on the result. The boolean result is false
// when no common representation exists.
//
// The bridge consults this only after its own fast paths; callers outside
// the bridge get the same behavior the host optimizer would apply.
func (f *Factory) LeastRestrictive(ts []*Type) (*Type, bool) {
	if len(ts) == 0 {
		return nil, false
	}

	nullable := false
	var concrete []*Type
	for _, t := range ts {
		if t.IsNullable() {
			nullable = true
		}
		if t.Kind() == KindNull {
			nullable = true
			continue
		}
		concrete = append(concrete, t)
	}
	if len(concrete) == 0 {
		return f.MakeKind(KindNull, true), true
	}

	result := concrete[0]
	for _, t := range concrete[1:] {
		merged, ok := f.merge(result, t)
		if !ok {
			return nil, false
		}
		result = merged
	}
	return f.WithNullability(result, nullable || result.IsNullable()), true
}

// merge computes the least-restrictive type of a pair, ignoring nullability.
func (f *Factory) merge(a, b *Type) (*Type, bool) {
	if a.Kind() == b.Kind() {
		return f.mergeSameKind(a, b)
	}
	if a.IsNumeric() && b.IsNumeric() {
		return f.mergeNumeric(a, b), true
	}
	if a.IsCharacter() && b.IsCharacter() {
		length := max(a.Precision(), b.Precision())
		return f.MakeVarchar(length, false), true
	}
	// A character string absorbs anything the engine can render as text.
	if a.IsCharacter() && (b.IsNumeric() || isTemporal(b.Kind()) || b.Kind() == KindBoolean) {
		return f.MakeVarchar(a.Precision(), false), true
	}
	if b.IsCharacter() && (a.IsNumeric() || isTemporal(a.Kind()) || a.Kind() == KindBoolean) {
		return f.MakeVarchar(b.Precision(), false), true
	}
	return nil, false
}

func (f *Factory) mergeSameKind(a, b *Type) (*Type, bool) {
	switch a.Kind() {
	case KindDecimal:
		return f.mergeNumeric(a, b), true
	case KindChar, KindVarchar:
		if a.Precision() == b.Precision() {
			return a, true
		}
		return f.makeCharacter(a.Kind(), max(a.Precision(), b.Precision()), false), true
	case KindRow, KindArray, KindMap:
		// Structured kinds have no generic promotion; only structurally
		// identical ones share a common type, which the bridge's fast path
		// already handles.
		if a.Digest() == b.Digest() {
			return a, true
		}
		baseA, baseB := f.WithNullability(a, false), f.WithNullability(b, false)
		if baseA == baseB {
			return baseA, true
		}
		return nil, false
	default:
		return a, true
	}
}

func (f *Factory) mergeNumeric(a, b *Type) *Type {
	ra, rb := numericRank[a.Kind()], numericRank[b.Kind()]
	wider := a
	if rb > ra {
		wider = b
	}
	if wider.Kind() != KindDecimal {
		return f.MakeKind(wider.Kind(), false)
	}
	// Combine decimal parameters: the result keeps the larger scale and
	// enough integer digits for both operands.
	pa, sa := decimalParams(a)
	pb, sb := decimalParams(b)
	scale := max(sa, sb)
	precision := max(pa-sa, pb-sb) + scale
	return f.MakeDecimal(precision, scale, false)
}

// decimalParams returns (precision, scale) for any numeric kind, modeling
// integers as zero-scale decimals for parameter combination.
func decimalParams(t *Type) (int, int) {
	switch t.Kind() {
	case KindDecimal:
		return t.Precision(), t.Scale()
	case KindTinyInt:
		return 3, 0
	case KindSmallInt:
		return 5, 0
	case KindInteger:
		return 10, 0
	case KindBigInt:
		return 19, 0
	default:
		return 19, 0
	}
}

func isTemporal(k Kind) bool {
	switch k {
	case KindDate, KindTime, KindTimestamp:
		return true
	default:
		return false
	}
}
