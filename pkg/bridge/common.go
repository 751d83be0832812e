package bridge

import (
	"fmt"

	"github.com/letmehues/flink/pkg/planner"
)

// LeastRestrictive computes the common type of a non-empty operand list, as
// needed for CASE branches, UNION arms and COALESCE operands.
//
// The dominant path is operands that already agree on type ignoring
// nullability: the shared type is returned, nullable when any operand is
// nullable or is the untyped NULL marker. A dynamic (ANY) operand mixed with
// a differing concrete one is rejected with CodeAmbiguousDynamicType. All
// remaining combinations delegate to the planner's generic promotion
// algorithm.
func (b *TypeBridge) LeastRestrictive(ts []*planner.Type) (*planner.Type, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("least-restrictive type requires at least one operand")
	}

	if shared, ok := b.sharedType(ts); ok {
		return shared, nil
	}

	if hasDynamic(ts) {
		// No common representation can be invented once a dynamic type
		// meets a distinct concrete type.
		return nil, NewAmbiguousDynamicTypeError(ts)
	}

	result, ok := b.factory.LeastRestrictive(ts)
	if !ok {
		return nil, NewNoCommonTypeError(ts)
	}
	return result, nil
}

// sharedType detects operands that are structurally identical ignoring
// nullability. NULL markers are skipped but force a nullable result.
func (b *TypeBridge) sharedType(ts []*planner.Type) (*planner.Type, bool) {
	nullable := false
	var head *planner.Type
	for _, t := range ts {
		if t.IsNullable() {
			nullable = true
		}
		if t.Kind() == planner.KindNull {
			nullable = true
			continue
		}
		base := b.factory.WithNullability(t, false)
		if head == nil {
			head = base
			continue
		}
		if base != head {
			return nil, false
		}
	}
	if head == nil {
		// Every operand was the NULL marker.
		return b.factory.WithNullability(ts[0], true), true
	}
	return b.factory.WithNullability(head, nullable), true
}

func hasDynamic(ts []*planner.Type) bool {
	for _, t := range ts {
		if t.Kind() == planner.KindAny {
			return true
		}
	}
	return false
}
