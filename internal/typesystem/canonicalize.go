package typesystem

import (
	"fmt"
	"sort"
)

// Default cardinality caps, per DESIGN.md's Open Question decision. The
// interner takes the cap as an argument on every Intersection and
// TemplateLiteral call; the checker always passes these defaults.
const (
	DefaultMaxIntersectionArms         = 25
	DefaultMaxTemplateLiteralExpansion = 100_000
)

// Union interns a union type, applying the canonicalization rules spec
// §4.4.1 requires: flatten nested unions, sort by TypeId, deduplicate,
// remove `never`, collapse to `any`/`unknown` if present, fold literal
// `true|false` pairs to `boolean`, and return the sole member directly
// when only one remains.
func (in *Interner) Union(members []TypeId) TypeId {
	flat := in.flattenUnion(members)

	for _, m := range flat {
		if m == in.Any() || m == in.Unknown() {
			return m
		}
	}

	filtered := make([]TypeId, 0, len(flat))
	for _, m := range flat {
		if m == in.Never() {
			continue
		}
		filtered = append(filtered, m)
	}
	filtered = dedupeSorted(filtered)
	filtered = in.foldBooleanLiteralPair(filtered)

	if len(filtered) == 0 {
		return in.Never()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}

	key := "union:"
	for _, m := range filtered {
		key += fmt.Sprintf("%d,", m)
	}
	return in.intern(key, func() entry {
		return entry{kind: KindUnion, members: filtered, flags: FlagUnion}
	})
}

func (in *Interner) flattenUnion(members []TypeId) []TypeId {
	flat := make([]TypeId, 0, len(members))
	for _, m := range members {
		if in.Kind(m) == KindUnion {
			flat = append(flat, in.flattenUnion(in.UnionMembers(m))...)
		} else {
			flat = append(flat, m)
		}
	}
	return flat
}

func dedupeSorted(ids []TypeId) []TypeId {
	sorted := append([]TypeId{}, ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	var prev TypeId
	first := true
	for _, id := range sorted {
		if first || id != prev {
			out = append(out, id)
			prev = id
			first = false
		}
	}
	return out
}

// foldBooleanLiteralPair replaces a `true | false` pair (in either order,
// anywhere in the member list) with the `boolean` primitive.
func (in *Interner) foldBooleanLiteralPair(members []TypeId) []TypeId {
	hasTrue, hasFalse := false, false
	for _, m := range members {
		if in.Kind(m) == KindLiteralBoolean {
			if in.BooleanLiteralValue(m) {
				hasTrue = true
			} else {
				hasFalse = true
			}
		}
	}
	if !hasTrue || !hasFalse {
		return members
	}
	out := make([]TypeId, 0, len(members))
	folded := false
	for _, m := range members {
		if in.Kind(m) == KindLiteralBoolean {
			if !folded {
				out = append(out, in.Boolean())
				folded = true
			}
			continue
		}
		out = append(out, m)
	}
	return dedupeSorted(out)
}

// UnionMembers returns the member list of a Union-variant id.
func (in *Interner) UnionMembers(id TypeId) []TypeId { return in.get(id).members }

// Intersection interns an intersection type, applying spec §4.4.1's
// canonicalization: flatten, sort, deduplicate, collapse to `never` when
// disjoint primitives collide, absorb `unknown`, and distribute once over
// a top-level union operand when the resulting arm count stays within
// maxArms (the checker passes DefaultMaxIntersectionArms).
func (in *Interner) Intersection(members []TypeId, maxArms int) TypeId {
	flat := in.flattenIntersection(members)
	filtered := make([]TypeId, 0, len(flat))
	for _, m := range flat {
		if m == in.Unknown() {
			continue
		}
		filtered = append(filtered, m)
	}
	filtered = dedupeSorted(filtered)

	if in.hasDisjointPrimitives(filtered) {
		return in.Never()
	}
	for _, m := range filtered {
		if m == in.Never() {
			return in.Never()
		}
	}

	if len(filtered) == 0 {
		return in.Unknown()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}

	if dist, ok := in.distributeIntersectionOverUnion(filtered, maxArms); ok {
		return dist
	}

	key := "intersection:"
	for _, m := range filtered {
		key += fmt.Sprintf("%d,", m)
	}
	return in.intern(key, func() entry {
		return entry{kind: KindIntersection, members: filtered, flags: FlagIntersection}
	})
}

func (in *Interner) flattenIntersection(members []TypeId) []TypeId {
	flat := make([]TypeId, 0, len(members))
	for _, m := range members {
		if in.Kind(m) == KindIntersection {
			flat = append(flat, in.flattenIntersection(in.IntersectionMembers(m))...)
		} else {
			flat = append(flat, m)
		}
	}
	return flat
}

// IntersectionMembers returns the member list of an Intersection-variant id.
func (in *Interner) IntersectionMembers(id TypeId) []TypeId { return in.get(id).members }

// hasDisjointPrimitives reports whether the member list contains two
// distinct, mutually exclusive primitive kinds (e.g. `string & number`).
func (in *Interner) hasDisjointPrimitives(members []TypeId) bool {
	primKind := func(id TypeId) TypeFlags {
		f := in.Flags(id)
		switch {
		case f.Has(FlagStringLike):
			return FlagStringLike
		case f.Has(FlagNumberLike):
			return FlagNumberLike
		case f.Has(FlagBooleanLike):
			return FlagBooleanLike
		case f.Has(FlagBigIntLike):
			return FlagBigIntLike
		case f.Has(FlagESSymbolLike):
			return FlagESSymbolLike
		case f.Has(FlagVoidLike):
			return FlagVoidLike
		case f.Has(FlagNull):
			return FlagNull
		default:
			return 0
		}
	}
	seen := TypeFlags(0)
	seenAny := false
	for _, m := range members {
		pk := primKind(m)
		if pk == 0 {
			continue
		}
		if seenAny && seen != pk {
			return true
		}
		seen = pk
		seenAny = true
	}
	return false
}

// distributeIntersectionOverUnion implements `A & (B|C) -> (A&B) | (A&C)`
// when exactly one member is a union and the resulting arm count (product
// of the union's member count against the rest) stays within maxArms.
func (in *Interner) distributeIntersectionOverUnion(members []TypeId, maxArms int) (TypeId, bool) {
	unionIdx := -1
	for i, m := range members {
		if in.Kind(m) == KindUnion {
			if unionIdx != -1 {
				return NoType, false // more than one union operand: not the single-distribution case
			}
			unionIdx = i
		}
	}
	if unionIdx == -1 {
		return NoType, false
	}
	rest := make([]TypeId, 0, len(members)-1)
	for i, m := range members {
		if i != unionIdx {
			rest = append(rest, m)
		}
	}
	unionMembers := in.UnionMembers(members[unionIdx])
	if len(unionMembers) > maxArms {
		return NoType, false
	}
	arms := make([]TypeId, 0, len(unionMembers))
	for _, um := range unionMembers {
		arm := append(append([]TypeId{}, rest...), um)
		arms = append(arms, in.Intersection(arm, maxArms))
	}
	return in.Union(arms), true
}

// KeyOf interns a `keyof T` operator node, deferred (not evaluated) —
// evaluation to a concrete union of property-name literals happens in
// evaluator.go, since it requires looking at T's shape which may not be
// known yet for an unresolved type parameter.
func (in *Interner) KeyOf(inner TypeId) TypeId {
	return in.intern(fmt.Sprintf("keyof:%d", inner), func() entry {
		return entry{kind: KindKeyOf, keyOfInner: inner, flags: FlagIndex}
	})
}

func (in *Interner) KeyOfInner(id TypeId) TypeId { return in.get(id).keyOfInner }

// IndexAccess interns a `T[K]` operator node, deferred for the same reason
// as KeyOf.
func (in *Interner) IndexAccess(object, index TypeId) TypeId {
	return in.intern(fmt.Sprintf("indexaccess:%d:%d", object, index), func() entry {
		return entry{kind: KindIndexAccess, indexObj: object, indexKey: index, flags: FlagIndexedAccess}
	})
}

func (in *Interner) IndexAccessParts(id TypeId) (object, index TypeId) {
	e := in.get(id)
	return e.indexObj, e.indexKey
}

// Application interns a generic instantiation before reduction (the
// checker substitutes type arguments into base's declared shape lazily,
// via the evaluator, not eagerly here).
func (in *Interner) Application(base TypeId, args []TypeId) TypeId {
	key := fmt.Sprintf("application:%d:", base)
	for _, a := range args {
		key += fmt.Sprintf("%d,", a)
	}
	return in.intern(key, func() entry {
		return entry{kind: KindApplication, application: &ApplicationInfo{Base: base, Args: append([]TypeId{}, args...)}}
	})
}

func (in *Interner) ApplicationInfoOf(id TypeId) *ApplicationInfo { return in.get(id).application }

// Conditional interns a `T extends U ? X : Y` operator node.
func (in *Interner) Conditional(c ConditionalInfo) TypeId {
	key := fmt.Sprintf("conditional:%d:%d:%d:%d:%v", c.Check, c.Extends, c.True, c.False, c.Distributive)
	return in.intern(key, func() entry {
		info := c
		return entry{kind: KindConditional, conditional: &info, flags: FlagConditional}
	})
}

func (in *Interner) ConditionalInfoOf(id TypeId) *ConditionalInfo { return in.get(id).conditional }

// Mapped interns a `{ [P in K]: V }` operator node.
func (in *Interner) Mapped(m MappedInfo) TypeId {
	key := fmt.Sprintf("mapped:%d:%d:%d:%d:%d:%d", m.TypeParam, m.Constraint, m.NameRemap, m.Template, m.Readonly, m.Optional)
	return in.intern(key, func() entry {
		info := m
		return entry{kind: KindMapped, mapped: &info, flags: FlagObject}
	})
}

func (in *Interner) MappedInfoOf(id TypeId) *MappedInfo { return in.get(id).mapped }
