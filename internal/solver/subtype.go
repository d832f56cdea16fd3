// Package solver implements the structural subtype and assignability
// algorithm over the typesystem package's TypeId graph: is_subtype and
// is_assignable, the reduction of deferred operator nodes they depend on,
// and the depth/cycle guards that keep recursive type definitions from
// looping the checker forever.
package solver

import (
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/token"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// noToken anchors a diagnostic with no source position of its own — the
// solver operates purely on TypeIds and has no node to point at; the
// checker layer above re-anchors this diagnostic at the expression being
// checked before it reaches the user.
var noToken token.Token

// DefaultMaxRecursionDepth caps is_subtype's recursion the way the
// parser's expression recursion is capped — past it we assume the answer
// (coinductively, subtyping is meant to be reflexive on cycles) and record
// an advisory diagnostic rather than stack-overflowing on a recursive type
// alias like `type Tree<T> = T | Tree<T>[]`.
const DefaultMaxRecursionDepth = 100

// pairKey identifies one (source, target) comparison in progress.
type pairKey struct{ source, target typesystem.TypeId }

// Checker runs is_subtype/is_assignable against one Interner. A Checker is
// not safe for concurrent use — the batch worker pool gives each file its
// own Checker over a shared Interner.
type Checker struct {
	in       *typesystem.Interner
	ev       *typesystem.Evaluator
	diags    *diagnostics.Collector
	maxDepth int

	depth      int
	inProgress map[pairKey]bool
}

// NewChecker builds a Checker over in, reporting recursion-depth overflow
// advisories (if any) into diags. diags may be nil, in which case overflow
// is silently resolved to true with no diagnostic recorded.
func NewChecker(in *typesystem.Interner, diags *diagnostics.Collector) *Checker {
	c := &Checker{in: in, diags: diags, maxDepth: DefaultMaxRecursionDepth, inProgress: make(map[pairKey]bool)}
	c.ev = typesystem.NewEvaluator(in, c.IsSubtype)
	return c
}

// PollEvaluatorOverflow checks the Evaluator's recursion-depth overflow
// counter and, if it's grown since the last poll, records one advisory
// diagnostic. The checker calls this once at the end of each Check call,
// after every file of the program (Reduce is invoked incidentally, deep inside many IsSubtype
// calls, so there's no single call site to hook the diagnostic into
// directly). The Collector dedupes by (file, token, code), so even
// repeated polls during a long-running check session collapse to the one
// diagnostic already recorded at noToken.
func (c *Checker) PollEvaluatorOverflow() {
	if c.ev.Overflows() == 0 || c.diags == nil {
		return
	}
	c.diags.Add(diagnostics.NewInternalError(
		noToken,
		"type evaluation exceeded the recursion depth limit (%d) and fell back to 'any' at least once",
		typesystem.DefaultMaxEvaluatorDepth,
	))
}

// IsSubtype decides structural subtyping per the checker's 11-rule order:
// any/unknown/never/error short circuit, identity, union/intersection
// distribution on either side, primitive/literal agreement, structural
// object/function/tuple comparison, deferred-operator evaluation, and
// nominal symbol-tag agreement for classes and enums.
func (c *Checker) IsSubtype(source, target typesystem.TypeId) bool {
	c.depth++
	defer func() { c.depth-- }()

	if c.depth > c.maxDepth {
		if c.diags != nil {
			c.diags.Add(diagnostics.NewInternalError(
				noToken,
				"type relationship is too deep to resolve; assuming compatible (recursion limit %d exceeded)",
				c.maxDepth,
			))
		}
		return true
	}

	key := pairKey{source, target}
	if c.inProgress[key] {
		return true // coinductive assumption: break the cycle as compatible
	}
	c.inProgress[key] = true
	defer delete(c.inProgress, key)

	return c.isSubtype(source, target)
}

func (c *Checker) isSubtype(source, target typesystem.TypeId) bool {
	in := c.in

	// Rule 1: any/unknown/never/error short circuits.
	if source == in.Any() || target == in.Any() || target == in.Unknown() || source == in.Never() || target == in.Error() || source == in.Error() {
		return true
	}
	if source == in.Unknown() && target != in.Unknown() {
		return false
	}
	if target == in.Never() {
		return source == in.Never()
	}

	// Rule 2: identity.
	if source == target {
		return true
	}

	sourceKind, targetKind := in.Kind(source), in.Kind(target)

	// Rule 3: union source, ∀ member.
	if sourceKind == typesystem.KindUnion {
		for _, m := range in.UnionMembers(source) {
			if !c.IsSubtype(m, target) {
				return false
			}
		}
		return true
	}

	// Rule 4: union target, ∃ member.
	if targetKind == typesystem.KindUnion {
		for _, m := range in.UnionMembers(target) {
			if c.IsSubtype(source, m) {
				return true
			}
		}
		return false
	}

	// Rule 5: intersection source ∃, intersection target ∀.
	if sourceKind == typesystem.KindIntersection {
		for _, m := range in.IntersectionMembers(source) {
			if c.IsSubtype(m, target) {
				return true
			}
		}
		return false
	}
	if targetKind == typesystem.KindIntersection {
		for _, m := range in.IntersectionMembers(target) {
			if !c.IsSubtype(source, m) {
				return false
			}
		}
		return true
	}

	// Rule 6: primitive <-> literal.
	if ok, handled := c.checkLiteralPrimitive(source, target, sourceKind, targetKind); handled {
		return ok
	}

	// Rule 10 (evaluated before 7-9 so an operator reduces to the concrete
	// form those rules expect): Conditional/Mapped/IndexAccess/KeyOf.
	if isDeferredOperator(sourceKind) {
		reduced := c.ev.Reduce(source)
		if reduced == typesystem.Blocked {
			return c.compareByConstraint(source, target, true)
		}
		return c.IsSubtype(reduced, target)
	}
	if isDeferredOperator(targetKind) {
		reduced := c.ev.Reduce(target)
		if reduced == typesystem.Blocked {
			return c.compareByConstraint(source, target, false)
		}
		return c.IsSubtype(source, reduced)
	}

	// Rule 7: object structural comparison.
	if targetKind == typesystem.KindObject {
		return c.objectIsSubtype(source, target)
	}

	// Rule 8: function types (Function and Callable's call signatures).
	if targetKind == typesystem.KindFunction || targetKind == typesystem.KindCallable {
		return c.functionIsSubtype(source, target)
	}

	// Rule 9: tuples.
	if targetKind == typesystem.KindTuple {
		return c.tupleIsSubtype(source, target)
	}
	if sourceKind == typesystem.KindTuple && targetKind == typesystem.KindArray {
		elemTarget := in.ArrayElement(target)
		for _, el := range in.TupleElements(source) {
			if !c.IsSubtype(el.Type, elemTarget) {
				return false
			}
		}
		return true
	}
	if sourceKind == typesystem.KindArray && targetKind == typesystem.KindArray {
		return c.IsSubtype(in.ArrayElement(source), in.ArrayElement(target))
	}

	// Rule 11: nominal classes/enums — structural check plus symbol tag.
	if sourceKind == typesystem.KindEnum || targetKind == typesystem.KindEnum {
		return c.enumIsSubtype(source, target, sourceKind, targetKind)
	}

	if sourceKind == typesystem.KindReadonly {
		return c.IsSubtype(in.ReadonlyInner(source), targetStripReadonly(in, target))
	}
	if targetKind == typesystem.KindReadonly {
		return c.IsSubtype(source, in.ReadonlyInner(target))
	}

	return false
}

func targetStripReadonly(in *typesystem.Interner, target typesystem.TypeId) typesystem.TypeId {
	if in.Kind(target) == typesystem.KindReadonly {
		return in.ReadonlyInner(target)
	}
	return target
}

func isDeferredOperator(k typesystem.Kind) bool {
	switch k {
	case typesystem.KindConditional, typesystem.KindMapped, typesystem.KindIndexAccess, typesystem.KindKeyOf:
		return true
	default:
		return false
	}
}

// compareByConstraint falls back to a type parameter's declared constraint
// when operand evaluation is blocked — e.g. comparing `T[K]` against a
// target before T is resolved falls back to comparing K's constraint.
func (c *Checker) compareByConstraint(source, target typesystem.TypeId, sourceBlocked bool) bool {
	in := c.in
	if sourceBlocked {
		if in.Kind(source) == typesystem.KindTypeParameter {
			if info := in.TypeParameterInfoOf(source); info.Constraint != typesystem.NoType {
				return c.IsSubtype(info.Constraint, target)
			}
		}
		return true // nothing to constrain against: assume compatible rather than reject
	}
	if in.Kind(target) == typesystem.KindTypeParameter {
		if info := in.TypeParameterInfoOf(target); info.Constraint != typesystem.NoType {
			return c.IsSubtype(source, info.Constraint)
		}
	}
	return true
}

// checkLiteralPrimitive handles rule 6 directly: returns (result, true) if
// either side is a literal/primitive pairing it resolves, else (_, false)
// to let the caller continue through the remaining rules.
func (c *Checker) checkLiteralPrimitive(source, target typesystem.TypeId, sourceKind, targetKind typesystem.Kind) (bool, bool) {
	in := c.in
	literalToPrimitive := map[typesystem.Kind]typesystem.TypeId{
		typesystem.KindLiteralString:  in.String(),
		typesystem.KindLiteralNumber:  in.Number(),
		typesystem.KindLiteralBigInt:  in.BigInt(),
		typesystem.KindLiteralBoolean: in.Boolean(),
	}
	if prim, ok := literalToPrimitive[sourceKind]; ok {
		if target == prim {
			return true, true
		}
		if _, targetIsPrim := kindOf(literalToPrimitive, target); targetIsPrim {
			return false, true // a different primitive of a different literal kind
		}
		if targetKind == sourceKind {
			return false, true // two distinct literals of the same kind never unify by rule 6
		}
	}
	return false, false
}

func kindOf(m map[typesystem.Kind]typesystem.TypeId, id typesystem.TypeId) (typesystem.Kind, bool) {
	for k, v := range m {
		if v == id {
			return k, true
		}
	}
	return 0, false
}

func (c *Checker) objectIsSubtype(source, target typesystem.TypeId) bool {
	in := c.in
	if in.Kind(source) != typesystem.KindObject {
		// A Function/Callable/Array/Tuple can still satisfy an object
		// target's property requirements (e.g. assigning a function value
		// to `{ length: number }`) — not modeled here; spec scopes this to
		// property-bearing Object sources.
		return false
	}
	sourceShape := in.ObjectShapeOf(source)
	targetShape := in.ObjectShapeOf(target)

	sourceProps := make(map[string]typesystem.PropertyInfo, len(sourceShape.Properties))
	for _, p := range sourceShape.Properties {
		sourceProps[p.Name] = p
	}

	for _, tp := range targetShape.Properties {
		sp, ok := sourceProps[tp.Name]
		if !ok {
			if tp.Optional {
				continue
			}
			return false
		}
		// A mutable source property satisfies a readonly target
		// requirement, but not the reverse.
		if !tp.Readonly && sp.Readonly {
			return false
		}
		if !c.IsSubtype(sp.Type, tp.Type) {
			return false
		}
	}

	if targetShape.StringIndex != nil {
		if sourceShape.StringIndex == nil || !c.IsSubtype(sourceShape.StringIndex.ValueType, targetShape.StringIndex.ValueType) {
			return false
		}
	}
	if targetShape.NumberIndex != nil {
		if sourceShape.NumberIndex == nil || !c.IsSubtype(sourceShape.NumberIndex.ValueType, targetShape.NumberIndex.ValueType) {
			return false
		}
	}
	return true
}

func (c *Checker) functionIsSubtype(source, target typesystem.TypeId) bool {
	in := c.in
	targetSig, ok := soleCallSignature(in, target)
	if !ok {
		return false
	}
	sourceSig, ok := soleCallSignature(in, source)
	if !ok {
		return false
	}
	return c.signatureIsSubtype(sourceSig, targetSig)
}

func soleCallSignature(in *typesystem.Interner, id typesystem.TypeId) (typesystem.Signature, bool) {
	switch in.Kind(id) {
	case typesystem.KindFunction:
		return in.FunctionShapeOf(id).Signature, true
	case typesystem.KindCallable:
		sigs := in.CallableShapeOf(id).CallSignatures
		if len(sigs) == 0 {
			return typesystem.Signature{}, false
		}
		return sigs[0], true
	default:
		return typesystem.Signature{}, false
	}
}

// signatureIsSubtype implements rule 8: the target may require no more
// arguments than the source can accept, return types are covariant,
// parameter types are contravariant (strict-function-types mode is the
// only mode this solver implements; bivariant method-shaped comparison is
// the checker's call-site responsibility, not this structural layer's).
func (c *Checker) signatureIsSubtype(source, target typesystem.Signature) bool {
	if target.MinArgs() < source.MinArgs() {
		return false
	}
	for i := 0; i < len(target.Params); i++ {
		if i >= len(source.Params) {
			if !hasRest(source) {
				break
			}
		}
		sp := paramAt(source, i)
		tp := paramAt(target, i)
		if !c.IsSubtype(tp.Type, sp.Type) { // contravariant
			return false
		}
	}
	if source.ThisType != typesystem.NoType && target.ThisType != typesystem.NoType {
		if !c.IsSubtype(target.ThisType, source.ThisType) {
			return false
		}
	}
	return c.IsSubtype(source.ReturnType, target.ReturnType)
}

func hasRest(sig typesystem.Signature) bool {
	return len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Rest
}

func paramAt(sig typesystem.Signature, i int) typesystem.Param {
	if i < len(sig.Params) {
		return sig.Params[i]
	}
	return sig.Params[len(sig.Params)-1] // the trailing rest parameter absorbs the overflow
}

// tupleIsSubtype implements rule 9: length-range compatibility (optional
// and rest elements widen the acceptable range) plus element-wise
// comparison.
func (c *Checker) tupleIsSubtype(source, target typesystem.TypeId) bool {
	in := c.in
	if in.Kind(source) != typesystem.KindTuple {
		return false
	}
	sourceElems := in.TupleElements(source)
	targetElems := in.TupleElements(target)

	targetMin, targetMax := tupleArity(targetElems)
	sourceMin, sourceMax := tupleArity(sourceElems)
	if sourceMin < targetMin {
		return false
	}
	if targetMax >= 0 && (sourceMax < 0 || sourceMax > targetMax) {
		return false
	}

	for i, te := range targetElems {
		if te.Rest {
			restType := te.Type
			for j := i; j < len(sourceElems); j++ {
				if !c.IsSubtype(sourceElems[j].Type, restType) {
					return false
				}
			}
			break
		}
		if i >= len(sourceElems) {
			return te.Optional
		}
		if !c.IsSubtype(sourceElems[i].Type, te.Type) {
			return false
		}
	}
	return true
}

// tupleArity returns (minLength, maxLength); maxLength is -1 (unbounded)
// if the tuple has a rest element.
func tupleArity(elems []typesystem.TupleElement) (min, max int) {
	for _, e := range elems {
		if e.Rest {
			return min, -1
		}
		if !e.Optional {
			min++
		}
		max++
	}
	return min, max
}

func (c *Checker) enumIsSubtype(source, target typesystem.TypeId, sourceKind, targetKind typesystem.Kind) bool {
	in := c.in
	if sourceKind == typesystem.KindEnum && targetKind == typesystem.KindEnum {
		return in.EnumInfoOf(source).Nominal == in.EnumInfoOf(target).Nominal
	}
	if targetKind == typesystem.KindEnum {
		// A bare number/string literal/primitive is never a subtype of a
		// nominally-tagged enum, even if its underlying representation
		// matches structurally — rule 11's whole point.
		return false
	}
	// source is Enum, target is its own structural representation or wider.
	return c.IsSubtype(in.EnumInfoOf(source).Structural, target)
}
