package typesystem

// DefaultMaxEvaluatorDepth caps recursive reduction (a union key
// distributing into indexed access, a conditional distributing over a
// union, a mapped template substitution walking a deeply nested generic).
// Past it, Reduce yields `any` rather than recursing further, recording
// the overflow on Overflows for the caller to turn into an advisory
// diagnostic (this package stays free of a diagnostics dependency, same
// as the rest of the interner).
const DefaultMaxEvaluatorDepth = 50

// Evaluator reduces the structural type operators (KeyOf, IndexAccess,
// Conditional, Mapped, TemplateLiteral) to concrete forms. It is kept
// separate from the Interner's constructors because reduction needs a
// subtype check (for Conditional) and a notion of "blocked" (an
// unresolved type parameter somewhere in the operand) that the interner
// itself has no business knowing about.
type Evaluator struct {
	in        *Interner
	subtype   func(source, target TypeId) bool
	maxDepth  int
	depth     int
	overflows int
}

// NewEvaluator builds an Evaluator bound to one Interner and the subtype
// predicate the solver's checker drives (injected rather than imported
// directly, since the subtype checker in turn calls back into the
// evaluator to resolve operands before comparing them).
func NewEvaluator(in *Interner, subtype func(source, target TypeId) bool) *Evaluator {
	return &Evaluator{in: in, subtype: subtype, maxDepth: DefaultMaxEvaluatorDepth}
}

// Overflows reports how many times Reduce hit the recursion-depth cap
// since the Evaluator was created. The checker polls this after a check
// pass and emits one advisory (code 9999) diagnostic if it's nonzero.
func (ev *Evaluator) Overflows() int { return ev.overflows }

// Blocked is returned by Reduce when evaluation cannot proceed because an
// operand is an unresolved type parameter or an as-yet-unevaluated
// construct, per spec §4.4.2 rule 10 ("fall back to constraint-based
// comparison").
var Blocked = NoType

// exit pairs with every depth-guarded entry point below.
func (ev *Evaluator) exit() { ev.depth-- }

// Reduce evaluates id one level, returning the reduced TypeId, or Blocked
// if id isn't a reducible operator or resolution is stuck.
//
// Every recursive reduction path below (not just this entry point) bumps
// ev.depth on entry and checks it, since a union-distributing IndexAccess
// or Conditional, or a mapped-type template substitution, recurses
// directly through its own private method rather than back through
// Reduce.
func (ev *Evaluator) Reduce(id TypeId) TypeId {
	ev.depth++
	defer ev.exit()
	if ev.depth > ev.maxDepth {
		ev.overflows++
		return ev.in.Any()
	}

	switch ev.in.Kind(id) {
	case KindKeyOf:
		return ev.reduceKeyOf(ev.in.KeyOfInner(id))
	case KindIndexAccess:
		obj, key := ev.in.IndexAccessParts(id)
		return ev.reduceIndexAccess(obj, key)
	case KindConditional:
		return ev.reduceConditional(ev.in.ConditionalInfoOf(id))
	case KindMapped:
		return ev.reduceMapped(ev.in.MappedInfoOf(id))
	default:
		return id
	}
}

// reduceKeyOf implements `keyof T`: a union of property names (as string
// literals), plus `number` when T is array-like.
func (ev *Evaluator) reduceKeyOf(inner TypeId) TypeId {
	in := ev.in
	switch in.Kind(inner) {
	case KindObject:
		shape := in.ObjectShapeOf(inner)
		members := make([]TypeId, 0, len(shape.Properties)+1)
		for _, p := range shape.Properties {
			members = append(members, in.LiteralString(p.Name))
		}
		if shape.NumberIndex != nil {
			members = append(members, in.Number())
		}
		if shape.StringIndex != nil {
			members = append(members, in.String())
		}
		if len(members) == 0 {
			return in.Never()
		}
		return in.Union(members)
	case KindArray, KindTuple:
		return in.Number()
	case KindTypeParameter:
		return Blocked
	default:
		return in.Never()
	}
}

// reduceIndexAccess implements `T[K]`: lookup K against T's property map;
// unions of K distribute; numeric K against a tuple in range returns that
// element's type.
func (ev *Evaluator) reduceIndexAccess(object, key TypeId) TypeId {
	ev.depth++
	defer ev.exit()
	if ev.depth > ev.maxDepth {
		ev.overflows++
		return ev.in.Any()
	}
	in := ev.in

	if in.Kind(key) == KindUnion {
		results := make([]TypeId, 0)
		for _, k := range in.UnionMembers(key) {
			r := ev.reduceIndexAccess(object, k)
			if r == Blocked {
				return Blocked
			}
			results = append(results, r)
		}
		return in.Union(results)
	}

	switch in.Kind(object) {
	case KindObject:
		shape := in.ObjectShapeOf(object)
		if in.Kind(key) == KindLiteralString {
			name := in.StringLiteralValue(key)
			for _, p := range shape.Properties {
				if p.Name == name {
					return p.Type
				}
			}
			if shape.StringIndex != nil {
				return shape.StringIndex.ValueType
			}
		}
		if in.Flags(key).Has(FlagNumber) && shape.NumberIndex != nil {
			return shape.NumberIndex.ValueType
		}
		return in.Never()

	case KindTuple:
		elems := in.TupleElements(object)
		if in.Kind(key) == KindLiteralNumber {
			idx := int(in.NumberLiteralValue(key))
			if idx >= 0 && idx < len(elems) {
				return elems[idx].Type
			}
			return in.Never()
		}
		if in.Flags(key).Has(FlagNumber) {
			members := make([]TypeId, len(elems))
			for i, e := range elems {
				members[i] = e.Type
			}
			return in.Union(members)
		}
		return in.Never()

	case KindArray:
		if in.Flags(key).Has(FlagNumber) {
			return in.ArrayElement(object)
		}
		return in.Never()

	case KindTypeParameter:
		return Blocked

	default:
		return in.Never()
	}
}

// reduceConditional implements `T extends U ? X : Y`: distributes over a
// bare type-parameter check's union members, otherwise runs the subtype
// check directly.
func (ev *Evaluator) reduceConditional(c *ConditionalInfo) TypeId {
	ev.depth++
	defer ev.exit()
	if ev.depth > ev.maxDepth {
		ev.overflows++
		return ev.in.Any()
	}
	in := ev.in

	if c.Distributive && in.Kind(c.Check) == KindTypeParameter {
		return Blocked
	}
	if c.Distributive && in.Kind(c.Check) == KindUnion {
		arms := make([]TypeId, 0)
		for _, m := range in.UnionMembers(c.Check) {
			sub := ConditionalInfo{Check: m, Extends: c.Extends, True: c.True, False: c.False, Distributive: false}
			r := ev.reduceConditional(&sub)
			if r == Blocked {
				return Blocked
			}
			arms = append(arms, r)
		}
		return in.Union(arms)
	}

	if ev.subtype == nil {
		return Blocked
	}
	if ev.subtype(c.Check, c.Extends) {
		return c.True
	}
	return c.False
}

// reduceMapped implements `{ [P in K]: V }`: iterates K's literal
// members, emitting properties named P (or the `as`-remapped name),
// applying optional/readonly modifiers; a remap to `never` drops the
// property.
func (ev *Evaluator) reduceMapped(m *MappedInfo) TypeId {
	in := ev.in

	keys := ev.literalKeysOf(m.Constraint)
	if keys == nil {
		return Blocked
	}

	props := make([]PropertyInfo, 0, len(keys))
	for _, k := range keys {
		keyLiteral := in.LiteralString(k)
		valueType := ev.substituteTypeParam(m.Template, m.TypeParam, keyLiteral)

		name := k
		if m.NameRemap != NoType {
			remapped := ev.substituteTypeParam(m.NameRemap, m.TypeParam, keyLiteral)
			if in.Kind(remapped) == KindLiteralString {
				name = in.StringLiteralValue(remapped)
			} else if in.Flags(remapped).Has(FlagNever) {
				continue // `as never` drops the property
			}
		}

		props = append(props, PropertyInfo{
			Name:     name,
			Type:     valueType,
			Optional: m.Optional == ModifierAdd,
			Readonly: m.Readonly == ModifierAdd,
		})
	}

	return in.ObjectType(ObjectShape{Properties: props, Flags: ObjMapped})
}

// literalKeysOf returns the string literal members of a key-space type
// (typically `keyof T`, already reduced to a union of string literals),
// or nil if it isn't fully a set of string literals.
func (ev *Evaluator) literalKeysOf(constraint TypeId) []string {
	in := ev.in
	switch in.Kind(constraint) {
	case KindLiteralString:
		return []string{in.StringLiteralValue(constraint)}
	case KindUnion:
		keys := make([]string, 0)
		for _, m := range in.UnionMembers(constraint) {
			if in.Kind(m) != KindLiteralString {
				return nil
			}
			keys = append(keys, in.StringLiteralValue(m))
		}
		return keys
	default:
		return nil
	}
}

// substituteTypeParam is a minimal substitution used only for the mapped-
// type template: replaces every BoundParameter reference to param with
// value inside tpl. Full generic instantiation (Application reduction)
// lives in the checker, which has the declared type-parameter list needed
// to resolve arbitrary TypeParameter references, not just this one.
func (ev *Evaluator) substituteTypeParam(tpl, param, value TypeId) TypeId {
	ev.depth++
	defer ev.exit()
	if ev.depth > ev.maxDepth {
		ev.overflows++
		return ev.in.Any()
	}
	in := ev.in
	if tpl == param {
		return value
	}
	switch in.Kind(tpl) {
	case KindArray:
		return in.Array(ev.substituteTypeParam(in.ArrayElement(tpl), param, value))
	case KindUnion:
		members := in.UnionMembers(tpl)
		out := make([]TypeId, len(members))
		for i, m := range members {
			out[i] = ev.substituteTypeParam(m, param, value)
		}
		return in.Union(out)
	case KindIndexAccess:
		obj, key := in.IndexAccessParts(tpl)
		return in.IndexAccess(ev.substituteTypeParam(obj, param, value), ev.substituteTypeParam(key, param, value))
	default:
		return tpl
	}
}
