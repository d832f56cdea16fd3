package typesystem

import "fmt"

// TemplateLiteral interns a template-literal type (alternating text atoms
// and member types, len(atoms) == len(types)+1), expanding it per spec
// §4.4.1: if every variable span is a union of string literals (or a bare
// string literal), materialize the Cartesian product as a union of string
// literals; if the product would exceed maxExpansion members, abort to
// the plain `string` primitive instead of building it.
func (in *Interner) TemplateLiteral(atoms []string, types []TypeId, maxExpansion int) TypeId {
	if len(atoms) != len(types)+1 {
		panic("typesystem: TemplateLiteral requires len(atoms) == len(types)+1")
	}

	literalSets, ok := in.literalStringSets(types)
	if ok {
		total := 1
		for _, set := range literalSets {
			total *= len(set)
			if total > maxExpansion {
				return in.String()
			}
		}
		if ok {
			return in.expandTemplateLiteral(atoms, literalSets)
		}
	}

	key := "template:"
	for _, a := range atoms {
		key += a + "\x00"
	}
	for _, t := range types {
		key += fmt.Sprintf("%d,", t)
	}
	return in.intern(key, func() entry {
		return entry{
			kind:            KindTemplateLiteral,
			templateLiteral: &TemplateLiteralInfo{Atoms: append([]string{}, atoms...), Types: append([]TypeId{}, types...)},
			flags:           FlagTemplateLiteral,
		}
	})
}

func (in *Interner) TemplateLiteralInfoOf(id TypeId) *TemplateLiteralInfo { return in.get(id).templateLiteral }

// literalStringSets reports, for each variable span, the set of string
// literal values it ranges over — ok is false the moment any span isn't a
// string literal or a union purely of string literals.
func (in *Interner) literalStringSets(types []TypeId) ([][]string, bool) {
	sets := make([][]string, len(types))
	for i, t := range types {
		switch in.Kind(t) {
		case KindLiteralString:
			sets[i] = []string{in.StringLiteralValue(t)}
		case KindUnion:
			members := in.UnionMembers(t)
			vals := make([]string, 0, len(members))
			for _, m := range members {
				if in.Kind(m) != KindLiteralString {
					return nil, false
				}
				vals = append(vals, in.StringLiteralValue(m))
			}
			sets[i] = vals
		default:
			return nil, false
		}
	}
	return sets, true
}

// expandTemplateLiteral materializes the Cartesian product of sets,
// interleaved with atoms, as a union of string literal TypeIds.
func (in *Interner) expandTemplateLiteral(atoms []string, sets [][]string) TypeId {
	combos := [][]string{{}}
	for _, set := range sets {
		next := make([][]string, 0, len(combos)*len(set))
		for _, combo := range combos {
			for _, v := range set {
				extended := append(append([]string{}, combo...), v)
				next = append(next, extended)
			}
		}
		combos = next
	}

	members := make([]TypeId, 0, len(combos))
	for _, combo := range combos {
		s := atoms[0]
		for i, v := range combo {
			s += v + atoms[i+1]
		}
		members = append(members, in.LiteralString(s))
	}
	return in.Union(members)
}
