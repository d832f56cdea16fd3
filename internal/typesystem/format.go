package typesystem

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatType renders id the way `tsc` renders a type in a diagnostic
// message (`string | number`, `{ x: number; y?: string }`, `(x: T) => U`).
// Lazy and Reference entries render as a placeholder or bare name without
// being followed, so a cycle through them cannot recurse; nothing adds to
// visiting.
func (in *Interner) FormatType(id TypeId) string {
	return in.formatType(id, make(map[NominalID]bool))
}

func (in *Interner) formatType(id TypeId, visiting map[NominalID]bool) string {
	e := in.get(id)
	switch e.kind {
	case KindIntrinsic:
		return e.intrinsic.String()
	case KindLiteralString:
		return strconv.Quote(e.strLit)
	case KindLiteralNumber:
		return strconv.FormatFloat(e.numLit, 'g', -1, 64)
	case KindLiteralBigInt:
		return e.bigLit + "n"
	case KindLiteralBoolean:
		return strconv.FormatBool(e.boolLit)
	case KindUniqueSymbol:
		return "unique symbol"
	case KindUnion:
		parts := make([]string, len(e.members))
		for i, m := range e.members {
			parts[i] = in.formatType(m, visiting)
		}
		return strings.Join(parts, " | ")
	case KindIntersection:
		parts := make([]string, len(e.members))
		for i, m := range e.members {
			parts[i] = in.formatType(m, visiting)
		}
		return strings.Join(parts, " & ")
	case KindObject:
		return in.formatObjectShape(e.object, visiting)
	case KindCallable:
		return in.formatCallableShape(e.callable, visiting)
	case KindFunction:
		return in.formatSignature(e.function.Signature, visiting)
	case KindArray:
		return in.formatType(e.elem, visiting) + "[]"
	case KindTuple:
		parts := make([]string, len(e.tupleElems))
		for i, el := range e.tupleElems {
			s := in.formatType(el.Type, visiting)
			if el.Name != "" {
				s = el.Name + ": " + s
			}
			if el.Optional {
				s += "?"
			}
			if el.Rest {
				s = "..." + s
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTypeParameter:
		return e.typeParam.Name
	case KindBoundParameter:
		return fmt.Sprintf("$%d", e.boundIndex)
	case KindReference:
		return e.reference.Name
	case KindLazy:
		if visiting[e.lazyDef] {
			return "..."
		}
		return fmt.Sprintf("<lazy:%d>", e.lazyDef)
	case KindApplication:
		args := make([]string, len(e.application.Args))
		for i, a := range e.application.Args {
			args[i] = in.formatType(a, visiting)
		}
		return fmt.Sprintf("%s<%s>", in.formatType(e.application.Base, visiting), strings.Join(args, ", "))
	case KindConditional:
		c := e.conditional
		return fmt.Sprintf("%s extends %s ? %s : %s",
			in.formatType(c.Check, visiting), in.formatType(c.Extends, visiting),
			in.formatType(c.True, visiting), in.formatType(c.False, visiting))
	case KindMapped:
		return in.formatMapped(e.mapped, visiting)
	case KindKeyOf:
		return "keyof " + in.formatType(e.keyOfInner, visiting)
	case KindIndexAccess:
		return fmt.Sprintf("%s[%s]", in.formatType(e.indexObj, visiting), in.formatType(e.indexKey, visiting))
	case KindTemplateLiteral:
		return in.formatTemplateLiteral(e.templateLiteral, visiting)
	case KindReadonly:
		return "readonly " + in.formatType(e.readonlyInner, visiting)
	case KindTypeQuery:
		return "typeof " + e.typeQuery.Name
	case KindEnum:
		return fmt.Sprintf("<enum:%d>", e.enum.Nominal)
	default:
		return "?"
	}
}

func (in *Interner) formatObjectShape(s *ObjectShape, visiting map[NominalID]bool) string {
	if len(s.Properties) == 0 && s.StringIndex == nil && s.NumberIndex == nil {
		return "{}"
	}
	parts := make([]string, 0, len(s.Properties)+2)
	for _, p := range s.Properties {
		member := p.Name
		if p.Optional {
			member += "?"
		}
		member += ": " + in.formatType(p.Type, visiting)
		if p.Readonly {
			member = "readonly " + member
		}
		parts = append(parts, member)
	}
	if s.StringIndex != nil {
		parts = append(parts, "[key: string]: "+in.formatType(s.StringIndex.ValueType, visiting))
	}
	if s.NumberIndex != nil {
		parts = append(parts, "[key: number]: "+in.formatType(s.NumberIndex.ValueType, visiting))
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (in *Interner) formatCallableShape(s *CallableShape, visiting map[NominalID]bool) string {
	parts := make([]string, 0, len(s.CallSignatures)+len(s.ConstructSignatures))
	for _, sig := range s.CallSignatures {
		parts = append(parts, in.formatSignature(sig, visiting))
	}
	for _, sig := range s.ConstructSignatures {
		parts = append(parts, "new "+in.formatSignature(sig, visiting))
	}
	return strings.Join(parts, " & ")
}

func (in *Interner) formatSignature(sig Signature, visiting map[NominalID]bool) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		s := p.Name + ": " + in.formatType(p.Type, visiting)
		if p.Optional {
			s = p.Name + "?: " + in.formatType(p.Type, visiting)
		}
		if p.Rest {
			s = "..." + p.Name + ": " + in.formatType(p.Type, visiting)
		}
		params[i] = s
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(params, ", "), in.formatType(sig.ReturnType, visiting))
}

func (in *Interner) formatMapped(m *MappedInfo, visiting map[NominalID]bool) string {
	modPrefix := func(mod Modifier, token string) string {
		switch mod {
		case ModifierAdd:
			return "+" + token
		case ModifierRemove:
			return "-" + token
		default:
			return ""
		}
	}
	ro := modPrefix(m.Readonly, "readonly")
	if ro != "" {
		ro += " "
	}
	opt := modPrefix(m.Optional, "?")
	name := in.formatType(m.TypeParam, visiting)
	if m.NameRemap != NoType {
		name += " as " + in.formatType(m.NameRemap, visiting)
	}
	return fmt.Sprintf("{ %s[%s in %s]%s: %s }", ro, name, in.formatType(m.Constraint, visiting), opt, in.formatType(m.Template, visiting))
}

func (in *Interner) formatTemplateLiteral(t *TemplateLiteralInfo, visiting map[NominalID]bool) string {
	var sb strings.Builder
	sb.WriteByte('`')
	for i, atom := range t.Atoms {
		sb.WriteString(atom)
		if i < len(t.Types) {
			sb.WriteString("${")
			sb.WriteString(in.formatType(t.Types[i], visiting))
			sb.WriteByte('}')
		}
	}
	sb.WriteByte('`')
	return sb.String()
}
