package checker

import (
	"math/big"

	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// intrinsicKeywordTypes maps the reserved type-keyword identifiers the
// parser folds into a bare TypeRefData (no symbol declares them) to the
// Interner's stable intrinsic TypeIds.
func (c *Checker) intrinsicKeywordType(name string) (typesystem.TypeId, bool) {
	in := c.in
	switch name {
	case "any":
		return in.Any(), true
	case "unknown":
		return in.Unknown(), true
	case "never":
		return in.Never(), true
	case "void":
		return in.Void(), true
	case "undefined":
		return in.Undefined(), true
	case "null":
		return in.Null(), true
	case "string":
		return in.String(), true
	case "number":
		return in.Number(), true
	case "boolean":
		return in.Boolean(), true
	case "bigint":
		return in.BigInt(), true
	case "symbol":
		return in.Symbol(), true
	case "object":
		return in.Object(), true
	default:
		return typesystem.NoType, false
	}
}

// resolveType turns a type-annotation node into a TypeId. It is the
// counterpart to inferExpr for the type grammar: every KindXxxType node
// ast/kind.go's IsType switch recognizes is handled here.
func (c *Checker) resolveType(n ast.NodeIndex) typesystem.TypeId {
	if n == ast.NONE {
		return c.in.Any()
	}
	a := c.file.Arena
	switch a.Kind(n) {
	case ast.KindTypeReference:
		return c.resolveTypeReference(a.TypeRef(n))
	case ast.KindUnionType:
		return c.resolveUnion(a.UnionIntersection(n))
	case ast.KindIntersectionType:
		return c.resolveIntersection(a.UnionIntersection(n))
	case ast.KindArrayType:
		return c.in.Array(c.resolveType(a.ArrayType(n).ElementType))
	case ast.KindTupleType:
		return c.resolveTuple(a.TupleType(n))
	case ast.KindFunctionType, ast.KindConstructorType:
		return c.in.Function(typesystem.FunctionShape{Signature: c.resolveSignature(a.FunctionType(n))})
	case ast.KindInterfaceDeclaration:
		return c.resolveTypeLiteral(a.Interface(n))
	case ast.KindKeyOfType:
		return c.in.KeyOf(c.resolveType(a.KeyOfType(n).Operand))
	case ast.KindTypeOperator:
		return c.resolveTypeOperator(a.KeyOfType(n))
	case ast.KindTypeQuery:
		return c.resolveTypeQuery(a.KeyOfType(n))
	case ast.KindIndexedAccessType:
		iat := a.IndexedAccessType(n)
		return c.in.IndexAccess(c.resolveType(iat.ObjectType), c.resolveType(iat.IndexType))
	case ast.KindConditionalType:
		return c.resolveConditionalType(a.ConditionalType(n))
	case ast.KindMappedType:
		return c.resolveMappedType(a.MappedType(n))
	case ast.KindLiteralType:
		return c.resolveLiteralType(a.Literal(n))
	case ast.KindTemplateLiteralType:
		return c.resolveTemplateLiteralType(a.TemplateLiteral(n))
	case ast.KindRestType:
		return c.resolveType(a.KeyOfType(n).Operand)
	default:
		return c.in.Any()
	}
}

func (c *Checker) resolveUnion(data ast.UnionIntersectionData) typesystem.TypeId {
	members := make([]typesystem.TypeId, 0, len(data.Types))
	for _, t := range data.Types {
		members = append(members, c.resolveType(t))
	}
	return c.in.Union(members)
}

func (c *Checker) resolveIntersection(data ast.UnionIntersectionData) typesystem.TypeId {
	members := make([]typesystem.TypeId, 0, len(data.Types))
	for _, t := range data.Types {
		members = append(members, c.resolveType(t))
	}
	return c.in.Intersection(members, maxIntersectionArms)
}

// maxIntersectionArms bounds the distributive expansion Intersection
// performs when an arm is itself a union, for pathological
// `(A|B) & (C|D) & ...` chains; it is the interner's default cap.
const maxIntersectionArms = typesystem.DefaultMaxIntersectionArms

func (c *Checker) resolveTuple(data ast.TupleTypeData) typesystem.TypeId {
	elems := make([]typesystem.TupleElement, 0, len(data.ElementTypes))
	for _, t := range data.ElementTypes {
		elems = append(elems, c.resolveTupleElement(t))
	}
	return c.in.Tuple(elems)
}

func (c *Checker) resolveTupleElement(n ast.NodeIndex) typesystem.TupleElement {
	a := c.file.Arena
	if a.Kind(n) == ast.KindRestType {
		inner := a.KeyOfType(n).Operand
		return typesystem.TupleElement{Type: c.resolveType(inner), Rest: true}
	}
	return typesystem.TupleElement{Type: c.resolveType(n)}
}

func (c *Checker) resolveSignature(fn ast.FunctionTypeData) typesystem.Signature {
	params := make([]typesystem.Param, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params = append(params, c.resolveParam(p))
	}
	return typesystem.Signature{Params: params, ReturnType: c.resolveType(fn.ReturnType)}
}

func (c *Checker) resolveParam(n ast.NodeIndex) typesystem.Param {
	a := c.file.Arena
	p := a.Parameter(n)
	name := ""
	if p.Name != ast.NONE && a.Kind(p.Name) == ast.KindIdentifier {
		name = a.Identifier(p.Name).Text
	}
	t := c.resolveType(p.Type)
	if p.Type == ast.NONE {
		t = c.in.Any()
	}
	return typesystem.Param{Name: name, Type: t, Optional: p.Optional, Rest: p.Rest}
}

// resolveTypeLiteral builds an Object type from an inline `{ ... }`
// annotation or an interface declaration's own member list (merged across
// every Declarations entry when called via a symbol, see
// resolveMergedInterface).
func (c *Checker) resolveTypeLiteral(data ast.InterfaceData) typesystem.TypeId {
	shape := typesystem.ObjectShape{}
	c.collectMembers(data.Members, &shape)
	return c.in.ObjectType(shape)
}

func (c *Checker) collectMembers(members []ast.NodeIndex, shape *typesystem.ObjectShape) {
	a := c.file.Arena
	for _, m := range members {
		if a.Kind(m) != ast.KindPropertyDeclaration {
			continue
		}
		p := a.Property(m)
		if p.Computed {
			continue
		}
		name := ""
		if p.Name != ast.NONE && a.Kind(p.Name) == ast.KindIdentifier {
			name = a.Identifier(p.Name).Text
		}
		if name == "" {
			continue
		}
		t := c.in.Any()
		if p.Type != ast.NONE {
			t = c.resolveType(p.Type)
		}
		shape.Properties = append(shape.Properties, typesystem.PropertyInfo{
			Name:     name,
			Type:     t,
			Optional: p.Optional,
			Readonly: p.Modifiers.Has(ast.ModReadonly),
		})
	}
}

// resolveTypeReference resolves `T`, `ns.T`, and `T<Args>` to a concrete
// TypeId: reserved keywords first, then the active type-parameter scope,
// then a symbol lookup that dispatches on what declared the name
// (interface/class/enum/type alias), finally falling back to a same-name
// cross-file lookup when the current file has no local declaration at all.
func (c *Checker) resolveTypeReference(ref ast.TypeRefData) typesystem.TypeId {
	a := c.file.Arena
	if ref.Name == ast.NONE || a.Kind(ref.Name) != ast.KindIdentifier {
		return c.in.Any()
	}
	name := a.Identifier(ref.Name).Text

	if t, ok := c.intrinsicKeywordType(name); ok {
		return t
	}
	if t, ok := c.env.lookup(typeParamKey(name)); ok {
		return t
	}

	qualifier, member, isQualified := splitQualifiedName(name)
	lookupName := name
	if isQualified {
		lookupName = qualifier
	}

	sym, ok := c.scope.Lookup(lookupName)
	if !ok {
		sym, ok = c.resolveCrossFileSymbol(lookupName)
	}
	if !ok {
		c.addError(ref.Name, diagnostics.ErrCannotFindName, "Cannot find name '%s'.", lookupName)
		return c.in.Any()
	}

	if isQualified {
		return c.resolveEnumMemberType(sym, member, ref.Name)
	}

	args := make([]typesystem.TypeId, 0, len(ref.TypeArguments))
	for _, ta := range ref.TypeArguments {
		args = append(args, c.resolveType(ta))
	}
	base := c.symbolTypeReference(sym)
	if len(args) == 0 {
		return base
	}
	return c.in.Application(base, args)
}

// typeParamKey namespaces a type-parameter binding in narrowEnv's map so it
// can never collide with a value-space narrowing entry of the same name —
// narrowEnv is reused here purely as a scoped name->TypeId stack, not for
// its narrowing semantics.
func typeParamKey(name string) string { return "type$" + name }

func splitQualifiedName(name string) (qualifier, member string, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:], true
		}
	}
	return name, "", false
}

// resolveEnumMemberType resolves `E.A` (an enum member used in type
// position) to the literal type of that member, matching the binder's
// member-scope layout: each enum declaration owns a scope (keyed by its
// own declaration node) holding its members as ordinary symbols.
func (c *Checker) resolveEnumMemberType(enumSym *binder.Symbol, member string, anchor ast.NodeIndex) typesystem.TypeId {
	if !enumSym.Flags.Has(binder.SymEnum) || len(enumSym.Declarations) == 0 {
		c.addError(anchor, diagnostics.ErrPropertyDoesNotExist, "Property '%s' does not exist on type '%s'.", member, enumSym.Name)
		return c.in.Any()
	}
	declNode := enumSym.Declarations[0]
	memberScope, ok := c.file.Binder.Scopes[declNode]
	if !ok {
		return c.in.Any()
	}
	if _, ok := memberScope.LookupLocal(member); !ok {
		c.addError(anchor, diagnostics.ErrPropertyDoesNotExist, "Property '%s' does not exist on type '%s'.", member, enumSym.Name)
		return c.in.Any()
	}
	t, _ := c.enumMemberValueType(declNode, member)
	return t
}

// resolveTypeOperator handles `readonly T[]` and `unique symbol` (`keyof`
// already has its own dedicated node kind and is handled in resolveType).
func (c *Checker) resolveTypeOperator(data ast.KeyOfTypeData) typesystem.TypeId {
	switch data.Operator {
	case "readonly":
		return c.in.Readonly(c.resolveType(data.Operand))
	case "unique":
		return c.in.UniqueSymbol(c.in.NewNominalID())
	default:
		return c.resolveType(data.Operand)
	}
}

// resolveTypeQuery handles `typeof expr` used in type position, inferring
// the referenced expression's type the same way a value-position use of it
// would be inferred.
func (c *Checker) resolveTypeQuery(data ast.KeyOfTypeData) typesystem.TypeId {
	return c.inferExpr(data.Operand, typesystem.NoType)
}

func (c *Checker) resolveConditionalType(data ast.ConditionalTypeData) typesystem.TypeId {
	return c.in.Conditional(typesystem.ConditionalInfo{
		Check:        c.resolveType(data.CheckType),
		Extends:      c.resolveType(data.ExtendsType),
		True:         c.resolveType(data.TrueType),
		False:        c.resolveType(data.FalseType),
		Distributive: c.file.Arena.Kind(data.CheckType) == ast.KindTypeReference,
	})
}

func (c *Checker) resolveMappedType(data ast.MappedTypeData) typesystem.TypeId {
	a := c.file.Arena
	tpName := ""
	if data.TypeParameter != ast.NONE {
		tp := a.TypeParameter(data.TypeParameter)
		if tp.Name != ast.NONE {
			tpName = a.Identifier(tp.Name).Text
		}
	}
	constraint := c.resolveType(data.Constraint)
	tpType := c.in.TypeParameter(typesystem.TypeParameterInfo{Name: tpName, Constraint: constraint})

	saved, had := c.env.lookup(typeParamKey(tpName))
	_ = saved
	c.env.set(typeParamKey(tpName), tpType)
	template := c.resolveType(data.Type)
	if had {
		c.env.set(typeParamKey(tpName), saved)
	}

	nameRemap := typesystem.NoType
	if data.NameType != ast.NONE {
		nameRemap = c.resolveType(data.NameType)
	}
	return c.in.Mapped(typesystem.MappedInfo{
		TypeParam:  tpType,
		Constraint: constraint,
		NameRemap:  nameRemap,
		Template:   template,
		Readonly:   mappedModifier(data.Readonly),
		Optional:   mappedModifier(data.Optional),
	})
}

func mappedModifier(m ast.MappedModifier) typesystem.Modifier {
	switch m {
	case ast.MappedModifierPlus:
		return typesystem.ModifierAdd
	case ast.MappedModifierMinus:
		return typesystem.ModifierRemove
	default:
		return typesystem.ModifierNone
	}
}

func (c *Checker) resolveLiteralType(lit ast.LiteralData) typesystem.TypeId {
	switch v := lit.Value.(type) {
	case string:
		return c.in.LiteralString(v)
	case float64:
		return c.in.LiteralNumber(v)
	case bool:
		return c.in.LiteralBoolean(v)
	case *big.Int:
		return c.in.LiteralBigInt(v.String())
	default:
		return c.in.LiteralString(lit.Raw)
	}
}

func (c *Checker) resolveTemplateLiteralType(data ast.TemplateLiteralData) typesystem.TypeId {
	types := make([]typesystem.TypeId, 0, len(data.Exprs))
	for _, e := range data.Exprs {
		types = append(types, c.resolveType(e))
	}
	return c.in.TemplateLiteral(data.Quasis, types, maxTemplateExpansion)
}

// maxTemplateExpansion bounds the combinatorial string-union expansion a
// template literal type with multiple literal-union substitutions can
// produce (`` `${"a"|"b"}-${"x"|"y"}` `` expands to 4 members); it is the
// interner's default cap.
const maxTemplateExpansion = typesystem.DefaultMaxTemplateLiteralExpansion
