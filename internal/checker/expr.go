package checker

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// inferExpr infers n's type, threading contextual (the expected type from
// an enclosing position — a variable's declared type, a call argument's
// parameter type, an array/object literal element slot) through to drive
// contextual typing of literals and callback parameters. contextual is
// typesystem.NoType when there is nothing to contextually type against.
func (c *Checker) inferExpr(n ast.NodeIndex, contextual typesystem.TypeId) typesystem.TypeId {
	if n == ast.NONE {
		return c.setType(n, c.in.Any())
	}
	a := c.file.Arena
	var t typesystem.TypeId
	switch a.Kind(n) {
	case ast.KindIdentifier:
		t = c.inferIdentifier(n)
	case ast.KindNumericLiteral, ast.KindStringLiteral, ast.KindBooleanLiteral, ast.KindBigIntLiteral:
		t = c.widenLiteral(c.resolveLiteralType(a.Literal(n)))
	case ast.KindNullLiteral:
		t = c.in.Null()
	case ast.KindUndefinedLiteral:
		t = c.in.Undefined()
	case ast.KindTemplateLiteral:
		t = c.inferTemplateLiteral(a.TemplateLiteral(n))
	case ast.KindThisExpression, ast.KindSuperExpression:
		t = c.in.Any()
	case ast.KindArrayLiteralExpression:
		t = c.inferArrayLiteral(a.ArrayLiteral(n), contextual)
	case ast.KindObjectLiteralExpression:
		t = c.inferObjectLiteral(a.ObjectLiteral(n), contextual)
	case ast.KindBinaryExpression:
		t = c.inferBinary(a.Binary(n))
	case ast.KindLogicalExpression:
		t = c.inferLogical(n, a.Logical(n))
	case ast.KindUnaryExpression, ast.KindUpdateExpression, ast.KindAwaitExpression, ast.KindYieldExpression:
		t = c.inferUnary(a.Unary(n))
	case ast.KindConditionalExpression:
		t = c.inferConditional(a.ConditionalExpr(n))
	case ast.KindCallExpression, ast.KindNewExpression:
		t = c.inferCall(n, a.Call(n))
	case ast.KindMemberExpression:
		t = c.inferMember(n, a.Member(n))
	case ast.KindAsExpression:
		t = c.inferAsExpression(a.AsExpression(n))
	case ast.KindSatisfiesExpression:
		t = c.inferSatisfiesExpression(a.AsExpression(n))
	case ast.KindArrowFunction:
		t = c.inferArrowFunction(a.ArrowFunction(n), contextual)
	case ast.KindFunctionExpression:
		t = c.in.Function(typesystem.FunctionShape{Signature: c.resolveFunctionSignature(a.Function(n))})
	case ast.KindSpreadElement:
		t = c.inferExpr(a.Unary(n).Operand, typesystem.NoType)
	default:
		t = c.in.Any()
	}
	return c.setType(n, t)
}

// inferConstExpr computes the literal-preserving type an `as const`
// assertion gives its operand: primitives keep their literal type instead
// of widening, arrays become readonly tuples, and object literals become
// readonly objects, recursively.
func (c *Checker) inferConstExpr(n ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	switch a.Kind(n) {
	case ast.KindNumericLiteral, ast.KindStringLiteral, ast.KindBooleanLiteral, ast.KindBigIntLiteral:
		return c.resolveLiteralType(a.Literal(n))
	case ast.KindArrayLiteralExpression:
		lit := a.ArrayLiteral(n)
		elems := make([]typesystem.TupleElement, 0, len(lit.Elements))
		for _, e := range lit.Elements {
			elems = append(elems, typesystem.TupleElement{Type: c.inferConstExpr(e)})
		}
		return c.in.Readonly(c.in.Tuple(elems))
	case ast.KindObjectLiteralExpression:
		shape := typesystem.ObjectShape{}
		for _, p := range a.ObjectLiteral(n).Properties {
			if a.Kind(p) != ast.KindPropertyAssignment && a.Kind(p) != ast.KindShorthandPropertyAssignment {
				continue
			}
			pa := a.PropertyAssign(p)
			name, ok := c.propertyName(pa)
			if !ok {
				continue
			}
			shape.Properties = append(shape.Properties, typesystem.PropertyInfo{
				Name: name, Type: c.inferConstExpr(pa.Value), Readonly: true,
			})
		}
		return c.in.Readonly(c.in.ObjectType(shape))
	default:
		return c.inferExpr(n, typesystem.NoType)
	}
}

func (c *Checker) propertyName(pa ast.PropertyAssignData) (string, bool) {
	a := c.file.Arena
	if pa.Computed || pa.Name == ast.NONE {
		return "", false
	}
	switch a.Kind(pa.Name) {
	case ast.KindIdentifier:
		return a.Identifier(pa.Name).Text, true
	case ast.KindStringLiteral:
		lit := a.Literal(pa.Name)
		s, _ := lit.Value.(string)
		return s, true
	default:
		return "", false
	}
}

// widenLiteral maps a literal type inferred from an expression to its
// containing primitive, matching how `let`/`const` (absent an explicit
// annotation or an `as const` assertion) infer the declared type of a
// primitive initializer: `let x = 5` declares x as `number`, not `5`.
func (c *Checker) widenLiteral(t typesystem.TypeId) typesystem.TypeId {
	in := c.in
	switch in.Kind(t) {
	case typesystem.KindLiteralString:
		return in.String()
	case typesystem.KindLiteralNumber:
		return in.Number()
	case typesystem.KindLiteralBoolean:
		return in.Boolean()
	case typesystem.KindLiteralBigInt:
		return in.BigInt()
	case typesystem.KindUnion:
		members := in.UnionMembers(t)
		out := make([]typesystem.TypeId, len(members))
		for i, m := range members {
			out[i] = c.widenLiteral(m)
		}
		return in.Union(out)
	default:
		return t
	}
}

func (c *Checker) inferTemplateLiteral(data ast.TemplateLiteralData) typesystem.TypeId {
	for _, e := range data.Exprs {
		c.inferExpr(e, typesystem.NoType)
	}
	return c.in.String()
}

// inferIdentifier resolves a value-position name reference: a narrowing
// override if one is active, else the symbol's declared/inferred type.
func (c *Checker) inferIdentifier(n ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	name := a.Identifier(n).Text
	if t, ok := c.env.lookup(name); ok {
		return t
	}
	sym, ok := c.scope.Lookup(name)
	if !ok {
		sym, ok = c.resolveCrossFileSymbol(name)
	}
	if !ok {
		c.addError(n, diagnostics.ErrCannotFindName, "Cannot find name '%s'.", name)
		return c.in.Any()
	}
	return c.symbolValueType(sym)
}

// symbolValueType is the value-space counterpart of symbolTypeReference:
// what using sym's name as an expression (not a type) denotes.
func (c *Checker) symbolValueType(sym *binder.Symbol) typesystem.TypeId {
	switch {
	case sym.Flags.Has(binder.SymEnum):
		return c.resolveEnumNamespaceType(sym)
	case sym.Flags.Has(binder.SymFunction):
		return c.resolveFunctionSymbolType(sym)
	case sym.Flags.Has(binder.SymClass), sym.Flags.Has(binder.SymInterface):
		// A value-position reference to a class denotes its constructor;
		// a value-position reference to a bare interface name is invalid
		// TypeScript and wouldn't reach here via a real program, so both
		// fall back to any rather than modeling
		// constructor-signature inference, which no scenario here needs.
		return c.in.Any()
	default:
		return c.resolveValueDeclarationType(sym)
	}
}

func (c *Checker) resolveEnumNamespaceType(sym *binder.Symbol) typesystem.TypeId {
	if len(sym.Declarations) == 0 {
		return c.in.Any()
	}
	declNode := sym.Declarations[0]
	if t, ok := c.typeOfDecl[declNode]; ok {
		return t
	}
	a := c.file.Arena
	if a.Kind(declNode) != ast.KindEnumDeclaration {
		return c.in.Any()
	}
	data := a.Enum(declNode)
	shape := typesystem.ObjectShape{}
	for _, m := range data.Members {
		em := a.EnumMember(m)
		if em.Name == ast.NONE || a.Kind(em.Name) != ast.KindIdentifier {
			continue
		}
		name := a.Identifier(em.Name).Text
		memberType, _ := c.enumMemberValueType(declNode, name)
		shape.Properties = append(shape.Properties, typesystem.PropertyInfo{Name: name, Type: memberType, Readonly: true})
	}
	result := c.in.ObjectType(shape)
	return result
}

// resolveFunctionSymbolType builds a function's value type from its
// implementation declaration — the last Declarations entry with a body, or
// the last declaration at all for an ambient/overload-only signature.
func (c *Checker) resolveFunctionSymbolType(sym *binder.Symbol) typesystem.TypeId {
	a := c.file.Arena
	var impl ast.NodeIndex = ast.NONE
	for _, d := range sym.Declarations {
		if a.Kind(d) != ast.KindFunctionDeclaration {
			continue
		}
		impl = d
		if a.Function(d).Body != ast.NONE {
			break
		}
	}
	if impl == ast.NONE {
		return c.in.Any()
	}
	if t, ok := c.typeOfDecl[impl]; ok {
		return t
	}
	result := c.in.Function(typesystem.FunctionShape{Signature: c.resolveFunctionSignature(a.Function(impl))})
	c.typeOfDecl[impl] = result
	return result
}

// resolveValueDeclarationType finds sym's ValueDeclaration (a variable or
// parameter) and infers its type from an explicit annotation, else from its
// initializer, memoized by that declaration node and guarded against
// self-reference (`let a = a;`).
func (c *Checker) resolveValueDeclarationType(sym *binder.Symbol) typesystem.TypeId {
	decl := sym.ValueDeclaration
	if decl == ast.NONE {
		return c.in.Any()
	}
	if t, ok := c.typeOfDecl[decl]; ok {
		return t
	}
	if c.resolving[decl] {
		return c.in.Any()
	}
	if c.resolving == nil {
		c.resolving = make(map[ast.NodeIndex]bool)
	}
	c.resolving[decl] = true
	defer delete(c.resolving, decl)

	a := c.file.Arena
	var result typesystem.TypeId
	switch a.Kind(decl) {
	case ast.KindVariableDeclaration:
		vd := a.VarDecl(decl)
		if vd.Type != ast.NONE {
			result = c.resolveType(vd.Type)
		} else if vd.Initializer != ast.NONE {
			result = c.inferInitializerType(vd.Initializer)
		} else {
			result = c.in.Any()
		}
	case ast.KindParameter:
		p := a.Parameter(decl)
		if p.Type != ast.NONE {
			result = c.resolveType(p.Type)
		} else if p.Initializer != ast.NONE {
			result = c.widenLiteral(c.inferExpr(p.Initializer, typesystem.NoType))
		} else {
			result = c.in.Any()
		}
	case ast.KindPropertyDeclaration:
		p := a.Property(decl)
		if p.Type != ast.NONE {
			result = c.resolveType(p.Type)
		} else if p.Initializer != ast.NONE {
			result = c.inferInitializerType(p.Initializer)
		} else {
			result = c.in.Any()
		}
	default:
		result = c.in.Any()
	}
	c.typeOfDecl[decl] = result
	return result
}

// inferInitializerType is resolveValueDeclarationType's helper for the
// common "no annotation" path: an `as const` initializer keeps its literal
// shape, anything else widens the way a mutable binding's declared type
// does.
func (c *Checker) inferInitializerType(init ast.NodeIndex) typesystem.TypeId {
	a := c.file.Arena
	if a.Kind(init) == ast.KindAsExpression && c.isConstAssertion(a.AsExpression(init).Type) {
		return c.inferConstExpr(a.AsExpression(init).Expression)
	}
	return c.widenLiteral(c.inferExpr(init, typesystem.NoType))
}

// isConstAssertion reports whether typeNode is the bare `const` identifier
// `as const` parses to (see parser's parseTypeReferenceOrIdentifierType):
// `const` has no declared symbol and isn't a reserved type keyword, it is
// purely this one assertion form.
func (c *Checker) isConstAssertion(typeNode ast.NodeIndex) bool {
	a := c.file.Arena
	if a.Kind(typeNode) != ast.KindTypeReference {
		return false
	}
	ref := a.TypeRef(typeNode)
	if ref.Name == ast.NONE || a.Kind(ref.Name) != ast.KindIdentifier {
		return false
	}
	return a.Identifier(ref.Name).Text == "const" && len(ref.TypeArguments) == 0
}

func (c *Checker) inferAsExpression(data ast.AsExpressionData) typesystem.TypeId {
	if c.isConstAssertion(data.Type) {
		return c.inferConstExpr(data.Expression)
	}
	c.inferExpr(data.Expression, typesystem.NoType)
	return c.resolveType(data.Type)
}

// inferSatisfiesExpression checks that the expression is assignable to the
// asserted type without adopting it: `{ a: 1 } satisfies Point` keeps the
// literal's own inferred type (so later property access still sees only
// the literal's actual members), unlike `as`, which replaces the type.
func (c *Checker) inferSatisfiesExpression(data ast.AsExpressionData) typesystem.TypeId {
	want := c.resolveType(data.Type)
	got := c.inferExpr(data.Expression, want)
	c.checkAssignableTo(data.Expression, got, want)
	return got
}

func (c *Checker) inferArrayLiteral(data ast.ArrayLiteralData, contextual typesystem.TypeId) typesystem.TypeId {
	in := c.in
	var contextualElem typesystem.TypeId
	if contextual != typesystem.NoType && in.Kind(contextual) == typesystem.KindArray {
		contextualElem = in.ArrayElement(contextual)
	}
	members := make([]typesystem.TypeId, 0, len(data.Elements))
	for _, e := range data.Elements {
		members = append(members, c.widenLiteral(c.inferExpr(e, contextualElem)))
	}
	if len(members) == 0 {
		if contextualElem != typesystem.NoType {
			return in.Array(contextualElem)
		}
		return in.Array(in.Any())
	}
	return in.Array(in.Union(members))
}

func (c *Checker) inferObjectLiteral(data ast.ObjectLiteralData, contextual typesystem.TypeId) typesystem.TypeId {
	in := c.in
	var contextualShape *typesystem.ObjectShape
	if contextual != typesystem.NoType && in.Kind(contextual) == typesystem.KindObject {
		contextualShape = in.ObjectShapeOf(contextual)
	}
	shape := typesystem.ObjectShape{Flags: typesystem.ObjFreshLiteral}
	a := c.file.Arena
	for _, p := range data.Properties {
		switch a.Kind(p) {
		case ast.KindPropertyAssignment, ast.KindShorthandPropertyAssignment:
			pa := a.PropertyAssign(p)
			name, ok := c.propertyName(pa)
			if !ok {
				c.inferExpr(pa.Value, typesystem.NoType)
				continue
			}
			var propContextual typesystem.TypeId
			if contextualShape != nil {
				for _, cp := range contextualShape.Properties {
					if cp.Name == name {
						propContextual = cp.Type
						break
					}
				}
			}
			t := c.widenLiteral(c.inferExpr(pa.Value, propContextual))
			shape.Properties = append(shape.Properties, typesystem.PropertyInfo{Name: name, Type: t})
		case ast.KindSpreadAssignment:
			// Spread assignments are skipped: the operand is not
			// inferred and none of its properties are added to shape.
		}
	}
	return in.ObjectType(shape)
}

func (c *Checker) inferBinary(bin ast.BinaryData) typesystem.TypeId {
	in := c.in
	left := c.inferExpr(bin.Left, typesystem.NoType)
	switch bin.Operator {
	case ast.OpAdd:
		right := c.inferExpr(bin.Right, typesystem.NoType)
		if c.isStringLike(left) || c.isStringLike(right) {
			return in.String()
		}
		return in.Number()
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShiftLeft, ast.OpShiftRight, ast.OpUnsignedShiftRight:
		c.inferExpr(bin.Right, typesystem.NoType)
		return in.Number()
	case ast.OpEquals, ast.OpNotEquals, ast.OpStrictEquals, ast.OpStrictNotEquals,
		ast.OpLessThan, ast.OpGreaterThan, ast.OpLessThanEquals, ast.OpGreaterThanEquals,
		ast.OpInstanceOf, ast.OpIn:
		c.inferExpr(bin.Right, typesystem.NoType)
		return in.Boolean()
	case ast.OpComma:
		return c.inferExpr(bin.Right, typesystem.NoType)
	case ast.OpAssign:
		right := c.inferExpr(bin.Right, left)
		c.checkAssignableTo(bin.Right, right, left)
		c.narrowAssignment(bin.Left, right)
		return right
	case ast.OpAddAssign, ast.OpSubAssign, ast.OpMulAssign, ast.OpDivAssign, ast.OpModAssign:
		c.inferExpr(bin.Right, typesystem.NoType)
		return left
	default:
		return in.Any()
	}
}

func (c *Checker) isStringLike(t typesystem.TypeId) bool {
	in := c.in
	return t == in.String() || in.Kind(t) == typesystem.KindLiteralString || in.Kind(t) == typesystem.KindTemplateLiteral
}

// narrowAssignment records the narrowed type of a plain identifier target
// after a `x = expr` assignment, so later reads in the same lexical scope
// see the assigned type instead of the declared one.
func (c *Checker) narrowAssignment(target ast.NodeIndex, t typesystem.TypeId) {
	a := c.file.Arena
	if a.Kind(target) != ast.KindIdentifier {
		return
	}
	c.env.set(a.Identifier(target).Text, t)
}

func (c *Checker) inferLogical(n ast.NodeIndex, data ast.LogicalData) typesystem.TypeId {
	in := c.in
	switch data.Operator {
	case ast.LogAnd:
		g := c.narrowCondition(data.Left)
		c.inferExpr(data.Left, typesystem.NoType)
		c.env = newNarrowEnv(c.env)
		if g.applies {
			c.applyGuard(g, g.trueBranchType)
		}
		right := c.inferExpr(data.Right, typesystem.NoType)
		c.env = c.env.parent
		if g.applies {
			return in.Union([]typesystem.TypeId{g.falseBranchType, right})
		}
		return right
	case ast.LogOr:
		left := c.inferExpr(data.Left, typesystem.NoType)
		right := c.inferExpr(data.Right, typesystem.NoType)
		return in.Union([]typesystem.TypeId{c.excludeFalsy(left), right})
	case ast.LogNullish:
		left := c.inferExpr(data.Left, typesystem.NoType)
		right := c.inferExpr(data.Right, typesystem.NoType)
		return in.Union([]typesystem.TypeId{c.excludeNullish(left), right})
	default:
		c.inferExpr(data.Right, typesystem.NoType)
		return in.Any()
	}
}

func (c *Checker) inferUnary(data ast.UnaryData) typesystem.TypeId {
	in := c.in
	switch data.Operator {
	case "!":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Boolean()
	case "+", "-", "~", "++", "--":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Number()
	case "typeof":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.String()
	case "void":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Undefined()
	case "delete":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Boolean()
	case "await":
		return c.inferExpr(data.Operand, typesystem.NoType)
	case "yield", "yield*":
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Any()
	default:
		c.inferExpr(data.Operand, typesystem.NoType)
		return in.Any()
	}
}

func (c *Checker) inferConditional(data ast.ConditionalExprData) typesystem.TypeId {
	in := c.in
	g := c.narrowCondition(data.Condition)
	c.inferExpr(data.Condition, typesystem.NoType)

	c.env = newNarrowEnv(c.env)
	if g.applies {
		c.applyGuard(g, g.trueBranchType)
	}
	trueType := c.inferExpr(data.WhenTrue, typesystem.NoType)
	c.env = c.env.parent

	c.env = newNarrowEnv(c.env)
	if g.applies {
		c.applyGuard(g, g.falseBranchType)
	}
	falseType := c.inferExpr(data.WhenFalse, typesystem.NoType)
	c.env = c.env.parent

	return in.Union([]typesystem.TypeId{trueType, falseType})
}

func (c *Checker) inferArrowFunction(data ast.ArrowFunctionData, contextual typesystem.TypeId) typesystem.TypeId {
	in := c.in
	var contextualSig *typesystem.Signature
	if contextual != typesystem.NoType && in.Kind(contextual) == typesystem.KindFunction {
		sig := in.FunctionShapeOf(contextual).Signature
		contextualSig = &sig
	}
	c.env = newNarrowEnv(c.env)
	params := make([]typesystem.Param, 0, len(data.Parameters))
	for i, p := range data.Parameters {
		pd := c.resolveParam(p)
		if pd.Type == in.Any() && contextualSig != nil && i < len(contextualSig.Params) {
			pd.Type = contextualSig.Params[i].Type
		}
		a := c.file.Arena
		pn := a.Parameter(p)
		if pn.Name != ast.NONE && a.Kind(pn.Name) == ast.KindIdentifier {
			c.env.set(a.Identifier(pn.Name).Text, pd.Type)
		}
		params = append(params, pd)
	}
	ret := c.in.Any()
	if data.ReturnType != ast.NONE {
		ret = c.resolveType(data.ReturnType)
	} else if data.Body != ast.NONE {
		ret = c.inferReturnType(data.Body)
	}
	c.env = c.env.parent
	return in.Function(typesystem.FunctionShape{Signature: typesystem.Signature{Params: params, ReturnType: ret}})
}

func (c *Checker) inferCall(n ast.NodeIndex, data ast.CallData) typesystem.TypeId {
	in := c.in
	calleeType := c.inferExpr(data.Callee, typesystem.NoType)
	sig, ok := c.soleSignature(calleeType)
	if !ok {
		for _, arg := range data.Arguments {
			c.inferExpr(arg, typesystem.NoType)
		}
		return in.Any()
	}
	for i, arg := range data.Arguments {
		var want typesystem.TypeId
		if i < len(sig.Params) {
			want = sig.Params[i].Type
		} else if len(sig.Params) > 0 && sig.Params[len(sig.Params)-1].Rest {
			want = sig.Params[len(sig.Params)-1].Type
		}
		argType := c.inferExpr(arg, want)
		if want != typesystem.NoType {
			c.checkArgumentAssignable(arg, argType, want)
		}
	}
	_ = n
	return sig.ReturnType
}

func (c *Checker) soleSignature(t typesystem.TypeId) (typesystem.Signature, bool) {
	in := c.in
	switch in.Kind(t) {
	case typesystem.KindFunction:
		return in.FunctionShapeOf(t).Signature, true
	case typesystem.KindCallable:
		sigs := in.CallableShapeOf(t).CallSignatures
		if len(sigs) == 0 {
			return typesystem.Signature{}, false
		}
		return sigs[0], true
	default:
		return typesystem.Signature{}, false
	}
}

// inferMember resolves `obj.prop` / `obj[prop]`, reporting the
// possibly-null/possibly-undefined diagnostics strictNullChecks requires
// before the property lookup, and the missing-property diagnostic after.
func (c *Checker) inferMember(n ast.NodeIndex, data ast.MemberData) typesystem.TypeId {
	a := c.file.Arena
	objType := c.inferExpr(data.Object, typesystem.NoType)

	if !data.OptionalChain {
		objType = c.checkNotNullish(data.Object, objType)
	} else {
		objType = c.excludeNullish(objType)
	}

	if data.Computed {
		keyType := c.inferExpr(data.Property, typesystem.NoType)
		return c.indexedMemberType(objType, keyType)
	}

	if data.Property == ast.NONE || a.Kind(data.Property) != ast.KindIdentifier {
		return c.in.Any()
	}
	propName := a.Identifier(data.Property).Text

	// `E.A` where E names an enum: resolved directly against the enum's
	// declaration rather than its namespace-object value type, so the
	// result carries the enum's Nominal tag (see enumMemberValueType).
	if a.Kind(data.Object) == ast.KindIdentifier {
		if sym, ok := c.scope.Lookup(a.Identifier(data.Object).Text); ok && sym.Flags.Has(binder.SymEnum) && len(sym.Declarations) > 0 {
			if t, ok := c.enumMemberValueType(sym.Declarations[0], propName); ok {
				return t
			}
		}
	}

	return c.propertyType(n, objType, propName)
}

// checkNotNullish reports 18047 (possibly null) / 18048 (possibly
// undefined) under strictNullChecks, then returns objType with null and
// undefined stripped so the property lookup that follows sees only the
// non-nullish arms.
func (c *Checker) checkNotNullish(objNode ast.NodeIndex, objType typesystem.TypeId) typesystem.TypeId {
	if !c.opts.StrictNullChecks {
		return objType
	}
	in := c.in
	hasNull, hasUndefined := false, false
	if in.Kind(objType) == typesystem.KindUnion {
		for _, m := range in.UnionMembers(objType) {
			if m == in.Null() {
				hasNull = true
			}
			if m == in.Undefined() {
				hasUndefined = true
			}
		}
	} else if objType == in.Null() {
		hasNull = true
	} else if objType == in.Undefined() {
		hasUndefined = true
	}
	switch {
	case hasNull && hasUndefined:
		c.addError(objNode, diagnostics.ErrObjectPossiblyNullOrUndefined, "Object is possibly 'null' or 'undefined'.")
	case hasNull:
		c.addError(objNode, diagnostics.ErrObjectPossiblyNullStrict, "Object is possibly 'null'.")
	case hasUndefined:
		c.addError(objNode, diagnostics.ErrObjectPossiblyUndefinedStrict, "Object is possibly 'undefined'.")
	}
	return c.excludeNullish(objType)
}

func (c *Checker) propertyType(anchor ast.NodeIndex, objType typesystem.TypeId, name string) typesystem.TypeId {
	in := c.in
	switch in.Kind(objType) {
	case typesystem.KindObject:
		shape := in.ObjectShapeOf(objType)
		for _, p := range shape.Properties {
			if p.Name == name {
				return p.Type
			}
		}
		if shape.StringIndex != nil {
			return shape.StringIndex.ValueType
		}
		c.addError(anchor, diagnostics.ErrPropertyDoesNotExist, "Property '%s' does not exist on type '%s'.", name, c.FormatType(objType))
		return in.Any()
	case typesystem.KindArray:
		if name == "length" {
			return in.Number()
		}
		return in.Any()
	case typesystem.KindUnion:
		members := in.UnionMembers(objType)
		out := make([]typesystem.TypeId, 0, len(members))
		for _, m := range members {
			out = append(out, c.propertyType(anchor, m, name))
		}
		return in.Union(out)
	default:
		if objType == in.String() && (name == "length") {
			return in.Number()
		}
		return in.Any()
	}
}

func (c *Checker) indexedMemberType(objType, keyType typesystem.TypeId) typesystem.TypeId {
	in := c.in
	if in.Kind(objType) == typesystem.KindArray {
		return in.ArrayElement(objType)
	}
	if in.Kind(objType) == typesystem.KindTuple && in.Kind(keyType) == typesystem.KindLiteralNumber {
		idx := int(in.NumberLiteralValue(keyType))
		elems := in.TupleElements(objType)
		if idx >= 0 && idx < len(elems) {
			return elems[idx].Type
		}
		return in.Any()
	}
	if in.Kind(objType) == typesystem.KindObject && in.Kind(keyType) == typesystem.KindLiteralString {
		return c.propertyType(ast.NONE, objType, in.StringLiteralValue(keyType))
	}
	return in.Any()
}
