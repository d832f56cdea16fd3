package checker

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

// narrowEnv is a lexical stack of per-name type overrides, pushed on entry
// to an if/else branch (or after a narrowing assignment) and popped on
// exit. The binder's FlowGraph records structural branch/join points but
// doesn't key assignments by variable name, so rather than re-deriving a
// symbol-keyed dataflow lattice from it, the checker narrows the way a
// straightforward recursive-descent type checker does: walk statements in
// source order, and fork/merge a name->type map around each branch. This
// is flow-insensitive across loops (a loop body is checked once, against
// the type on entry) — a scope call documented in DESIGN.md.
type narrowEnv struct {
	parent *narrowEnv
	types  map[string]typesystem.TypeId
}

func newNarrowEnv(parent *narrowEnv) *narrowEnv {
	return &narrowEnv{parent: parent, types: make(map[string]typesystem.TypeId)}
}

func (e *narrowEnv) lookup(name string) (typesystem.TypeId, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.types[name]; ok {
			return t, true
		}
	}
	return typesystem.NoType, false
}

func (e *narrowEnv) set(name string, t typesystem.TypeId) {
	e.types[name] = t
}

// guard describes one narrowing test: the variable name narrowed, and the
// types it carries in the true-branch and false-branch of the test.
type guard struct {
	name            string
	trueBranchType  typesystem.TypeId
	falseBranchType typesystem.TypeId
	applies         bool
}

// narrowCondition inspects a boolean-valued expression for the handful of
// narrowing patterns spec.md calls out: `typeof x === "..."`, `x == null`
// / `x != null` (and the strict-equals forms), and bare truthiness
// (`if (x)`). `x instanceof C` and `"k" in x` are recognized but yield a
// guard that does not apply, so neither narrows. Anything else yields a
// no-op guard.
func (c *Checker) narrowCondition(cond ast.NodeIndex) guard {
	a := c.file.Arena
	switch a.Kind(cond) {
	case ast.KindBinaryExpression:
		return c.narrowBinary(a.Binary(cond))
	case ast.KindUnaryExpression:
		u := a.Unary(cond)
		if u.Operator == "!" {
			inner := c.narrowCondition(u.Operand)
			if inner.applies {
				inner.trueBranchType, inner.falseBranchType = inner.falseBranchType, inner.trueBranchType
				return inner
			}
		}
	case ast.KindIdentifier:
		name := a.Identifier(cond).Text
		t := c.inferExpr(cond, typesystem.NoType)
		return guard{name: name, trueBranchType: c.excludeFalsy(t), falseBranchType: t, applies: true}
	}
	return guard{}
}

func (c *Checker) narrowBinary(bin ast.BinaryData) guard {
	a := c.file.Arena
	in := c.in

	switch bin.Operator {
	case ast.OpEquals, ast.OpStrictEquals, ast.OpNotEquals, ast.OpStrictNotEquals:
		// typeof x === "string" / "number" / ...
		if a.Kind(bin.Left) == ast.KindUnaryExpression && a.Unary(bin.Left).Operator == "typeof" {
			return c.narrowTypeofEquality(a.Unary(bin.Left).Operand, bin.Right, bin.Operator)
		}
		if a.Kind(bin.Right) == ast.KindUnaryExpression && a.Unary(bin.Right).Operator == "typeof" {
			return c.narrowTypeofEquality(a.Unary(bin.Right).Operand, bin.Left, bin.Operator)
		}
		// x == null / x != null / x === null / x === undefined, either side.
		if name, ok := c.identName(bin.Left); ok && c.isNullOrUndefinedLiteral(bin.Right) {
			return c.narrowNullEquality(bin.Left, name, bin.Operator)
		}
		if name, ok := c.identName(bin.Right); ok && c.isNullOrUndefinedLiteral(bin.Left) {
			return c.narrowNullEquality(bin.Right, name, bin.Operator)
		}

	case ast.OpInstanceOf:
		if name, ok := c.identName(bin.Left); ok {
			ctorType := c.inferExpr(bin.Right, typesystem.NoType)
			_ = ctorType // a constructor's instance type isn't modeled separately in this core's TypeId graph
			return guard{name: name, trueBranchType: typesystem.NoType, falseBranchType: typesystem.NoType}
		}

	case ast.OpIn:
		if a.Kind(bin.Left) == ast.KindStringLiteral {
			if name, ok := c.identName(bin.Right); ok {
				full := c.inferExpr(bin.Right, typesystem.NoType)
				return guard{name: name, trueBranchType: full, falseBranchType: full}
			}
		}
	}
	_ = in
	return guard{}
}

func (c *Checker) narrowTypeofEquality(operand, literal ast.NodeIndex, op ast.BinaryOperator) guard {
	a := c.file.Arena
	name, ok := c.identName(operand)
	if !ok || a.Kind(literal) != ast.KindStringLiteral {
		return guard{}
	}
	lit := a.Literal(literal)
	s, _ := lit.Value.(string)
	full := c.inferExpr(operand, typesystem.NoType)
	matched := c.typeOfTypeofTag(s)
	negated := op == ast.OpNotEquals || op == ast.OpStrictNotEquals
	g := guard{name: name, applies: true}
	if negated {
		g.trueBranchType, g.falseBranchType = full, matched
	} else {
		g.trueBranchType, g.falseBranchType = matched, full
	}
	return g
}

// typeOfTypeofTag maps a `typeof` string tag to the intrinsic type it
// denotes, falling back to the widest representable type (any) for tags
// this core's type system has no dedicated representation for (function,
// object, symbol, bigint are folded to their structural/primitive kin
// where one exists).
func (c *Checker) typeOfTypeofTag(tag string) typesystem.TypeId {
	in := c.in
	switch tag {
	case "string":
		return in.String()
	case "number":
		return in.Number()
	case "boolean":
		return in.Boolean()
	case "bigint":
		return in.BigInt()
	case "symbol":
		return in.Symbol()
	case "undefined":
		return in.Undefined()
	case "object", "function":
		return in.Object()
	default:
		return in.Any()
	}
}

func (c *Checker) narrowNullEquality(operand ast.NodeIndex, name string, op ast.BinaryOperator) guard {
	full := c.inferExpr(operand, typesystem.NoType)
	nonNull := c.excludeNullish(full)
	equalsNull := op == ast.OpEquals || op == ast.OpStrictEquals
	g := guard{name: name, applies: true}
	if equalsNull {
		g.trueBranchType, g.falseBranchType = full, nonNull
	} else {
		g.trueBranchType, g.falseBranchType = nonNull, full
	}
	return g
}

func (c *Checker) identName(n ast.NodeIndex) (string, bool) {
	if c.file.Arena.Kind(n) != ast.KindIdentifier {
		return "", false
	}
	return c.file.Arena.Identifier(n).Text, true
}

func (c *Checker) isNullOrUndefinedLiteral(n ast.NodeIndex) bool {
	switch c.file.Arena.Kind(n) {
	case ast.KindNullLiteral, ast.KindUndefinedLiteral:
		return true
	default:
		return false
	}
}

// excludeNullish removes null/undefined from a union, the effect of a
// `!= null` / `!== null` / truthy narrow.
func (c *Checker) excludeNullish(t typesystem.TypeId) typesystem.TypeId {
	return c.filterUnion(t, func(m typesystem.TypeId) bool {
		return m != c.in.Null() && m != c.in.Undefined()
	})
}

// excludeFalsy additionally drops the literal-false/zero/empty-string arms
// a bare `if (x)` truthy check rules out, beyond null/undefined.
func (c *Checker) excludeFalsy(t typesystem.TypeId) typesystem.TypeId {
	in := c.in
	return c.filterUnion(t, func(m typesystem.TypeId) bool {
		if m == in.Null() || m == in.Undefined() {
			return false
		}
		if in.Kind(m) == typesystem.KindLiteralBoolean && !in.BooleanLiteralValue(m) {
			return false
		}
		if in.Kind(m) == typesystem.KindLiteralString && in.StringLiteralValue(m) == "" {
			return false
		}
		if in.Kind(m) == typesystem.KindLiteralNumber && in.NumberLiteralValue(m) == 0 {
			return false
		}
		return true
	})
}

func (c *Checker) filterUnion(t typesystem.TypeId, keep func(typesystem.TypeId) bool) typesystem.TypeId {
	in := c.in
	if t == typesystem.NoType {
		return t
	}
	if in.Kind(t) != typesystem.KindUnion {
		if keep(t) {
			return t
		}
		return in.Never()
	}
	var kept []typesystem.TypeId
	for _, m := range in.UnionMembers(t) {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return in.Never()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return in.Union(kept)
}

// applyGuard binds name to t in the current narrowEnv layer, if the guard
// names a variable at all; it pushes no layer of its own.
func (c *Checker) applyGuard(g guard, t typesystem.TypeId) {
	if g.name == "" || t == typesystem.NoType {
		return
	}
	c.env.set(g.name, t)
}
