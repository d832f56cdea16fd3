package binder

import "github.com/mohsen1/tsz-sub030/internal/ast"

var assignOperators = map[ast.BinaryOperator]bool{
	ast.OpAssign:    true,
	ast.OpAddAssign: true,
	ast.OpSubAssign: true,
	ast.OpMulAssign: true,
	ast.OpDivAssign: true,
	ast.OpModAssign: true,
}

// bindExpr walks an expression left-to-right (matching JS evaluation
// order), inserting flow nodes at the program points spec.md calls out:
// assignments, calls, and await/yield suspension points. It never declares
// symbols — only statement-level binders do that.
func (b *binder) bindExpr(n ast.NodeIndex) {
	if n == ast.NONE {
		return
	}
	a := b.arena
	switch a.Kind(n) {
	case ast.KindBinaryExpression:
		bin := a.Binary(n)
		b.bindExpr(bin.Left)
		b.bindExpr(bin.Right)
		if assignOperators[bin.Operator] {
			b.current = b.flow.newNode(FlowAssignment, n, b.current)
		}

	case ast.KindLogicalExpression:
		lg := a.Logical(n)
		b.bindExpr(lg.Left)
		b.bindExpr(lg.Right)

	case ast.KindConditionalExpression:
		c := a.ConditionalExpr(n)
		b.bindExpr(c.Condition)
		entry := b.current
		b.current = b.flow.newNode(FlowTrueCondition, n, entry)
		b.bindExpr(c.WhenTrue)
		trueExit := b.current
		b.current = b.flow.newNode(FlowFalseCondition, n, entry)
		b.bindExpr(c.WhenFalse)
		b.current = b.flow.newNode(FlowBranchLabel, n, trueExit, b.current)

	case ast.KindUnaryExpression:
		b.bindExpr(a.Unary(n).Operand)

	case ast.KindUpdateExpression:
		b.bindExpr(a.Unary(n).Operand)
		b.current = b.flow.newNode(FlowAssignment, n, b.current)

	case ast.KindAwaitExpression:
		b.bindExpr(a.Unary(n).Operand)
		b.current = b.flow.newNode(FlowAwaitPoint, n, b.current)

	case ast.KindYieldExpression:
		if operand := a.Unary(n).Operand; operand != ast.NONE {
			b.bindExpr(operand)
		}
		b.current = b.flow.newNode(FlowYieldPoint, n, b.current)

	case ast.KindCallExpression, ast.KindNewExpression:
		call := a.Call(n)
		b.bindExpr(call.Callee)
		for _, arg := range call.Arguments {
			b.bindExpr(arg)
		}
		if a.Kind(n) == ast.KindCallExpression {
			b.current = b.flow.newNode(FlowCall, n, b.current)
			if isMutatingArrayCall(a, call.Callee) {
				b.current = b.flow.newNode(FlowArrayMutation, n, b.current)
			}
		}

	case ast.KindMemberExpression:
		m := a.Member(n)
		b.bindExpr(m.Object)
		if m.Computed {
			b.bindExpr(m.Property)
		}

	case ast.KindAsExpression, ast.KindSatisfiesExpression:
		b.bindExpr(a.AsExpression(n).Expression)

	case ast.KindArrayLiteralExpression:
		for _, e := range a.ArrayLiteral(n).Elements {
			b.bindExpr(e)
		}

	case ast.KindObjectLiteralExpression:
		for _, p := range a.ObjectLiteral(n).Properties {
			b.bindPropertyAssign(p)
		}

	case ast.KindTemplateLiteral:
		for _, e := range a.TemplateLiteral(n).Exprs {
			b.bindExpr(e)
		}

	case ast.KindArrowFunction:
		af := a.ArrowFunction(n)
		b.bindFunctionLike(n, af.Parameters, af.Body)

	case ast.KindFunctionExpression:
		f := a.Function(n)
		b.bindFunctionLike(n, f.Parameters, f.Body)

	case ast.KindIdentifier, ast.KindNumericLiteral, ast.KindStringLiteral, ast.KindBigIntLiteral,
		ast.KindBooleanLiteral, ast.KindNullLiteral, ast.KindUndefinedLiteral,
		ast.KindRegularExpressionLiteral, ast.KindThisExpression, ast.KindSuperExpression:
		// Leaves: no sub-expressions, no flow effect.
	}
}

func (b *binder) bindPropertyAssign(n ast.NodeIndex) {
	a := b.arena
	switch a.Kind(n) {
	case ast.KindPropertyAssignment:
		pa := a.PropertyAssign(n)
		if pa.Computed {
			b.bindExpr(pa.Name)
		}
		b.bindExpr(pa.Value)
	case ast.KindShorthandPropertyAssignment:
		// The identifier use is its own reference; no narrowing effect.
	}
}

// isMutatingArrayCall reports whether callee looks like `x.push`/`x.pop`/
// etc — a property access whose name is one of the mutating Array.prototype
// methods. This is a syntactic heuristic; the checker resolves the actual
// receiver type and may override it once it does.
func isMutatingArrayCall(a *ast.Arena, callee ast.NodeIndex) bool {
	if a.Kind(callee) != ast.KindMemberExpression {
		return false
	}
	m := a.Member(callee)
	if m.Computed {
		return false
	}
	switch a.Identifier(m.Property).Text {
	case "push", "pop", "shift", "unshift", "splice", "sort", "reverse", "fill", "copyWithin":
		return true
	default:
		return false
	}
}
