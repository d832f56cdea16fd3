package checker

import (
	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/internal/typesystem"
)

func (c *Checker) checkStatements(stmts []ast.NodeIndex) {
	for _, s := range stmts {
		c.checkStatement(s)
	}
}

func (c *Checker) checkStatement(n ast.NodeIndex) {
	if n == ast.NONE {
		return
	}
	a := c.file.Arena
	switch a.Kind(n) {
	case ast.KindVariableDeclarationList:
		c.checkVarDeclList(a.VarDeclList(n))
	case ast.KindExpressionStatement:
		c.inferExpr(a.ExprStmt(n).Expression, typesystem.NoType)
	case ast.KindIfStatement:
		c.checkIf(a.If(n))
	case ast.KindBlock:
		c.env = newNarrowEnv(c.env)
		c.checkStatements(a.Block(n).Statements)
		c.env = c.env.parent
	case ast.KindReturnStatement:
		r := a.Return(n)
		if r.Argument != ast.NONE {
			t := c.inferExpr(r.Argument, c.currentReturnType)
			if c.inFunctionBody && c.currentReturnType != typesystem.NoType {
				c.checkAssignableTo(r.Argument, t, c.currentReturnType)
			}
		}
	case ast.KindThrowStatement:
		r := a.Return(n)
		if r.Argument != ast.NONE {
			c.inferExpr(r.Argument, typesystem.NoType)
		}
	case ast.KindFunctionDeclaration:
		c.checkFunctionDeclaration(n, a.Function(n))
	case ast.KindClassDeclaration:
		c.checkClassDeclaration(n)
	case ast.KindInterfaceDeclaration, ast.KindTypeAliasDeclaration, ast.KindEnumDeclaration:
		// Declarations contribute their shape through symbolTypeReference
		// on demand; nothing to check at the statement itself beyond what
		// resolving their members already validates.
	case ast.KindForStatement:
		c.checkFor(a.Loop(n))
	case ast.KindForInStatement, ast.KindForOfStatement:
		c.checkForInOf(a.Loop(n))
	case ast.KindWhileStatement, ast.KindDoWhileStatement:
		loop := a.Loop(n)
		if loop.Condition != ast.NONE {
			c.inferExpr(loop.Condition, typesystem.NoType)
		}
		c.checkStatement(loop.Body)
	case ast.KindTryStatement:
		c.checkTry(a.Try(n))
	case ast.KindSwitchStatement:
		c.checkSwitch(a.Switch(n))
	case ast.KindLabeledStatement:
		c.checkStatement(a.LabeledStatement(n).Statement)
	default:
		// Empty/debugger/break/continue statements carry nothing to check.
	}
}

func (c *Checker) checkVarDeclList(list ast.VarDeclListData) {
	a := c.file.Arena
	for _, d := range list.Declarations {
		vd := a.VarDecl(d)
		if vd.Name == ast.NONE || a.Kind(vd.Name) != ast.KindIdentifier {
			continue
		}
		name := a.Identifier(vd.Name).Text

		if vd.Initializer == ast.NONE {
			continue
		}
		var declared typesystem.TypeId
		if vd.Type != ast.NONE {
			declared = c.resolveType(vd.Type)
		}
		initType := c.inferInitializerType(vd.Initializer)
		if declared != typesystem.NoType {
			c.checkAssignableTo(vd.Initializer, initType, declared)
			c.env.set(name, declared)
		} else {
			c.env.set(name, initType)
		}
	}
}

// checkAssignableTo reports TS2322 when got isn't assignable to want,
// treating a fresh object/array literal source the way excess-property
// checking requires (see solver.AssignabilityOptions.SourceIsFreshObjectLiteral).
func (c *Checker) checkAssignableTo(source ast.NodeIndex, got, want typesystem.TypeId) {
	if want == typesystem.NoType || got == typesystem.NoType {
		return
	}
	fresh := c.isFreshLiteral(source)
	if !c.isAssignable(got, want, fresh) {
		c.addError(source, diagnostics.ErrTypeNotAssignable, "Type '%s' is not assignable to type '%s'.", c.FormatType(got), c.FormatType(want))
	}
}

// checkArgumentAssignable is checkAssignableTo's TS2345 counterpart for
// call/new argument positions.
func (c *Checker) checkArgumentAssignable(arg ast.NodeIndex, got, want typesystem.TypeId) {
	if want == typesystem.NoType || got == typesystem.NoType {
		return
	}
	fresh := c.isFreshLiteral(arg)
	if !c.isAssignable(got, want, fresh) {
		c.addError(arg, diagnostics.ErrArgumentNotAssignable, "Argument of type '%s' is not assignable to parameter of type '%s'.", c.FormatType(got), c.FormatType(want))
	}
}

func (c *Checker) isFreshLiteral(n ast.NodeIndex) bool {
	return c.file.Arena.Kind(n) == ast.KindObjectLiteralExpression
}

// checkIf applies narrowCondition/applyGuard around each branch — the
// mechanism spec.md's narrowing scenario relies on — then restores the
// unnarrowed environment afterward (a narrow established inside one branch
// doesn't leak past the statement, absent an early return/throw that would
// make it provably exhaustive, which this checker doesn't attempt to
// detect).
func (c *Checker) checkIf(data ast.IfData) {
	g := c.narrowCondition(data.Condition)
	c.inferExpr(data.Condition, typesystem.NoType)

	c.env = newNarrowEnv(c.env)
	if g.applies {
		c.applyGuard(g, g.trueBranchType)
	}
	c.checkStatement(data.Then)
	c.env = c.env.parent

	if data.Else != ast.NONE {
		c.env = newNarrowEnv(c.env)
		if g.applies {
			c.applyGuard(g, g.falseBranchType)
		}
		c.checkStatement(data.Else)
		c.env = c.env.parent
	}
}

func (c *Checker) checkFor(data ast.LoopData) {
	c.env = newNarrowEnv(c.env)
	if data.Init != ast.NONE {
		c.checkStatement(data.Init)
	}
	if data.Condition != ast.NONE {
		c.inferExpr(data.Condition, typesystem.NoType)
	}
	if data.Update != ast.NONE {
		c.inferExpr(data.Update, typesystem.NoType)
	}
	c.checkStatement(data.Body)
	c.env = c.env.parent
}

func (c *Checker) checkForInOf(data ast.LoopData) {
	a := c.file.Arena
	c.env = newNarrowEnv(c.env)
	iterType := typesystem.NoType
	if data.Expr != ast.NONE {
		iterType = c.inferExpr(data.Expr, typesystem.NoType)
	}
	if data.Declared != ast.NONE && a.Kind(data.Declared) == ast.KindVariableDeclarationList {
		list := a.VarDeclList(data.Declared)
		for _, d := range list.Declarations {
			vd := a.VarDecl(d)
			if vd.Name == ast.NONE || a.Kind(vd.Name) != ast.KindIdentifier {
				continue
			}
			name := a.Identifier(vd.Name).Text
			elemType := c.in.String()
			if iterType != typesystem.NoType && c.in.Kind(iterType) == typesystem.KindArray {
				elemType = c.in.ArrayElement(iterType)
			}
			c.env.set(name, elemType)
		}
	}
	c.checkStatement(data.Body)
	c.env = c.env.parent
}

func (c *Checker) checkTry(data ast.TryData) {
	c.checkStatement(data.Block)
	if data.Catch != ast.NONE {
		cc := c.file.Arena.CatchClause(data.Catch)
		c.env = newNarrowEnv(c.env)
		if cc.Param != ast.NONE && c.file.Arena.Kind(cc.Param) == ast.KindIdentifier {
			c.env.set(c.file.Arena.Identifier(cc.Param).Text, c.in.Any())
		}
		c.checkStatement(cc.Body)
		c.env = c.env.parent
	}
	if data.Finally != ast.NONE {
		c.checkStatement(data.Finally)
	}
}

func (c *Checker) checkSwitch(data ast.SwitchData) {
	c.inferExpr(data.Discriminant, typesystem.NoType)
	a := c.file.Arena
	for _, cl := range data.Clauses {
		cc := a.CaseClause(cl)
		if cc.Test != ast.NONE {
			c.inferExpr(cc.Test, typesystem.NoType)
		}
		c.env = newNarrowEnv(c.env)
		c.checkStatements(cc.Statements)
		c.env = c.env.parent
	}
}

func (c *Checker) checkFunctionDeclaration(n ast.NodeIndex, fn ast.FunctionData) {
	if fn.Body == ast.NONE {
		return
	}
	c.env = newNarrowEnv(c.env)
	for _, p := range fn.Parameters {
		pd := c.file.Arena.Parameter(p)
		if pd.Name != ast.NONE && c.file.Arena.Kind(pd.Name) == ast.KindIdentifier {
			c.env.set(c.file.Arena.Identifier(pd.Name).Text, c.resolveParam(p).Type)
		}
	}
	prevReturn, prevInBody := c.currentReturnType, c.inFunctionBody
	c.inFunctionBody = true
	if fn.ReturnType != ast.NONE {
		c.currentReturnType = c.resolveType(fn.ReturnType)
	} else {
		c.currentReturnType = typesystem.NoType
	}
	c.checkStatement(fn.Body)
	c.currentReturnType, c.inFunctionBody = prevReturn, prevInBody
	c.env = c.env.parent
	_ = n
}

// checkClassDeclaration checks each method body and validates that every
// strict-mode, non-optional property without an initializer gets one
// (TS2564) — strictPropertyInitialization's one rule this checker
// implements.
func (c *Checker) checkClassDeclaration(n ast.NodeIndex) {
	a := c.file.Arena
	class := a.Class(n)
	for _, m := range class.Members {
		switch a.Kind(m) {
		case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor, ast.KindConstructorDeclaration:
			c.checkFunctionDeclaration(m, a.Function(m))
		case ast.KindPropertyDeclaration:
			p := a.Property(m)
			if p.Initializer != ast.NONE {
				t := c.inferExpr(p.Initializer, typesystem.NoType)
				if p.Type != ast.NONE {
					c.checkAssignableTo(p.Initializer, t, c.resolveType(p.Type))
				}
				continue
			}
			if c.opts.StrictPropertyInitialization && p.Type != ast.NONE && !p.Optional &&
				!p.Modifiers.Has(ast.ModAbstract) && !p.Modifiers.Has(ast.ModDeclare) {
				declared := c.resolveType(p.Type)
				if !c.includesUndefined(declared) {
					c.addError(m, diagnostics.ErrPropertyHasNoInitializer,
						"Property has no initializer and is not definitely assigned in the constructor.")
				}
			}
		}
	}
}

func (c *Checker) includesUndefined(t typesystem.TypeId) bool {
	in := c.in
	if t == in.Undefined() || t == in.Any() {
		return true
	}
	if in.Kind(t) == typesystem.KindUnion {
		for _, m := range in.UnionMembers(t) {
			if m == in.Undefined() {
				return true
			}
		}
	}
	return false
}
