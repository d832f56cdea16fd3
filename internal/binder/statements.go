package binder

import "github.com/mohsen1/tsz-sub030/internal/ast"

func (b *binder) bindStatements(stmts []ast.NodeIndex) {
	for _, s := range stmts {
		b.bindStatement(s)
	}
}

func (b *binder) bindStatement(n ast.NodeIndex) {
	if n == ast.NONE {
		return
	}
	a := b.arena
	switch a.Kind(n) {
	case ast.KindExpressionStatement:
		b.bindExpr(a.ExprStmt(n).Expression)

	case ast.KindVariableDeclarationList:
		b.bindVarDeclList(n)

	case ast.KindBlock:
		inner := newScope(ScopeBlock, b.scope, n)
		b.withScope(inner, func() { b.bindStatements(a.Block(n).Statements) })

	case ast.KindIfStatement:
		b.bindIf(n)

	case ast.KindForStatement, ast.KindForInStatement, ast.KindForOfStatement:
		b.bindLoop(n, "")

	case ast.KindWhileStatement, ast.KindDoWhileStatement:
		b.bindWhileLike(n, "")

	case ast.KindReturnStatement, ast.KindThrowStatement:
		if arg := a.Return(n).Argument; arg != ast.NONE {
			b.bindExpr(arg)
		}
		b.current = b.flow.UnreachableFlow

	case ast.KindBreakStatement:
		b.bindBreak(n, "")

	case ast.KindContinueStatement:
		b.bindContinue(n, "")

	case ast.KindTryStatement:
		b.bindTry(n)

	case ast.KindSwitchStatement:
		b.bindSwitch(n, "")

	case ast.KindLabeledStatement:
		b.bindLabeled(n)

	case ast.KindFunctionDeclaration:
		b.bindFunctionDeclaration(n)

	case ast.KindClassDeclaration:
		b.bindClass(n)

	case ast.KindInterfaceDeclaration:
		i := a.Interface(n)
		b.declareHere(b.identText(i.Name), SymInterface, n, i.Modifiers)

	case ast.KindTypeAliasDeclaration:
		t := a.TypeAlias(n)
		b.declareHere(b.identText(t.Name), SymTypeAlias, n, t.Modifiers)

	case ast.KindEnumDeclaration:
		b.bindEnum(n)

	case ast.KindEmptyStatement, ast.KindDebuggerStatement:
		// No symbols, no flow effect.

	default:
		// Import declarations and any statement kind with no binder-visible
		// effect yet (module resolution is the checker's job, per spec).
	}
}

func (b *binder) declareHere(name string, flags SymbolFlags, decl ast.NodeIndex, mods ast.Modifiers) *Symbol {
	if name == "" {
		return nil
	}
	return b.scope.declare(b.diags, name, flags, decl, b.nodeToken(decl), mods.Has(ast.ModExport))
}

func (b *binder) withScope(s *Scope, body func()) {
	prev := b.scope
	b.scope = s
	b.state.Scopes[s.Node] = s
	body()
	b.scope = prev
}

func (b *binder) assign(n ast.NodeIndex) {
	b.current = b.flow.newNode(FlowAssignment, n, b.current)
}

func (b *binder) bindVarDeclList(n ast.NodeIndex) {
	a := b.arena
	list := a.VarDeclList(n)
	target := b.scope
	if list.Kind == ast.VarKindVar {
		target = b.scope.functionScope()
	}
	for _, d := range list.Declarations {
		decl := a.VarDecl(d)
		if decl.Initializer != ast.NONE {
			b.bindExpr(decl.Initializer)
		}
		target.declare(b.diags, b.identText(decl.Name), SymVariable, d, b.nodeToken(d), list.Modifiers.Has(ast.ModExport))
		b.assign(d)
	}
}

func (b *binder) bindIf(n ast.NodeIndex) {
	a := b.arena
	ifData := a.If(n)
	b.bindExpr(ifData.Condition)
	entry := b.current

	trueStart := b.flow.newNode(FlowTrueCondition, n, entry)
	b.current = trueStart
	b.bindStatement(ifData.Then)
	thenExit := b.current

	falseStart := b.flow.newNode(FlowFalseCondition, n, entry)
	elseExit := falseStart
	if ifData.Else != ast.NONE {
		b.current = falseStart
		b.bindStatement(ifData.Else)
		elseExit = b.current
	}

	b.current = b.flow.newNode(FlowBranchLabel, n, thenExit, elseExit)
}

// bindLoop handles classic for / for-in / for-of, whose LoopData shares
// Init/Condition/Update or Declared/Expr, plus Body.
func (b *binder) bindLoop(n ast.NodeIndex, label string) {
	a := b.arena
	loop := a.Loop(n)
	loopScope := newScope(ScopeForLoop, b.scope, n)
	prevScope := b.scope
	b.scope = loopScope
	b.state.Scopes[n] = loopScope

	if loop.Init != ast.NONE {
		b.bindStatement(loop.Init)
	}
	if loop.Declared != ast.NONE {
		b.bindStatement(loop.Declared)
	}
	if loop.Expr != ast.NONE {
		b.bindExpr(loop.Expr)
	}

	preHeader := b.current
	head := b.flow.newNode(FlowLoopLabel, n, preHeader)
	b.current = head

	if loop.Condition != ast.NONE {
		b.bindExpr(loop.Condition)
		b.current = b.flow.newNode(FlowTrueCondition, n, b.current)
	}

	frame := &flowFrame{label: label, continueTarget: head}
	b.frames = append(b.frames, frame)
	b.bindStatement(loop.Body)
	b.frames = b.frames[:len(b.frames)-1]

	if loop.Update != ast.NONE {
		b.bindExpr(loop.Update)
	}
	head.addAntecedent(b.current)

	joins := append([]*FlowNode{}, frame.breakJoins...)
	if loop.Condition != ast.NONE {
		joins = append(joins, b.flow.newNode(FlowFalseCondition, n, head))
	}
	b.current = b.flow.newNode(FlowBranchLabel, n, joins...)
	b.scope = prevScope
}

func (b *binder) bindWhileLike(n ast.NodeIndex, label string) {
	a := b.arena
	loop := a.Loop(n)
	isDoWhile := a.Kind(n) == ast.KindDoWhileStatement

	preHeader := b.current
	head := b.flow.newNode(FlowLoopLabel, n, preHeader)
	b.current = head

	frame := &flowFrame{label: label, continueTarget: head}
	b.frames = append(b.frames, frame)

	if isDoWhile {
		b.bindStatement(loop.Body)
		b.bindExpr(loop.Condition)
	} else {
		b.bindExpr(loop.Condition)
		b.current = b.flow.newNode(FlowTrueCondition, n, b.current)
		b.bindStatement(loop.Body)
	}
	b.frames = b.frames[:len(b.frames)-1]
	head.addAntecedent(b.current)

	joins := append([]*FlowNode{}, frame.breakJoins...)
	joins = append(joins, b.flow.newNode(FlowFalseCondition, n, head))
	b.current = b.flow.newNode(FlowBranchLabel, n, joins...)
}

func (b *binder) findFrame(label string) *flowFrame {
	for i := len(b.frames) - 1; i >= 0; i-- {
		if label == "" || b.frames[i].label == label {
			return b.frames[i]
		}
	}
	return nil
}

func (b *binder) bindBreak(n ast.NodeIndex, _ string) {
	label := b.labelOf(b.arena.BreakContinue(n).Label)
	if frame := b.findFrame(label); frame != nil {
		frame.breakJoins = append(frame.breakJoins, b.current)
	}
	b.current = b.flow.UnreachableFlow
}

func (b *binder) bindContinue(n ast.NodeIndex, _ string) {
	label := b.labelOf(b.arena.BreakContinue(n).Label)
	if frame := b.findFrame(label); frame != nil && frame.continueTarget != nil {
		frame.continueTarget.addAntecedent(b.current)
	}
	b.current = b.flow.UnreachableFlow
}

func (b *binder) labelOf(n ast.NodeIndex) string {
	if n == ast.NONE {
		return ""
	}
	return b.identText(n)
}

func (b *binder) bindLabeled(n ast.NodeIndex) {
	a := b.arena
	data := a.LabeledStatement(n)
	label := b.identText(data.Label)
	switch a.Kind(data.Statement) {
	case ast.KindForStatement, ast.KindForInStatement, ast.KindForOfStatement:
		b.bindLoop(data.Statement, label)
	case ast.KindWhileStatement, ast.KindDoWhileStatement:
		b.bindWhileLike(data.Statement, label)
	case ast.KindSwitchStatement:
		b.bindSwitch(data.Statement, label)
	default:
		frame := &flowFrame{label: label}
		b.frames = append(b.frames, frame)
		b.bindStatement(data.Statement)
		b.frames = b.frames[:len(b.frames)-1]
		if len(frame.breakJoins) > 0 {
			joins := append(frame.breakJoins, b.current)
			b.current = b.flow.newNode(FlowBranchLabel, n, joins...)
		}
	}
}

// bindTry implements the try/catch/finally join rule: assignments inside
// try must be visible after finally, so finally's antecedents are the
// normal-completion flows out of BOTH the try block and the catch clause.
func (b *binder) bindTry(n ast.NodeIndex) {
	a := b.arena
	data := a.Try(n)
	entry := b.current

	tryScope := newScope(ScopeBlock, b.scope, data.Block)
	b.withScope(tryScope, func() { b.bindStatement(data.Block) })
	tryExit := b.current

	catchExit := entry
	if data.Catch != ast.NONE {
		catch := a.CatchClause(data.Catch)
		catchScope := newScope(ScopeCatch, b.scope, data.Catch)
		b.current = entry
		b.withScope(catchScope, func() {
			if catch.Param != ast.NONE {
				b.declareHere(b.identText(catch.Param), SymVariable, catch.Param, 0)
			}
			b.bindStatement(catch.Body)
		})
		catchExit = b.current
	}

	postJoin := b.flow.newNode(FlowBranchLabel, n, tryExit, catchExit)
	if data.Finally != ast.NONE {
		b.current = postJoin
		finallyScope := newScope(ScopeBlock, b.scope, data.Finally)
		b.withScope(finallyScope, func() { b.bindStatement(data.Finally) })
	} else {
		b.current = postJoin
	}
}

func (b *binder) bindSwitch(n ast.NodeIndex, label string) {
	a := b.arena
	data := a.Switch(n)
	b.bindExpr(data.Discriminant)
	entry := b.current

	frame := &flowFrame{label: label}
	b.frames = append(b.frames, frame)

	switchScope := newScope(ScopeBlock, b.scope, n)
	prevScope := b.scope
	b.scope = switchScope
	b.state.Scopes[n] = switchScope

	hasDefault := false
	clauseExit := entry
	for _, clause := range data.Clauses {
		cc := a.CaseClause(clause)
		if cc.Test == ast.NONE {
			hasDefault = true
		} else {
			b.bindExpr(cc.Test)
		}
		b.current = b.flow.newNode(FlowSwitchClause, clause, entry)
		b.bindStatements(cc.Statements)
		clauseExit = b.current
	}

	b.scope = prevScope
	b.frames = b.frames[:len(b.frames)-1]

	joins := append([]*FlowNode{}, frame.breakJoins...)
	if !hasDefault {
		joins = append(joins, entry)
	}
	joins = append(joins, clauseExit)
	b.current = b.flow.newNode(FlowBranchLabel, n, joins...)
}
