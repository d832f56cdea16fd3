package binder

import "github.com/mohsen1/tsz-sub030/internal/ast"

func (b *binder) bindFunctionDeclaration(n ast.NodeIndex) {
	a := b.arena
	f := a.Function(n)
	b.declareHere(b.identText(f.Name), SymFunction, n, f.Modifiers)
	b.bindFunctionLike(n, f.Parameters, f.Body)
}

// bindFunctionLike binds a function-like body in its own scope AND its own
// flow graph (flow does not cross function boundaries: narrowing from the
// enclosing scope is not carried into a callee's body, nor vice versa).
func (b *binder) bindFunctionLike(container ast.NodeIndex, params []ast.NodeIndex, body ast.NodeIndex) {
	prevScope, prevFlow, prevCurrent, prevContainer, prevFrames := b.scope, b.flow, b.current, b.container, b.frames

	fnScope := newScope(ScopeFunction, prevScope, container)
	b.scope = fnScope
	b.flow = NewFlowGraph()
	b.current = b.flow.Start
	b.container = container
	b.frames = nil
	b.state.Flows[container] = b.flow
	b.state.Scopes[container] = fnScope

	for _, p := range params {
		pd := b.arena.Parameter(p)
		if pd.Name != ast.NONE {
			b.declareHere(b.identText(pd.Name), SymParameter, p, 0)
		}
		if pd.Initializer != ast.NONE {
			b.bindExpr(pd.Initializer)
		}
	}

	if body != ast.NONE {
		if b.arena.Kind(body) == ast.KindBlock {
			b.bindStatements(b.arena.Block(body).Statements)
		} else {
			// Concise arrow body: a bare expression standing in for the
			// function's return value.
			b.bindExpr(body)
		}
	}

	b.scope, b.flow, b.current, b.container, b.frames = prevScope, prevFlow, prevCurrent, prevContainer, prevFrames
}

func (b *binder) bindClass(n ast.NodeIndex) {
	a := b.arena
	c := a.Class(n)
	b.declareHere(b.identText(c.Name), SymClass, n, c.Modifiers)

	if c.Extends != ast.NONE {
		b.bindExpr(c.Extends)
	}

	classScope := newScope(ScopeClass, b.scope, n)
	b.withScope(classScope, func() {
		for _, m := range c.Members {
			b.bindClassMember(m)
		}
	})
}

func (b *binder) bindClassMember(n ast.NodeIndex) {
	a := b.arena
	switch a.Kind(n) {
	case ast.KindPropertyDeclaration:
		p := a.Property(n)
		if p.Initializer != ast.NONE {
			b.bindExpr(p.Initializer)
		}
		if !p.Computed {
			b.declareHere(b.identText(p.Name), SymProperty, n, p.Modifiers)
		}
	case ast.KindMethodDeclaration, ast.KindGetAccessor, ast.KindSetAccessor, ast.KindConstructorDeclaration:
		f := a.Function(n)
		if f.Name != ast.NONE {
			b.declareHere(b.identText(f.Name), SymFunction, n, f.Modifiers)
		}
		b.bindFunctionLike(n, f.Parameters, f.Body)
	}
}

func (b *binder) bindEnum(n ast.NodeIndex) {
	a := b.arena
	e := a.Enum(n)
	b.declareHere(b.identText(e.Name), SymEnum, n, e.Modifiers)

	memberScope := newScope(ScopeBlock, b.scope, n)
	b.withScope(memberScope, func() {
		for _, m := range e.Members {
			mem := a.EnumMember(m)
			if mem.Initializer != ast.NONE {
				b.bindExpr(mem.Initializer)
			}
			b.declareHere(b.identText(mem.Name), SymEnumMember, m, 0)
		}
	})
}
