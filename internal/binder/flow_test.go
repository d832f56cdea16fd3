package binder_test

import (
	"testing"

	"github.com/mohsen1/tsz-sub030/internal/ast"
	"github.com/mohsen1/tsz-sub030/internal/binder"
)

// functionFlow returns the FlowGraph of the sole function-like container in
// src (the source file's top-level flow is excluded).
func functionFlow(t *testing.T, state *binder.State, file ast.NodeIndex) *binder.FlowGraph {
	t.Helper()
	for node, g := range state.Flows {
		if node != file {
			return g
		}
	}
	t.Fatalf("no function-level flow graph found")
	return nil
}

// flowNodesOfKind returns g's nodes of the given kind in creation order.
func flowNodesOfKind(g *binder.FlowGraph, kind binder.FlowKind) []*binder.FlowNode {
	var out []*binder.FlowNode
	for _, node := range g.Nodes() {
		if node.Kind == kind {
			out = append(out, node)
		}
	}
	return out
}

func TestUnreachableCodeAfterReturn(t *testing.T) {
	_, state, diags := bind(t, `
		function f() {
			return;
			let x = 1;
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	if g.IsReachable(g.UnreachableFlow) {
		t.Fatalf("the unreachable sentinel must never itself be reachable")
	}
	assigns := flowNodesOfKind(g, binder.FlowAssignment)
	if len(assigns) == 0 || g.IsReachable(assigns[len(assigns)-1]) {
		t.Fatalf("the declaration after return must be unreachable")
	}
}

func TestIfBranchesJoinAfterStatement(t *testing.T) {
	_, state, diags := bind(t, `
		function f(cond: boolean) {
			let x = 0;
			if (cond) {
				x = 1;
			} else {
				x = 2;
			}
			let y = x;
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	if !g.IsReachable(g.Start) {
		t.Fatalf("Start must be reachable from itself")
	}
	joins := flowNodesOfKind(g, binder.FlowBranchLabel)
	if len(joins) != 1 || len(joins[0].Antecedents) != 2 || !g.IsReachable(joins[0]) {
		t.Fatalf("expected one reachable two-way join after the if statement, got %+v", joins)
	}
}

func TestReturnInBothBranchesMakesJoinUnreachable(t *testing.T) {
	_, state, diags := bind(t, `
		function f(cond: boolean) {
			if (cond) {
				return 1;
			} else {
				return 2;
			}
			let dead = 1;
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	// Both arms end by jumping to the shared UnreachableFlow sentinel, so the
	// statement after the if has no live antecedent chain back to Start.
	if g.IsReachable(g.UnreachableFlow) {
		t.Fatalf("sentinel itself must stay unreachable regardless of how many branches funnel into it")
	}
	joins := flowNodesOfKind(g, binder.FlowBranchLabel)
	if len(joins) != 1 || g.IsReachable(joins[0]) {
		t.Fatalf("expected the join after the if statement to be unreachable, got %+v", joins)
	}
}

func TestLoopBackEdgeReachesHeader(t *testing.T) {
	_, state, diags := bind(t, `
		function f() {
			for (let i = 0; i < 10; i = i + 1) {
				let x = i;
			}
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	heads := flowNodesOfKind(g, binder.FlowLoopLabel)
	if len(heads) != 1 || len(heads[0].Antecedents) != 2 || !g.IsReachable(heads[0].Antecedents[1]) {
		t.Fatalf("expected the loop header to have a reachable back edge from the body, got %+v", heads)
	}
}

func TestTryFinallySeesBothTryAndCatchExits(t *testing.T) {
	_, state, diags := bind(t, `
		function f() {
			let x = 0;
			try {
				x = 1;
			} catch (e) {
				x = 2;
			} finally {
				let y = x;
			}
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	if !g.IsReachable(g.Start) {
		t.Fatalf("Start must be reachable from itself")
	}
	joins := flowNodesOfKind(g, binder.FlowBranchLabel)
	if len(joins) != 1 || len(joins[0].Antecedents) != 2 ||
		joins[0].Antecedents[0].Kind != binder.FlowAssignment || joins[0].Antecedents[1].Kind != binder.FlowAssignment {
		t.Fatalf("expected the finally block's join to follow the try and catch assignments, got %+v", joins)
	}
}

func TestAwaitInsertsSuspensionPoint(t *testing.T) {
	a, state, diags := bind(t, `
		async function f() {
			await g();
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	found := false
	for _, node := range g.Nodes() {
		if node.Kind == binder.FlowAwaitPoint {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an await suspension point in the function's flow graph")
	}
	_ = a
}

func TestYieldInsertsSuspensionPoint(t *testing.T) {
	_, state, diags := bind(t, `
		function* f() {
			yield 1;
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	found := false
	for _, node := range g.Nodes() {
		if node.Kind == binder.FlowYieldPoint {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a yield suspension point in the function's flow graph")
	}
}

func TestBreakJoinsLoopExit(t *testing.T) {
	_, state, diags := bind(t, `
		function f() {
			while (true) {
				break;
			}
			let after = 1;
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	if !g.IsReachable(g.Start) {
		t.Fatalf("Start must be reachable from itself")
	}
	joins := flowNodesOfKind(g, binder.FlowBranchLabel)
	if len(joins) != 1 || len(joins[0].Antecedents) != 2 ||
		joins[0].Antecedents[0].Kind != binder.FlowTrueCondition || !g.IsReachable(joins[0]) {
		t.Fatalf("expected the loop exit to join the break edge, got %+v", joins)
	}
}

func TestMutatingArrayCallInsertsArrayMutationNode(t *testing.T) {
	_, state, diags := bind(t, `
		function f(xs: number[]) {
			xs.push(1);
		}
	`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	g := functionFlow(t, state, state.Global.Node)
	found := false
	for _, node := range g.Nodes() {
		if node.Kind == binder.FlowArrayMutation {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a FlowArrayMutation node for xs.push(1)")
	}
}
