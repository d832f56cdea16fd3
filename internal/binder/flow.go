package binder

import "github.com/mohsen1/tsz-sub030/internal/ast"

// FlowKind discriminates the program points a FlowNode represents.
type FlowKind int

const (
	FlowStart FlowKind = iota
	FlowBranchLabel
	FlowLoopLabel
	FlowAssignment
	FlowTrueCondition
	FlowFalseCondition
	FlowSwitchClause
	FlowCall
	FlowArrayMutation
	FlowAwaitPoint
	FlowYieldPoint
	FlowUnreachable
)

// FlowNode is one node of the flow graph DAG: a kind, 0..n antecedents, and
// an optional reference back to the AST node that produced it.
type FlowNode struct {
	Kind        FlowKind
	Antecedents []*FlowNode
	Node        ast.NodeIndex
}

// FlowGraph owns every FlowNode built while binding one container (source
// file or function body). UnreachableFlow is the pool-wide sentinel spec.md
// requires: it has no antecedents and every statement after an
// unconditional jump points its antecedent there instead of chaining
// indefinitely.
type FlowGraph struct {
	Start           *FlowNode
	UnreachableFlow *FlowNode
	nodes           []*FlowNode
}

// NewFlowGraph creates a fresh graph with its Start and UnreachableFlow
// sentinel nodes, one per bound container (spec.md's flow graph is scoped
// per function/source-file, not shared across the whole program).
func NewFlowGraph() *FlowGraph {
	g := &FlowGraph{}
	g.Start = g.newNode(FlowStart, ast.NONE)
	g.UnreachableFlow = &FlowNode{Kind: FlowUnreachable}
	return g
}

// Nodes returns every FlowNode created in this graph, in creation order.
// The checker walks this to narrow types at each program point; tests use
// it to assert a particular kind of node got inserted.
func (g *FlowGraph) Nodes() []*FlowNode { return g.nodes }

func (g *FlowGraph) newNode(kind FlowKind, node ast.NodeIndex, antecedents ...*FlowNode) *FlowNode {
	n := &FlowNode{Kind: kind, Node: node, Antecedents: antecedents}
	g.nodes = append(g.nodes, n)
	return n
}

// addAntecedent appends an extra incoming edge to an already-created node,
// used for loop back-edges (`continue`) and break-target joins.
func (n *FlowNode) addAntecedent(from *FlowNode) {
	n.Antecedents = append(n.Antecedents, from)
}

// IsReachable reports whether n has some antecedent chain back to Start
// that never passes through UnreachableFlow or a childless Unreachable
// node — spec.md's reachability invariant.
func (g *FlowGraph) IsReachable(n *FlowNode) bool {
	if n == nil {
		return false
	}
	visited := make(map[*FlowNode]bool)
	return g.reachableFrom(n, visited)
}

func (g *FlowGraph) reachableFrom(n *FlowNode, visited map[*FlowNode]bool) bool {
	if n == g.Start {
		return true
	}
	if n.Kind == FlowUnreachable {
		return false
	}
	if visited[n] {
		return false
	}
	visited[n] = true
	for _, a := range n.Antecedents {
		if g.reachableFrom(a, visited) {
			return true
		}
	}
	return false
}
