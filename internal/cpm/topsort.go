package cpm

import "fmt"

// ErrCycle is returned by TopologicalOrder when the graph is not a DAG.
// Cycles holds every elementary cycle's task ids, per spec.md section
// 4.6.5's "report each elementary cycle".
type ErrCycle struct {
	Cycles [][]string
}

func (e *ErrCycle) Error() string {
	return fmt.Sprintf("graph contains %d cycle(s), refusing to schedule", len(e.Cycles))
}

// TopologicalOrder runs Kahn's algorithm over the graph. The default
// behavior on a cycle is to refuse to schedule and report every
// elementary cycle found, rather than auto-breaking an edge (spec.md
// section 4.6.5).
func (g *Graph) TopologicalOrder() ([]*Node, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		inDegree[n.TaskID] = len(n.Predecessors)
	}

	var queue []*Node
	for _, n := range g.Nodes {
		if inDegree[n.TaskID] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]*Node, 0, len(g.Nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, e := range n.Successors {
			inDegree[e.To.TaskID]--
			if inDegree[e.To.TaskID] == 0 {
				queue = append(queue, e.To)
			}
		}
	}

	if len(order) == len(g.Nodes) {
		return order, nil
	}

	remaining := map[string]*Node{}
	for _, n := range g.Nodes {
		if inDegree[n.TaskID] > 0 {
			remaining[n.TaskID] = n
		}
	}
	return order, &ErrCycle{Cycles: findElementaryCycles(remaining)}
}

// findElementaryCycles runs a DFS with a recursion-stack color map over
// the subgraph of nodes that Kahn's algorithm could not resolve, peeling
// off one cycle per discovered back-edge.
func findElementaryCycles(remaining map[string]*Node) [][]string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(remaining))
	var stack []string
	var cycles [][]string

	var visit func(n *Node)
	visit = func(n *Node) {
		color[n.TaskID] = gray
		stack = append(stack, n.TaskID)
		for _, e := range n.Successors {
			succ, ok := remaining[e.To.TaskID]
			if !ok {
				continue
			}
			switch color[succ.TaskID] {
			case white:
				visit(succ)
			case gray:
				cycles = append(cycles, extractCycle(stack, succ.TaskID))
			}
		}
		stack = stack[:len(stack)-1]
		color[n.TaskID] = black
	}

	for _, n := range remaining {
		if color[n.TaskID] == white {
			visit(n)
		}
	}
	return cycles
}

func extractCycle(stack []string, start string) []string {
	for i, id := range stack {
		if id == start {
			cycle := append([]string(nil), stack[i:]...)
			return append(cycle, start)
		}
	}
	return append([]string(nil), start)
}
