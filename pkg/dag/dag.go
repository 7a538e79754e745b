package dag

import (
	"maps"
	"slices"
)

// Edge is an ordered (source, target) identifier pair. Both endpoints are
// opaque strings; no other attribute participates in cycle detection.
type Edge struct {
	Source string
	Target string
}

// Graph is an adjacency view over a node-ID set, restricted to edges whose
// source is a known node. Build it once per validation call - a Graph is
// cheap, immutable after construction, and safe for concurrent reads.
type Graph struct {
	order []string            // known node IDs, sorted for deterministic traversal
	adj   map[string][]string // source ID -> targets in input order
}

// Build constructs a Graph from a node-ID set and an edge list.
//
// Duplicate node IDs collapse to one node. Edges with an unknown source are
// dropped here; edges with an unknown target stay in the adjacency list and
// are skipped during traversal. Both forms of input are equivalent in effect.
func Build(nodeIDs []string, edges []Edge) *Graph {
	known := make(map[string]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		known[id] = struct{}{}
	}

	adj := make(map[string][]string, len(known))
	for _, e := range edges {
		if _, ok := known[e.Source]; ok {
			adj[e.Source] = append(adj[e.Source], e.Target)
		}
	}

	return &Graph{
		order: slices.Sorted(maps.Keys(known)),
		adj:   adj,
	}
}

// NodeCount returns the number of distinct known nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// Children returns the targets of the node's outgoing edges, in input order.
// The slice may contain IDs outside the node set; callers that care must
// filter. Returns nil for unknown or childless nodes.
func (g *Graph) Children(id string) []string { return g.adj[id] }

// Acyclic reports whether the graph contains no directed cycle.
//
// The empty graph is vacuously acyclic. Traversal state is local to the
// call, so concurrent invocations need no coordination. Runs in O(V+E) time
// with O(V) auxiliary space.
func (g *Graph) Acyclic() bool {
	const (
		white = iota // unvisited
		gray         // in-progress: on the active descent path
		black        // done: fully explored, no cycle reachable
	)

	color := make(map[string]int, len(g.order))
	for _, id := range g.order {
		color[id] = white
	}

	// frame is one level of the explicit DFS stack: a node plus the index
	// of its next unexamined child.
	type frame struct {
		id   string
		next int
	}

	for _, root := range g.order {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.adj[top.id]

			descended := false
			for top.next < len(children) {
				child := children[top.next]
				top.next++

				c, known := color[child]
				if !known {
					continue // edge into a node outside the set: dead end
				}
				switch c {
				case gray:
					// Back-edge onto the active path.
					return false
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
					descended = true
				}
				if descended {
					break
				}
			}

			if !descended {
				color[top.id] = black
				stack = stack[:len(stack)-1]
			}
		}
	}

	return true
}

// Validate reports whether the directed graph induced by nodeIDs and edges
// is acyclic. It is a pure function of its inputs and never fails; see Build
// for how edges with unknown endpoints are treated.
func Validate(nodeIDs []string, edges []Edge) bool {
	return Build(nodeIDs, edges).Acyclic()
}
