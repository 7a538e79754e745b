// Package dag decides whether a directed graph is acyclic.
//
// The package is the functional core of pipecheck: it consumes a node-ID set
// and an edge list (however the surrounding transport obtained them) and
// returns a boolean verdict. It performs no I/O, holds no state between
// calls, and never fails - malformed input is a concern of the parsing layer.
//
// # Semantics
//
// Edges whose source is not a known node are excluded when the adjacency
// structure is built. Edges whose target is not a known node are walked and
// discarded as dead ends. Neither kind ever produces a cyclic verdict on its
// own. Duplicate edges and duplicate node IDs are tolerated: multiplicity
// does not change the verdict, and repeated IDs collapse to a single node.
//
// # Algorithm
//
// Cycle detection is a three-state (white/gray/black) depth-first traversal.
// Seeing a gray node during descent means the active path loops back on
// itself, so the traversal aborts immediately with a cyclic verdict. The
// traversal uses an explicit frame stack rather than recursion: the longest
// simple path in the input bounds the stack, and input depth is
// caller-controlled, so recursion depth must not be.
//
// # Usage
//
//	ok := dag.Validate([]string{"a", "b"}, []dag.Edge{{Source: "a", Target: "b"}})
//	// ok == true
package dag
