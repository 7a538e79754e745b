// Package pipeline defines the wire model for pipeline graphs and the
// summary computed over them.
//
// The types mirror the payload a visual pipeline editor submits: nodes carry
// an identifier plus arbitrary editor metadata (position, type, payload
// data), edges carry source/target identifiers plus handle metadata. Only
// the identifiers participate in validation - everything else is decoded and
// carried through untouched.
package pipeline

import (
	"encoding/json"

	"github.com/pipecheck/pipecheck/pkg/dag"
)

// Node is a single vertex in a submitted pipeline. ID is the only field the
// validator reads; the rest is editor metadata passed through unmodified.
type Node struct {
	ID       string          `json:"id"`
	Type     string          `json:"type,omitempty"`
	Position *Position       `json:"position,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Position is a node's canvas placement in the editor.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a directed connection between two nodes. Source and Target are the
// only fields the validator reads.
type Edge struct {
	ID           string `json:"id,omitempty"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Pipeline is the full submitted graph.
type Pipeline struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Summary is the analysis result returned to the client.
//
// NumNodes and NumEdges are the raw input lengths - edges referencing
// identifiers absent from the node set still count. They report what was
// received, not what was traversed.
type Summary struct {
	NumNodes int  `json:"num_nodes"`
	NumEdges int  `json:"num_edges"`
	IsDAG    bool `json:"is_dag"`
}

// Analyze computes the summary for a pipeline: raw node and edge counts plus
// the acyclicity verdict from the validator. It is pure and holds no state
// across calls.
func Analyze(p Pipeline) Summary {
	return Summary{
		NumNodes: len(p.Nodes),
		NumEdges: len(p.Edges),
		IsDAG:    dag.Validate(p.NodeIDs(), p.DAGEdges()),
	}
}

// NodeIDs returns the node identifiers in input order. Duplicates, if
// present, are preserved here and collapsed by the validator.
func (p Pipeline) NodeIDs() []string {
	ids := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// DAGEdges converts the wire edges into validator edge pairs, dropping all
// metadata.
func (p Pipeline) DAGEdges() []dag.Edge {
	edges := make([]dag.Edge, len(p.Edges))
	for i, e := range p.Edges {
		edges[i] = dag.Edge{Source: e.Source, Target: e.Target}
	}
	return edges
}
