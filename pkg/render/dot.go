// Package render converts pipelines to Graphviz DOT and SVG for quick
// visual inspection from the CLI. Rendering never requires validity - a
// cyclic pipeline renders fine, which is usually exactly when someone wants
// to look at it.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pipecheck/pipecheck/pkg/pipeline"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes node type and position in labels.
	// When false, only the node ID is shown.
	Detailed bool
}

// ToDOT converts a pipeline to Graphviz DOT format.
//
// Only edges whose endpoints are both known nodes are drawn; drawing an
// unknown endpoint would make Graphviz invent a node the payload never
// declared.
func ToDOT(p pipeline.Pipeline, opts Options) string {
	known := make(map[string]struct{}, len(p.Nodes))
	for _, n := range p.Nodes {
		known[n.ID] = struct{}{}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph pipeline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range p.Nodes {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		if _, ok := known[e.Source]; !ok {
			continue
		}
		if _, ok := known[e.Target]; !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n pipeline.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}

	parts := []string{n.ID}
	if n.Type != "" {
		parts = append(parts, "type: "+n.Type)
	}
	if n.Position != nil {
		parts = append(parts, fmt.Sprintf("at: %.0f,%.0f", n.Position.X, n.Position.Y))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
