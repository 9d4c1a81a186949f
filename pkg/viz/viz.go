// Package viz renders a Pauli dependency graph for inspection and
// debugging, as Graphviz DOT text or a rendered SVG document.
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauligraph"
)

// ToDOT returns a Graphviz DOT representation of the dependency graph.
//
// Each live vertex becomes a node labeled with its string form; edges
// follow the precedence relation. Node shapes distinguish the kinds:
// rotations are ellipses, measurements and resets are boxes, classical
// operations are diamonds, and conditional blocks are rounded boxes.
//
// The DOT can be rendered with Graphviz tools (dot, neato, etc.) or
// programmatically with RenderSVG.
func ToDOT(g *pauligraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph PauliGraph {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n\n")

	for i := 0; i < g.Len(); i++ {
		n := g.Node(i)
		if n == nil {
			continue
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, shape=%s];\n", i, n.String(), shape(n))
	}
	buf.WriteString("\n")
	for i := 0; i < g.Len(); i++ {
		if g.Node(i) == nil {
			continue
		}
		for _, j := range g.Successors(i) {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", i, j)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shape(n pauligraph.Node) string {
	switch n.Kind() {
	case pauligraph.KindRotation:
		return "ellipse"
	case pauligraph.KindClassical:
		return "diamond"
	case pauligraph.KindConditional:
		return "box, style=\"filled,rounded\""
	default:
		return "box"
	}
}

// RenderSVG renders the dependency graph as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses
// Graphviz to render it to SVG. The returned bytes are a complete SVG
// document suitable for embedding in HTML or saving to a file.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz)
// to initialize; errors are returned if it cannot, the DOT is
// malformed, or rendering fails.
func RenderSVG(ctx context.Context, g *pauligraph.Graph) ([]byte, error) {
	dot := ToDOT(g)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return buf.Bytes(), nil
}
