package viz

import (
	"strings"
	"testing"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/pauligraph"
)

func TestToDOT(t *testing.T) {
	c := circuit.New(1, 0)
	if err := c.AddRotation(circuit.OpRz, 0.25, 0); err != nil {
		t.Fatalf("AddRotation error: %v", err)
	}
	if err := c.AddRotation(circuit.OpRx, 0.3, 0); err != nil {
		t.Fatalf("AddRotation error: %v", err)
	}
	g, err := pauligraph.FromCircuit(c)
	if err != nil {
		t.Fatalf("FromCircuit error: %v", err)
	}

	dot := ToDOT(g)
	if !strings.HasPrefix(dot, "digraph PauliGraph {") {
		t.Errorf("DOT missing header:\n%s", dot)
	}
	if !strings.Contains(dot, "n0 [") || !strings.Contains(dot, "n1 [") {
		t.Errorf("DOT missing vertices:\n%s", dot)
	}
	// Rz and Rx on the same qubit anticommute, so there is an edge.
	if !strings.Contains(dot, "n0 -> n1;") {
		t.Errorf("DOT missing precedence edge:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	g, err := pauligraph.FromCircuit(circuit.New(2, 0))
	if err != nil {
		t.Fatalf("FromCircuit error: %v", err)
	}
	dot := ToDOT(g)
	if !strings.Contains(dot, "digraph PauliGraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT not well formed:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("empty graph should have no edges:\n%s", dot)
	}
}
