package pauligraph

import (
	"sort"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/pauli"
	"github.com/quantforge/qweave/pkg/tableau"
)

// Graph is the dependency graph of Pauli nodes plus the Clifford
// tableau trailing them. Vertices live in an index-addressed arena;
// removed vertices leave tombstones so indices stay stable. The edge
// relation is kept acyclic by construction: nodes are only ever
// appended at the end, behind everything they fail to commute with.
type Graph struct {
	nQubits int
	nBits   int

	nodes []Node
	succs []map[int]struct{}
	preds []map[int]struct{}

	startLine map[int]struct{}
	endLine   map[int]struct{}

	tab   *tableau.Tableau
	phase float64
}

// NewGraph returns an empty graph over the given registers.
func NewGraph(nQubits, nBits int) *Graph {
	return &Graph{
		nQubits:   nQubits,
		nBits:     nBits,
		startLine: map[int]struct{}{},
		endLine:   map[int]struct{}{},
		tab:       tableau.New(nQubits),
	}
}

// NQubits returns the qubit register size.
func (g *Graph) NQubits() int { return g.nQubits }

// NBits returns the bit register size.
func (g *Graph) NBits() int { return g.nBits }

// Tableau exposes the trailing Clifford tableau.
func (g *Graph) Tableau() *tableau.Tableau { return g.tab }

// Phase returns the accumulated global phase in half-turns.
func (g *Graph) Phase() float64 { return g.phase }

// Node returns the node at arena index i, or nil for a tombstone.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Len returns the arena size including tombstones.
func (g *Graph) Len() int { return len(g.nodes) }

// Successors returns the arena indices of a vertex's direct successors.
func (g *Graph) Successors(i int) []int { return setToSorted(g.succs[i]) }

// Predecessors returns the arena indices of a vertex's direct
// predecessors.
func (g *Graph) Predecessors(i int) []int { return setToSorted(g.preds[i]) }

func (g *Graph) addVertex(node Node) int {
	g.nodes = append(g.nodes, node)
	g.succs = append(g.succs, map[int]struct{}{})
	g.preds = append(g.preds, map[int]struct{}{})
	return len(g.nodes) - 1
}

func (g *Graph) addEdge(from, to int) {
	g.succs[from][to] = struct{}{}
	g.preds[to][from] = struct{}{}
}

func (g *Graph) removeVertex(i int) {
	for p := range g.preds[i] {
		delete(g.succs[p], i)
	}
	for s := range g.succs[i] {
		delete(g.preds[s], i)
	}
	g.nodes[i] = nil
	g.succs[i] = map[int]struct{}{}
	g.preds[i] = map[int]struct{}{}
	delete(g.startLine, i)
	delete(g.endLine, i)
}

// ApplyNodeAtEnd inserts a node behind the whole graph, commuting it
// backwards past everything it commutes with. Rotations meeting an
// equal-string rotation merge their angles; a merge producing a
// Clifford angle folds into the tableau's front and drops the vertex.
// Conditional blocks meeting a block with an equal condition merge into
// it. Everything the node fails to commute with becomes a predecessor.
func (g *Graph) ApplyNodeAtEnd(node Node) {
	toSearch := make(map[int]struct{}, len(g.endLine))
	for v := range g.endLine {
		toSearch[v] = struct{}{}
	}
	commuted := map[int]struct{}{}
	var parents []int

	for len(toSearch) > 0 {
		compare := popMin(toSearch)
		// Only consider a vertex once everything after it has been
		// commuted past.
		ready := true
		for child := range g.succs[compare] {
			if _, ok := commuted[child]; !ok {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		compareNode := g.nodes[compare]

		if blk, ok := node.(*ConditionalBlock); ok {
			if other, ok := compareNode.(*ConditionalBlock); ok && other.Cond.Equal(&blk.Cond) {
				other.Merge(blk)
				return
			}
		}

		if !NodesCommute(node, compareNode) {
			parents = append(parents, compare)
			delete(g.endLine, compare)
			continue
		}

		if rot, ok := node.(*Rotation); ok {
			if other, ok := compareNode.(*Rotation); ok && sameString(rot.str, other.str) {
				g.mergeRotations(compare, other, rot)
				return
			}
		}

		for p := range g.preds[compare] {
			toSearch[p] = struct{}{}
		}
		commuted[compare] = struct{}{}
	}

	v := g.addVertex(node)
	for _, p := range parents {
		g.addEdge(p, v)
	}
	g.endLine[v] = struct{}{}
	if len(g.preds[v]) == 0 {
		g.startLine[v] = struct{}{}
	}
}

// mergeRotations folds rot into the existing vertex holding other. A
// merged Clifford angle moves into the tableau front and removes the
// vertex; otherwise the vertex keeps the summed angle.
func (g *Graph) mergeRotations(vert int, other, rot *Rotation) {
	merged := other.Angle + rot.Angle
	if !isCliffordHalfTurns(merged) {
		other.Angle = merged
		return
	}
	g.phase = circuit.NormalizePhase(g.phase + circuit.CliffordResidualPhase(merged))
	if quarter := quarterTurns(merged); quarter != 0 {
		g.tab.ApplyPauliAtFront(other.str, quarter)
	}
	delete(g.startLine, vert)
	for p := range g.preds[vert] {
		if len(g.succs[p]) == 1 {
			g.endLine[p] = struct{}{}
		}
	}
	g.removeVertex(vert)
}

func sameString(a, b pauli.String) bool {
	if a.Negative != b.Negative || a.Len() != b.Len() {
		return false
	}
	for i, l := range a.Letters {
		if b.Letters[i] != l {
			return false
		}
	}
	return true
}

func isCliffordHalfTurns(a float64) bool { return circuit.IsCliffordAngle(a) }
func quarterTurns(a float64) int         { return circuit.QuarterTurns(a) }

func popMin(set map[int]struct{}) int {
	min := -1
	for v := range set {
		if min < 0 || v < min {
			min = v
		}
	}
	delete(set, min)
	return min
}

func setToSorted(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
