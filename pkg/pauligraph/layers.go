package pauligraph

// TopologicalOrder returns the live vertices in a deterministic
// dependency-respecting order: among the ready vertices the lowest
// arena index always goes first.
func (g *Graph) TopologicalOrder() []int {
	indeg := make([]int, len(g.nodes))
	ready := map[int]struct{}{}
	live := 0
	for i, node := range g.nodes {
		if node == nil {
			continue
		}
		live++
		indeg[i] = len(g.preds[i])
		if indeg[i] == 0 {
			ready[i] = struct{}{}
		}
	}
	order := make([]int, 0, live)
	for len(ready) > 0 {
		v := popMin(ready)
		order = append(order, v)
		for child := range g.succs[v] {
			indeg[child]--
			if indeg[child] == 0 {
				ready[child] = struct{}{}
			}
		}
	}
	return order
}

// Sequence splits the interior nodes into an ordered list of mutually
// commuting sets by peeling maximal commuting prefixes off the
// topological order, and returns the tableau rows as propagation nodes
// to be synthesised after them.
func (g *Graph) Sequence() ([][]Node, []*Propagation, error) {
	order := g.TopologicalOrder()
	var sets [][]Node
	i := 0
	for i < len(order) {
		set := []Node{g.nodes[order[i]]}
		i++
	peel:
		for i < len(order) {
			next := g.nodes[order[i]]
			for _, member := range set {
				if !NodesCommute(member, next) {
					break peel
				}
			}
			set = append(set, next)
			i++
		}
		sets = append(sets, set)
	}

	rows := make([]*Propagation, g.nQubits)
	for q := 0; q < g.nQubits; q++ {
		row, err := NewPropagation(g.tab.ZRow(q), g.tab.XRow(q), q)
		if err != nil {
			return nil, nil, err
		}
		rows[q] = row
	}
	return sets, rows, nil
}
