package circuit

// RemoveTrailingSwaps pops unconditional SWAP gates off the end of the
// command stream and folds them into the circuit's implicit output
// permutation. Synthesis only ever emits SWAPs during final tableau
// cleanup, so this recovers them all.
func (c *Circuit) RemoveTrailingSwaps() {
	perm := c.Permutation
	if perm == nil {
		perm = make([]int, c.NQubits)
		for i := range perm {
			perm[i] = i
		}
	}
	changed := false
	for len(c.Commands) > 0 {
		last := c.Commands[len(c.Commands)-1]
		if last.Op != OpSWAP || last.Condition != nil {
			break
		}
		a, b := last.Qubits[0], last.Qubits[1]
		perm[a], perm[b] = perm[b], perm[a]
		c.Commands = c.Commands[:len(c.Commands)-1]
		changed = true
	}
	if changed || c.Permutation != nil {
		c.Permutation = perm
	}
}

// OutputWire returns the physical wire holding logical qubit q at the
// end of the circuit, accounting for the implicit permutation.
func (c *Circuit) OutputWire(q int) int {
	if c.Permutation == nil {
		return q
	}
	return c.Permutation[q]
}
