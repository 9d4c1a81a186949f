package synth

// depthTracker keeps per-qubit gate depths so candidate scoring can
// penalise entangling gates landing on busy qubits.
type depthTracker struct {
	qubitDepth []int
	maxDepth   int
}

func newDepthTracker(n int) *depthTracker {
	return &depthTracker{qubitDepth: make([]int, n)}
}

// gateDepth returns the depth a two-qubit gate on (a, b) would land at.
func (d *depthTracker) gateDepth(a, b int) int {
	if d.qubitDepth[a] > d.qubitDepth[b] {
		return d.qubitDepth[a] + 1
	}
	return d.qubitDepth[b] + 1
}

func (d *depthTracker) add1q(a int) {
	d.qubitDepth[a]++
	if d.qubitDepth[a] > d.maxDepth {
		d.maxDepth = d.qubitDepth[a]
	}
}

func (d *depthTracker) add2q(a, b int) {
	next := d.gateDepth(a, b)
	d.qubitDepth[a] = next
	d.qubitDepth[b] = next
	if next > d.maxDepth {
		d.maxDepth = next
	}
}
