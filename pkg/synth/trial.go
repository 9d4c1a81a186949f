package synth

import (
	"context"
	"math/rand"
	"sort"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
	"github.com/quantforge/qweave/pkg/pauligraph"
)

var localOps = map[pauli.LocalClifford]circuit.OpType{
	pauli.CliffH:   circuit.OpH,
	pauli.CliffS:   circuit.OpS,
	pauli.CliffSdg: circuit.OpSdg,
	pauli.CliffV:   circuit.OpV,
	pauli.CliffVdg: circuit.OpVdg,
	pauli.CliffX:   circuit.OpX,
	pauli.CliffY:   circuit.OpY,
	pauli.CliffZ:   circuit.OpZ,
}

// trial is one seeded synthesis attempt over private copies of the
// commuting sets and tableau rows.
type trial struct {
	opts  Options
	rng   *rand.Rand
	sets  [][]pauligraph.Node
	rows  []*pauligraph.Propagation
	circ  *circuit.Circuit
	depth *depthTracker
}

func newTrial(nQubits, nBits int, name string, phase float64, sets [][]pauligraph.Node, rows []*pauligraph.Propagation, opts Options, seed int64) *trial {
	c := circuit.New(nQubits, nBits)
	c.Name = name
	c.Phase = phase
	return &trial{
		opts:  opts,
		rng:   rand.New(rand.NewSource(seed)),
		sets:  cloneSets(sets),
		rows:  cloneRows(rows),
		circ:  c,
		depth: newDepthTracker(nQubits),
	}
}

func cloneSets(sets [][]pauligraph.Node) [][]pauligraph.Node {
	out := make([][]pauligraph.Node, len(sets))
	for i, set := range sets {
		out[i] = make([]pauligraph.Node, len(set))
		for j, n := range set {
			out[i][j] = n.Clone()
		}
	}
	return out
}

func cloneRows(rows []*pauligraph.Propagation) []*pauligraph.Propagation {
	out := make([]*pauligraph.Propagation, len(rows))
	for i, r := range rows {
		out[i] = r.Clone().(*pauligraph.Propagation)
	}
	return out
}

// run drives the full synthesis and folds trailing SWAPs into the
// output permutation.
func (t *trial) run(ctx context.Context) error {
	if err := t.synthesise(ctx); err != nil {
		return err
	}
	t.circ.RemoveTrailingSwaps()
	return nil
}

// synthesise consumes every rotation set and reduces the tableau rows
// to identity. Cancellation is only checked at the top of the outer
// layer loop, so a trial that got past its last check runs to
// completion.
func (t *trial) synthesise(ctx context.Context) error {
	for len(t.sets) > 0 {
		select {
		case <-ctx.Done():
			return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "synthesis trial cancelled")
		default:
		}
		progress, err := t.consumeAvailable()
		if err != nil {
			return err
		}
		if progress {
			continue
		}
		if err := t.commitBestTQE(); err != nil {
			return err
		}
	}
	t.synthesiseRows()
	t.cleanupRows()
	return nil
}

// gate appends a gate to the output and tracks its depth.
func (t *trial) gate(op circuit.OpType, qubits ...int) {
	t.circ.Commands = append(t.circ.Commands, circuit.Command{Op: op, Qubits: qubits})
	if len(qubits) == 2 {
		t.depth.add2q(qubits[0], qubits[1])
	} else {
		t.depth.add1q(qubits[0])
	}
}

func (t *trial) rotationGate(op circuit.OpType, angle float64, q int) {
	t.circ.Commands = append(t.circ.Commands, circuit.Command{
		Op: op, Qubits: []int{q}, Angles: []float64{angle},
	})
	t.depth.add1q(q)
}

// consumeAvailable emits every node of the first set that is ready:
// cost zero, or a weight-2 rotation when ZZPhase output is allowed.
// Returns whether anything was emitted or a set was exhausted.
func (t *trial) consumeAvailable() (bool, error) {
	if len(t.sets) == 0 {
		return false, nil
	}
	first := t.sets[0]
	keep := first[:0]
	emitted := false
	for _, node := range first {
		if !t.emittable(node) {
			keep = append(keep, node)
			continue
		}
		if err := t.emitNode(node); err != nil {
			return false, err
		}
		emitted = true
	}
	if len(keep) == 0 {
		t.sets = t.sets[1:]
		return true, nil
	}
	t.sets[0] = keep
	return emitted, nil
}

func (t *trial) emittable(node pauligraph.Node) bool {
	if node.TQECost() == 0 {
		return true
	}
	if rot, ok := node.(*pauligraph.Rotation); ok {
		return t.opts.AllowZZPhase && rot.Weight() == 2
	}
	return false
}

func (t *trial) emitNode(node pauligraph.Node) error {
	switch n := node.(type) {
	case *pauligraph.Rotation:
		if n.Weight() == 2 {
			return t.emitZZPhase(n)
		}
		t.emitRotation(n.Str(), n.Angle)
		return nil
	case *pauligraph.MidMeasure:
		return t.emitMeasure(n)
	case *pauligraph.Reset:
		t.emitReset(n)
		return nil
	case *pauligraph.Classical:
		t.circ.Commands = append(t.circ.Commands, n.Cmd.Clone())
		return nil
	case *pauligraph.ConditionalBlock:
		return t.emitBlock(n)
	}
	return errors.New(errors.ErrCodeInternal, "cannot emit node %v", node)
}

// emitRotation emits a weight-1 rotation as a bare Rz/Rx/Ry, folding
// the string sign into the angle.
func (t *trial) emitRotation(s pauli.String, angle float64) {
	q := s.FirstSupport()
	if s.Negative {
		angle = -angle
	}
	var op circuit.OpType
	switch s.Letters[q] {
	case pauli.Z:
		op = circuit.OpRz
	case pauli.X:
		op = circuit.OpRx
	default:
		op = circuit.OpRy
	}
	t.rotationGate(op, angle, q)
}

// localFromZ returns the single-qubit Clifford g whose conjugation
// takes Z to the given letter without a sign flip.
func localFromZ(letter pauli.Pauli) (pauli.LocalClifford, bool) {
	if letter == pauli.Z {
		return 0, false
	}
	for g := pauli.CliffH; g <= pauli.CliffZ; g++ {
		if p, keep := pauli.ConjugateClifford(g, pauli.Z); p == letter && keep {
			return g, true
		}
	}
	panic("synth: no local Clifford conjugates Z to " + letter.String())
}

// emitZZPhase emits a weight-2 rotation as a ZZPhase conjugated by
// per-qubit basis changes. Only correct up to global phase.
func (t *trial) emitZZPhase(rot *pauligraph.Rotation) error {
	s := rot.Str()
	var qubits []int
	for q, l := range s.Letters {
		if l != pauli.I {
			qubits = append(qubits, q)
		}
	}
	if len(qubits) != 2 {
		return errors.New(errors.ErrCodeInternal, "weight-2 rotation with %d supports", len(qubits))
	}
	a, b := qubits[0], qubits[1]
	angle := rot.Angle
	if s.Negative {
		angle = -angle
	}
	ga, okA := localFromZ(s.Letters[a])
	gb, okB := localFromZ(s.Letters[b])
	if okA {
		t.gate(localOps[ga], a)
	}
	if okB {
		t.gate(localOps[gb], b)
	}
	t.circ.Commands = append(t.circ.Commands, circuit.Command{
		Op: circuit.OpZZPhase, Qubits: []int{a, b}, Angles: []float64{angle},
	})
	t.depth.add2q(a, b)
	if okB {
		t.gate(localOps[gb.Dagger()], b)
	}
	if okA {
		t.gate(localOps[ga.Dagger()], a)
	}
	return nil
}

// emitMeasure emits a weight-1 measurement as a basis-change sandwich
// around a Z measurement, with an X conjugation fixing a negative sign.
func (t *trial) emitMeasure(m *pauligraph.MidMeasure) error {
	s := m.Str()
	q := s.FirstSupport()
	g, needLocal := localFromZ(s.Letters[q])
	if needLocal {
		t.gate(localOps[g], q)
	}
	if s.Negative {
		t.gate(circuit.OpX, q)
	}
	t.circ.Commands = append(t.circ.Commands, circuit.Command{
		Op: circuit.OpMeasure, Qubits: []int{q}, Bits: []int{m.Bit},
	})
	t.depth.add1q(q)
	if s.Negative {
		t.gate(circuit.OpX, q)
	}
	if needLocal {
		t.gate(localOps[g.Dagger()], q)
	}
	return nil
}

// emitReset emits a cost-0 reset: a Z-basis reset, an X fixing a
// negative sign, then the frame gates rotating the prepared state into
// the eigenbasis the pair describes. Gates before a reset cannot affect
// the channel, so none are emitted.
func (t *trial) emitReset(r *pauligraph.Reset) {
	q, zl, xl := r.FirstSupport()
	gates := pauli.AAToZXGates(zl, xl)
	// Fold the conjugations to learn the sign the z-letter reduces with.
	z := zl
	neg := r.ZStr().Negative
	for i := len(gates) - 1; i >= 0; i-- {
		var keep bool
		z, keep = pauli.ConjugateClifford(gates[i], z)
		if !keep {
			neg = !neg
		}
	}
	t.circ.Commands = append(t.circ.Commands, circuit.Command{
		Op: circuit.OpReset, Qubits: []int{q},
	})
	t.depth.add1q(q)
	if neg {
		t.gate(circuit.OpX, q)
	}
	for _, g := range gates {
		t.gate(localOps[g], q)
	}
}

// emitBlock synthesises the block's rotations with a recursive driver
// run over fresh identity rows, then replays the sub-circuit under the
// block's condition.
func (t *trial) emitBlock(b *pauligraph.ConditionalBlock) error {
	n := t.circ.NQubits
	sets := make([][]pauligraph.Node, 0, len(b.Rotations))
	for _, r := range b.Rotations {
		rot, err := pauligraph.NewRotation(r.Str, r.Angle)
		if err != nil {
			return err
		}
		sets = append(sets, []pauligraph.Node{rot})
	}
	rows := make([]*pauligraph.Propagation, n)
	for q := 0; q < n; q++ {
		z, x := pauli.NewString(n), pauli.NewString(n)
		z.Letters[q], x.Letters[q] = pauli.Z, pauli.X
		row, err := pauligraph.NewPropagation(z, x, q)
		if err != nil {
			return err
		}
		rows[q] = row
	}
	sub := &trial{
		opts:  t.opts,
		rng:   t.rng,
		sets:  sets,
		rows:  rows,
		circ:  circuit.New(n, t.circ.NBits),
		depth: newDepthTracker(n),
	}
	if err := sub.synthesise(context.Background()); err != nil {
		return err
	}
	cond := &circuit.Condition{Bits: append([]int(nil), b.Cond.Bits...), Value: b.Cond.Value}
	for _, cmd := range sub.circ.Commands {
		out := cmd.Clone()
		out.Condition = cond
		t.circ.Commands = append(t.circ.Commands, out)
		if len(cmd.Qubits) == 2 {
			t.depth.add2q(cmd.Qubits[0], cmd.Qubits[1])
		} else if len(cmd.Qubits) == 1 {
			t.depth.add1q(cmd.Qubits[0])
		}
	}
	return nil
}

// commitBestTQE runs one selection round on the first set: gather
// reduction candidates from its cheapest nodes, score them, and commit
// the winner to every remaining node and row.
func (t *trial) commitBestTQE() error {
	first := t.sets[0]
	minCost := first[0].TQECost()
	for _, n := range first[1:] {
		if c := n.TQECost(); c < minCost {
			minCost = c
		}
	}
	seen := map[pauli.TQE]struct{}{}
	var candidates []pauli.TQE
	for _, n := range first {
		if n.TQECost() != minCost {
			continue
		}
		for _, e := range n.ReductionTQEs() {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				candidates = append(candidates, e)
			}
		}
	}
	if len(candidates) == 0 {
		return errors.New(errors.ErrCodeInternal, "no reduction candidates for cost-%d node set", minCost)
	}
	sortTQEs(candidates)
	candidates = t.sample(candidates)

	best := t.selectTQE(candidates, t.lookaheadCost)
	for _, set := range t.sets {
		for _, n := range set {
			n.CommitTQE(best)
		}
	}
	for _, r := range t.rows {
		r.CommitTQE(best)
	}
	t.emitTQEGates(best)
	return nil
}

// sample reduces an oversized candidate pool with a seeded uniform
// draw, keeping deterministic order.
func (t *trial) sample(candidates []pauli.TQE) []pauli.TQE {
	limit := t.opts.MaxTQECandidates
	if len(candidates) <= limit {
		return candidates
	}
	picked := t.rng.Perm(len(candidates))[:limit]
	sort.Ints(picked)
	out := make([]pauli.TQE, limit)
	for i, idx := range picked {
		out[i] = candidates[idx]
	}
	return out
}

// selectTQE scores candidates by the given cost function and the depth
// their fragment would land at, min-max normalises both, and picks
// uniformly among the best.
func (t *trial) selectTQE(candidates []pauli.TQE, cost func(pauli.TQE) float64) pauli.TQE {
	look := make([]float64, len(candidates))
	depth := make([]float64, len(candidates))
	for i, e := range candidates {
		look[i] = cost(e)
		depth[i] = float64(t.depth.gateDepth(e.Q0, e.Q1))
	}
	combined := combineNormalised([][]float64{look, depth}, []float64{1, t.opts.DepthWeight})
	best := combined[0]
	for _, c := range combined[1:] {
		if c < best {
			best = c
		}
	}
	var argmin []int
	for i, c := range combined {
		if c == best {
			argmin = append(argmin, i)
		}
	}
	return candidates[argmin[t.rng.Intn(len(argmin))]]
}

// lookaheadCost sums cost deltas over upcoming sets with a geometric
// discount per set, bounded by MaxLookahead inspected nodes, and always
// includes the tableau rows at the final discount.
func (t *trial) lookaheadCost(e pauli.TQE) float64 {
	discount := 1 / (1 + t.opts.DiscountRate)
	weight := 1.0
	cost := 0.0
	inspected := 0
scan:
	for _, set := range t.sets {
		for _, n := range set {
			if inspected >= t.opts.MaxLookahead {
				break scan
			}
			cost += weight * float64(n.TQECostDelta(e))
			inspected++
		}
		weight *= discount
	}
	for _, r := range t.rows {
		cost += weight * float64(r.TQECostDelta(e))
	}
	return cost
}

// combineNormalised min-max normalises each cost dimension and returns
// the weighted sums. Dimensions with no spread are ignored.
func combineNormalised(dims [][]float64, weights []float64) []float64 {
	n := len(dims[0])
	out := make([]float64, n)
	for d, dim := range dims {
		min, max := dim[0], dim[0]
		for _, v := range dim[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if min == max {
			continue
		}
		for i, v := range dim {
			out[i] += weights[d] * (v - min) / (max - min)
		}
	}
	return out
}

func sortTQEs(tqes []pauli.TQE) {
	sort.Slice(tqes, func(i, j int) bool {
		a, b := tqes[i], tqes[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Q0 != b.Q0 {
			return a.Q0 < b.Q0
		}
		return a.Q1 < b.Q1
	})
}

// emitTQEGates appends the fixed Clifford fragment realising an
// entangling basis change.
func (t *trial) emitTQEGates(e pauli.TQE) {
	a, b := e.Q0, e.Q1
	switch e.Type {
	case pauli.TQEXX:
		t.gate(circuit.OpH, a)
		t.gate(circuit.OpCX, a, b)
		t.gate(circuit.OpH, a)
	case pauli.TQEXY:
		t.gate(circuit.OpH, a)
		t.gate(circuit.OpCY, a, b)
		t.gate(circuit.OpH, a)
	case pauli.TQEXZ:
		t.gate(circuit.OpCX, b, a)
	case pauli.TQEYX:
		t.gate(circuit.OpH, b)
		t.gate(circuit.OpCY, b, a)
		t.gate(circuit.OpH, b)
	case pauli.TQEYY:
		t.gate(circuit.OpV, a)
		t.gate(circuit.OpCY, a, b)
		t.gate(circuit.OpVdg, a)
	case pauli.TQEYZ:
		t.gate(circuit.OpCY, b, a)
	case pauli.TQEZX:
		t.gate(circuit.OpCX, a, b)
	case pauli.TQEZY:
		t.gate(circuit.OpCY, a, b)
	case pauli.TQEZZ:
		t.gate(circuit.OpCZ, a, b)
	}
}

// synthesiseRows reduces every tableau row to single-qubit support with
// greedily selected entangling gates. Rows already at cost zero are
// untouched by later commits: their qubit cannot appear in any other
// row's support.
func (t *trial) synthesiseRows() {
	remaining := make([]*pauligraph.Propagation, 0, len(t.rows))
	for _, r := range t.rows {
		if r.TQECost() > 0 {
			remaining = append(remaining, r)
		}
	}
	for len(remaining) > 0 {
		minCost := remaining[0].TQECost()
		for _, r := range remaining[1:] {
			if c := r.TQECost(); c < minCost {
				minCost = c
			}
		}
		seen := map[pauli.TQE]struct{}{}
		var candidates []pauli.TQE
		for _, r := range remaining {
			if r.TQECost() != minCost {
				continue
			}
			for _, e := range r.ReductionTQEs() {
				if _, ok := seen[e]; !ok {
					seen[e] = struct{}{}
					candidates = append(candidates, e)
				}
			}
		}
		sortTQEs(candidates)
		candidates = t.sample(candidates)

		selected := t.selectTQE(candidates, func(e pauli.TQE) float64 {
			sum := 0.0
			for _, r := range remaining {
				sum += float64(r.TQECostDelta(e))
			}
			return sum
		})

		for _, r := range t.rows {
			r.CommitTQE(selected)
		}
		t.emitTQEGates(selected)

		live := remaining[:0]
		for _, r := range remaining {
			if r.TQECost() > 0 {
				live = append(live, r)
			}
		}
		remaining = live
	}
}

// emitCleanupLocal appends a single-qubit Clifford and conjugates every
// row through it.
func (t *trial) emitCleanupLocal(g pauli.LocalClifford, q int) {
	t.gate(localOps[g], q)
	for _, r := range t.rows {
		r.CommitClifford(g.Dagger(), q)
	}
}

// cleanupRows drives the single-qubit rows to exact identity: local
// Cliffords rotate each pair to (Z, X), Pauli gates clear residual
// signs, and SWAP cycles return each row to its home qubit. Trailing
// SWAPs are later folded into the output permutation.
func (t *trial) cleanupRows() {
	for _, r := range t.rows {
		q, zl, xl := r.FirstSupport()
		gates := pauli.AAToZXGates(zl, xl)
		for i := len(gates) - 1; i >= 0; i-- {
			t.emitCleanupLocal(gates[i].Dagger(), q)
		}
	}
	for _, r := range t.rows {
		q, _, _ := r.FirstSupport()
		zNeg, xNeg := r.ZStr().Negative, r.XStr().Negative
		switch {
		case zNeg && xNeg:
			// A single Y clears both signs; X then Z would realize
			// i*Y and silently shift the global phase.
			t.emitCleanupLocal(pauli.CliffY, q)
		case zNeg:
			t.emitCleanupLocal(pauli.CliffX, q)
		case xNeg:
			t.emitCleanupLocal(pauli.CliffZ, q)
		}
	}
	n := len(t.rows)
	pos := make([]int, n)
	at := make([]int, n)
	for i, r := range t.rows {
		q, _, _ := r.FirstSupport()
		pos[i] = q
		at[q] = i
	}
	for q := 0; q < n; q++ {
		if at[q] == q {
			continue
		}
		i, j := at[q], pos[q]
		t.gate(circuit.OpSWAP, q, j)
		for _, r := range t.rows {
			r.CommitSwap(q, j)
		}
		pos[i], pos[q] = j, q
		at[q], at[j] = q, i
	}
}
