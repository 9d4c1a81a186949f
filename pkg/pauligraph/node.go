// Package pauligraph builds the commutation-aware intermediate form of
// a circuit: a dependency graph of Pauli-exponential nodes followed by
// a Clifford tableau. Gates are folded in one left-to-right pass, and
// the graph can be peeled into layers of mutually commuting nodes for
// synthesis.
package pauligraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
)

// CommuteType classifies a qubit of an anticommuting string pair: both
// letters identity, letters commuting, or letters anticommuting.
type CommuteType uint8

const (
	CommuteI CommuteType = iota
	CommuteC
	CommuteA
)

func commutePairType(z, x pauli.Pauli) CommuteType {
	if z == pauli.I && x == pauli.I {
		return CommuteI
	}
	if z == x || z == pauli.I || x == pauli.I {
		return CommuteC
	}
	return CommuteA
}

// NodeKind tags the closed set of node variants.
type NodeKind uint8

const (
	KindRotation NodeKind = iota
	KindMidMeasure
	KindReset
	KindPropagation
	KindClassical
	KindConditional
)

func (k NodeKind) String() string {
	switch k {
	case KindRotation:
		return "rotation"
	case KindMidMeasure:
		return "measure"
	case KindReset:
		return "reset"
	case KindPropagation:
		return "propagation"
	case KindClassical:
		return "classical"
	case KindConditional:
		return "conditional"
	}
	return "unknown"
}

// BitAccess records one classical bit touched by a node.
type BitAccess struct {
	Bit   int
	Write bool
}

// CommuteInfo exposes everything needed to decide whether two nodes can
// be reordered: the Pauli strings a node acts through and the classical
// bits it reads or writes.
type CommuteInfo struct {
	Strings []pauli.String
	Bits    []BitAccess
}

// Node is one vertex of the dependency graph.
type Node interface {
	Kind() NodeKind
	// TQECost estimates the two-qubit gate cost of synthesising the
	// node as-is.
	TQECost() int
	// TQECostDelta returns the cost change if the entangling change e
	// were committed.
	TQECostDelta(e pauli.TQE) int
	// CommitTQE conjugates the node's strings by e.
	CommitTQE(e pauli.TQE)
	// ReductionTQEs proposes entangling changes that move the node
	// towards direct synthesis.
	ReductionTQEs() []pauli.TQE
	CommuteInfo() CommuteInfo
	// Clone returns a deep copy so parallel synthesis trials can
	// commit changes independently.
	Clone() Node
	String() string
}

// NodesCommute reports whether two nodes can be reordered: every string
// pair across them commutes and they have no write/write or write/read
// hazard on any shared bit.
func NodesCommute(a, b Node) bool {
	ca, cb := a.CommuteInfo(), b.CommuteInfo()
	for _, s1 := range ca.Strings {
		for _, s2 := range cb.Strings {
			if !s1.Commutes(s2) {
				return false
			}
		}
	}
	for _, b1 := range ca.Bits {
		for _, b2 := range cb.Bits {
			if b1.Bit == b2.Bit && (b1.Write || b2.Write) {
				return false
			}
		}
	}
	return true
}

// singleNode is the shared behaviour of nodes acting through one Pauli
// string. The string's sign tracks conjugation flips accumulated during
// synthesis.
type singleNode struct {
	str    pauli.String
	weight int
}

func newSingleNode(s pauli.String) (singleNode, error) {
	if s.Len() == 0 {
		return singleNode{}, errors.New(errors.ErrCodeInvalidPauliString, "node string is empty")
	}
	w := s.Weight()
	if w == 0 {
		return singleNode{}, errors.New(errors.ErrCodeInvalidPauliString, "node string is the identity")
	}
	return singleNode{str: s, weight: w}, nil
}

func (n *singleNode) Str() pauli.String { return n.str.Clone() }
func (n *singleNode) Weight() int       { return n.weight }

func (n *singleNode) TQECost() int { return n.weight - 1 }

func (n *singleNode) TQECostDelta(e pauli.TQE) int {
	return pauli.TQECostDelta(e.Type, n.str.Letters[e.Q0], n.str.Letters[e.Q1])
}

func (n *singleNode) CommitTQE(e pauli.TQE) {
	p0, p1 := n.str.Letters[e.Q0], n.str.Letters[e.Q1]
	n0, n1, keep := pauli.ConjugateTQE(e.Type, p0, p1)
	n.str.Letters[e.Q0] = n0
	n.str.Letters[e.Q1] = n1
	n.weight += pauli.TQECostDelta(e.Type, p0, p1)
	if !keep {
		n.str.Negative = !n.str.Negative
	}
}

func (n *singleNode) ReductionTQEs() []pauli.TQE {
	var supp []int
	for i, p := range n.str.Letters {
		if p != pauli.I {
			supp = append(supp, i)
		}
	}
	var tqes []pauli.TQE
	for i := 0; i+1 < len(supp); i++ {
		for j := i + 1; j < len(supp); j++ {
			a, b := supp[i], supp[j]
			for _, tt := range pauli.ReductionTQEs(n.str.Letters[a], n.str.Letters[b]) {
				tqes = append(tqes, pauli.TQE{Type: tt, Q0: a, Q1: b})
			}
		}
	}
	return tqes
}

// FirstSupport returns the lowest supported qubit and its letter.
func (n *singleNode) FirstSupport() (int, pauli.Pauli) {
	q := n.str.FirstSupport()
	return q, n.str.Letters[q]
}

// acPairNode is the shared behaviour of nodes acting through an
// anticommuting pair of Pauli strings.
type acPairNode struct {
	z, x     pauli.String
	ctypes   []CommuteType
	nAnti    int
	nCommute int
}

func newACPairNode(z, x pauli.String) (acPairNode, error) {
	if z.Len() == 0 || z.Len() != x.Len() {
		return acPairNode{}, errors.New(errors.ErrCodeInvalidArity,
			"string pair lengths %d and %d", z.Len(), x.Len())
	}
	n := acPairNode{z: z, x: x, ctypes: make([]CommuteType, z.Len())}
	for i := range n.ctypes {
		ct := commutePairType(z.Letters[i], x.Letters[i])
		n.ctypes[i] = ct
		switch ct {
		case CommuteC:
			n.nCommute++
		case CommuteA:
			n.nAnti++
		}
	}
	if n.nAnti == 0 {
		return acPairNode{}, errors.New(errors.ErrCodeInvalidInput,
			"string pair %v, %v has no anticommuting position", z, x)
	}
	return n, nil
}

func (n *acPairNode) ZStr() pauli.String { return n.z.Clone() }
func (n *acPairNode) XStr() pauli.String { return n.x.Clone() }

func (n *acPairNode) TQECost() int {
	return 3*(n.nAnti-1)/2 + n.nCommute
}

func (n *acPairNode) deltas(e pauli.TQE) (antiDelta, commuteDelta int, nz0, nz1, nx0, nx1 pauli.Pauli, zKeep, xKeep bool) {
	a, b := e.Q0, e.Q1
	nz0, nz1, zKeep = pauli.ConjugateTQE(e.Type, n.z.Letters[a], n.z.Letters[b])
	nx0, nx1, xKeep = pauli.ConjugateTQE(e.Type, n.x.Letters[a], n.x.Letters[b])
	newA := commutePairType(nz0, nx0)
	newB := commutePairType(nz1, nx1)
	oldAnti := btoi(n.ctypes[a] == CommuteA) + btoi(n.ctypes[b] == CommuteA)
	oldCommute := btoi(n.ctypes[a] == CommuteC) + btoi(n.ctypes[b] == CommuteC)
	newAnti := btoi(newA == CommuteA) + btoi(newB == CommuteA)
	newCommute := btoi(newA == CommuteC) + btoi(newB == CommuteC)
	return newAnti - oldAnti, newCommute - oldCommute, nz0, nz1, nx0, nx1, zKeep, xKeep
}

func (n *acPairNode) TQECostDelta(e pauli.TQE) int {
	antiDelta, commuteDelta, _, _, _, _, _, _ := n.deltas(e)
	return 3*antiDelta/2 + commuteDelta
}

func (n *acPairNode) CommitTQE(e pauli.TQE) {
	antiDelta, commuteDelta, nz0, nz1, nx0, nx1, zKeep, xKeep := n.deltas(e)
	a, b := e.Q0, e.Q1
	n.nAnti += antiDelta
	n.nCommute += commuteDelta
	n.z.Letters[a], n.z.Letters[b] = nz0, nz1
	n.x.Letters[a], n.x.Letters[b] = nx0, nx1
	n.ctypes[a] = commutePairType(nz0, nx0)
	n.ctypes[b] = commutePairType(nz1, nx1)
	if !zKeep {
		n.z.Negative = !n.z.Negative
	}
	if !xKeep {
		n.x.Negative = !n.x.Negative
	}
}

// CommitClifford conjugates both strings at qubit a by a single-qubit
// Clifford gate.
func (n *acPairNode) CommitClifford(g pauli.LocalClifford, a int) {
	nz, zKeep := pauli.ConjugateClifford(g, n.z.Letters[a])
	nx, xKeep := pauli.ConjugateClifford(g, n.x.Letters[a])
	n.z.Letters[a] = nz
	n.x.Letters[a] = nx
	if !zKeep {
		n.z.Negative = !n.z.Negative
	}
	if !xKeep {
		n.x.Negative = !n.x.Negative
	}
}

func (n *acPairNode) clone() acPairNode {
	cp := acPairNode{
		z:        n.z.Clone(),
		x:        n.x.Clone(),
		ctypes:   make([]CommuteType, len(n.ctypes)),
		nAnti:    n.nAnti,
		nCommute: n.nCommute,
	}
	copy(cp.ctypes, n.ctypes)
	return cp
}

// CommitSwap exchanges two qubits in both strings.
func (n *acPairNode) CommitSwap(a, b int) {
	n.z.Letters[a], n.z.Letters[b] = n.z.Letters[b], n.z.Letters[a]
	n.x.Letters[a], n.x.Letters[b] = n.x.Letters[b], n.x.Letters[a]
	n.ctypes[a], n.ctypes[b] = n.ctypes[b], n.ctypes[a]
}

func (n *acPairNode) ReductionTQEs() []pauli.TQE {
	var supp []int
	for i, ct := range n.ctypes {
		if ct != CommuteI {
			supp = append(supp, i)
		}
	}
	var tqes []pauli.TQE
	for i := 0; i+1 < len(supp); i++ {
		for j := i + 1; j < len(supp); j++ {
			a, b := supp[i], supp[j]
			var types []pauli.TQEType
			switch {
			case n.ctypes[a] == CommuteA && n.ctypes[b] == CommuteA:
				types = pauli.AAToCCTQEs(
					n.z.Letters[a], n.z.Letters[b], n.x.Letters[a], n.x.Letters[b])
			case n.ctypes[a] == CommuteA:
				types = pauli.ACToAITQEs(
					n.z.Letters[a], n.z.Letters[b], n.x.Letters[a], n.x.Letters[b])
			case n.ctypes[b] == CommuteA:
				types = pauli.ACToAITQEs(
					n.z.Letters[b], n.z.Letters[a], n.x.Letters[b], n.x.Letters[a])
				a, b = b, a
			default:
				// Not always reducible for commuting pairs.
				types = pauli.CCToReduceTQEs(
					n.z.Letters[a], n.z.Letters[b], n.x.Letters[a], n.x.Letters[b])
			}
			for _, tt := range types {
				tqes = append(tqes, pauli.TQE{Type: tt, Q0: a, Q1: b})
			}
		}
	}
	return tqes
}

// FirstSupport returns the lowest supported qubit with both letters.
func (n *acPairNode) FirstSupport() (int, pauli.Pauli, pauli.Pauli) {
	for i, ct := range n.ctypes {
		if ct != CommuteI {
			return i, n.z.Letters[i], n.x.Letters[i]
		}
	}
	panic("pauligraph: pair node with empty support")
}

// SupportCount returns the number of non-identity positions.
func (n *acPairNode) SupportCount() int { return n.nAnti + n.nCommute }

// AntiCount returns the number of anticommuting positions.
func (n *acPairNode) AntiCount() int { return n.nAnti }

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Rotation is a Pauli exponential exp(-i*pi/2*angle*P). The angle is in
// half-turns; construction folds a negative string sign into it.
type Rotation struct {
	singleNode
	Angle float64
}

// NewRotation builds a rotation node from a signed string and an angle.
func NewRotation(s pauli.String, angle float64) (*Rotation, error) {
	if s.Negative {
		s = s.Clone()
		s.Negative = false
		angle = -angle
	}
	base, err := newSingleNode(s)
	if err != nil {
		return nil, err
	}
	return &Rotation{singleNode: base, Angle: angle}, nil
}

func (r *Rotation) Kind() NodeKind { return KindRotation }

func (r *Rotation) CommuteInfo() CommuteInfo {
	return CommuteInfo{Strings: []pauli.String{r.str}}
}

func (r *Rotation) Clone() Node {
	return &Rotation{singleNode: singleNode{str: r.str.Clone(), weight: r.weight}, Angle: r.Angle}
}

func (r *Rotation) String() string {
	return fmt.Sprintf("rotation %v (%g)", r.str, r.Angle)
}

// MidMeasure is a destructive Z-basis measurement conjugated through
// the Clifford structure preceding it, writing its outcome to Bit.
type MidMeasure struct {
	singleNode
	Bit int
}

// NewMidMeasure builds a measurement node.
func NewMidMeasure(s pauli.String, bit int) (*MidMeasure, error) {
	base, err := newSingleNode(s)
	if err != nil {
		return nil, err
	}
	return &MidMeasure{singleNode: base, Bit: bit}, nil
}

func (m *MidMeasure) Kind() NodeKind { return KindMidMeasure }

func (m *MidMeasure) CommuteInfo() CommuteInfo {
	return CommuteInfo{
		Strings: []pauli.String{m.str},
		Bits:    []BitAccess{{Bit: m.Bit, Write: true}},
	}
}

func (m *MidMeasure) Clone() Node {
	return &MidMeasure{singleNode: singleNode{str: m.str.Clone(), weight: m.weight}, Bit: m.Bit}
}

func (m *MidMeasure) String() string {
	return fmt.Sprintf("measure %v -> c[%d]", m.str, m.Bit)
}

// Reset discards a qubit's state and reprepares it, captured as the
// anticommuting pair of stabiliser strings propagated to the reset
// point.
type Reset struct {
	acPairNode
}

// NewReset builds a reset node from the propagated Z and X strings.
func NewReset(z, x pauli.String) (*Reset, error) {
	base, err := newACPairNode(z, x)
	if err != nil {
		return nil, err
	}
	return &Reset{acPairNode: base}, nil
}

func (r *Reset) Kind() NodeKind { return KindReset }

func (r *Reset) CommuteInfo() CommuteInfo {
	return CommuteInfo{Strings: []pauli.String{r.z, r.x}}
}

func (r *Reset) Clone() Node {
	return &Reset{acPairNode: r.acPairNode.clone()}
}

func (r *Reset) String() string {
	return fmt.Sprintf("reset %v / %v", r.z, r.x)
}

// Propagation is a row of the trailing Clifford tableau: the Z and X
// strings qubit Qubit propagates to, synthesised after all interior
// nodes.
type Propagation struct {
	acPairNode
	Qubit int
}

// NewPropagation builds a tableau row node.
func NewPropagation(z, x pauli.String, qubit int) (*Propagation, error) {
	base, err := newACPairNode(z, x)
	if err != nil {
		return nil, err
	}
	return &Propagation{acPairNode: base, Qubit: qubit}, nil
}

func (p *Propagation) Kind() NodeKind { return KindPropagation }

func (p *Propagation) CommuteInfo() CommuteInfo {
	return CommuteInfo{Strings: []pauli.String{p.z, p.x}}
}

func (p *Propagation) Clone() Node {
	return &Propagation{acPairNode: p.acPairNode.clone(), Qubit: p.Qubit}
}

func (p *Propagation) String() string {
	return fmt.Sprintf("propagation q[%d]: %v / %v", p.Qubit, p.z, p.x)
}

// Classical is an opaque classical operation. All referenced bits are
// treated as writes, which orders classical ops among themselves and
// against measurements and conditions.
type Classical struct {
	Cmd  circuit.Command
	bits []int
}

// NewClassical wraps a classical command.
func NewClassical(cmd circuit.Command) *Classical {
	seen := map[int]bool{}
	var bits []int
	for _, group := range [][]int{cmd.Bits, cmd.ReadBits, cmd.WriteBits} {
		for _, b := range group {
			if !seen[b] {
				seen[b] = true
				bits = append(bits, b)
			}
		}
	}
	sort.Ints(bits)
	return &Classical{Cmd: cmd, bits: bits}
}

func (c *Classical) Kind() NodeKind             { return KindClassical }
func (c *Classical) TQECost() int               { return 0 }
func (c *Classical) TQECostDelta(pauli.TQE) int { return 0 }
func (c *Classical) CommitTQE(pauli.TQE)        {}
func (c *Classical) ReductionTQEs() []pauli.TQE { return nil }

func (c *Classical) CommuteInfo() CommuteInfo {
	info := CommuteInfo{}
	for _, b := range c.bits {
		info.Bits = append(info.Bits, BitAccess{Bit: b, Write: true})
	}
	return info
}

func (c *Classical) Clone() Node {
	bits := make([]int, len(c.bits))
	copy(bits, c.bits)
	return &Classical{Cmd: c.Cmd.Clone(), bits: bits}
}

func (c *Classical) String() string {
	return fmt.Sprintf("classical %v", c.Cmd)
}

// BlockRotation is one rotation inside a conditional block.
type BlockRotation struct {
	Str    pauli.String
	Weight int
	Angle  float64
}

// ConditionalBlock groups the rotations of classically controlled gates
// sharing one condition. Blocks with equal conditions merge without a
// commutation check: the grouped rotations execute atomically, so their
// relative order is preserved anyway.
type ConditionalBlock struct {
	Rotations []BlockRotation
	Cond      circuit.Condition
}

// NewConditionalBlock builds a block from its first rotation.
func NewConditionalBlock(cond circuit.Condition) *ConditionalBlock {
	return &ConditionalBlock{Cond: cond}
}

// AppendRotation adds a rotation to the block, folding the string sign
// into the angle.
func (b *ConditionalBlock) AppendRotation(s pauli.String, angle float64) error {
	if s.Negative {
		s = s.Clone()
		s.Negative = false
		angle = -angle
	}
	w := s.Weight()
	if s.Len() == 0 || w == 0 {
		return errors.New(errors.ErrCodeInvalidPauliString, "conditional rotation on identity string")
	}
	b.Rotations = append(b.Rotations, BlockRotation{Str: s, Weight: w, Angle: angle})
	return nil
}

// Merge appends another block's rotations. The conditions must be equal.
func (b *ConditionalBlock) Merge(o *ConditionalBlock) {
	b.Rotations = append(b.Rotations, o.Rotations...)
}

func (b *ConditionalBlock) Kind() NodeKind { return KindConditional }

func (b *ConditionalBlock) TQECost() int {
	cost := 0
	for _, r := range b.Rotations {
		cost += r.Weight - 1
	}
	return cost
}

func (b *ConditionalBlock) TQECostDelta(e pauli.TQE) int {
	delta := 0
	for _, r := range b.Rotations {
		delta += pauli.TQECostDelta(e.Type, r.Str.Letters[e.Q0], r.Str.Letters[e.Q1])
	}
	return delta
}

func (b *ConditionalBlock) CommitTQE(e pauli.TQE) {
	for i := range b.Rotations {
		r := &b.Rotations[i]
		p0, p1 := r.Str.Letters[e.Q0], r.Str.Letters[e.Q1]
		n0, n1, keep := pauli.ConjugateTQE(e.Type, p0, p1)
		r.Str.Letters[e.Q0] = n0
		r.Str.Letters[e.Q1] = n1
		r.Weight += pauli.TQECostDelta(e.Type, p0, p1)
		if !keep {
			r.Str.Negative = !r.Str.Negative
		}
	}
}

func (b *ConditionalBlock) ReductionTQEs() []pauli.TQE {
	seen := map[pauli.TQE]bool{}
	var tqes []pauli.TQE
	for _, r := range b.Rotations {
		if r.Weight < 2 {
			continue
		}
		var supp []int
		for i, p := range r.Str.Letters {
			if p != pauli.I {
				supp = append(supp, i)
			}
		}
		for i := 0; i+1 < len(supp); i++ {
			for j := i + 1; j < len(supp); j++ {
				a, bq := supp[i], supp[j]
				for _, tt := range pauli.ReductionTQEs(r.Str.Letters[a], r.Str.Letters[bq]) {
					e := pauli.TQE{Type: tt, Q0: a, Q1: bq}
					if !seen[e] {
						seen[e] = true
						tqes = append(tqes, e)
					}
				}
			}
		}
	}
	return tqes
}

func (b *ConditionalBlock) CommuteInfo() CommuteInfo {
	info := CommuteInfo{}
	for _, r := range b.Rotations {
		info.Strings = append(info.Strings, r.Str)
	}
	for _, bit := range b.Cond.Bits {
		info.Bits = append(info.Bits, BitAccess{Bit: bit})
	}
	return info
}

func (b *ConditionalBlock) Clone() Node {
	cp := &ConditionalBlock{
		Rotations: make([]BlockRotation, len(b.Rotations)),
		Cond:      b.Cond,
	}
	for i, r := range b.Rotations {
		cp.Rotations[i] = BlockRotation{Str: r.Str.Clone(), Weight: r.Weight, Angle: r.Angle}
	}
	bits := make([]int, len(b.Cond.Bits))
	copy(bits, b.Cond.Bits)
	cp.Cond.Bits = bits
	return cp
}

func (b *ConditionalBlock) String() string {
	parts := make([]string, len(b.Rotations))
	for i, r := range b.Rotations {
		parts[i] = fmt.Sprintf("%v (%g)", r.Str, r.Angle)
	}
	return fmt.Sprintf("conditional c%v==%d: %s", b.Cond.Bits, b.Cond.Value, strings.Join(parts, "; "))
}
