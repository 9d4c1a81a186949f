// Package tableau implements a symplectic Clifford tableau accumulating
// the Clifford structure of a circuit at its end. For a Clifford segment
// U over n qubits it stores, per qubit i, the signed Pauli strings
// U†·Z_i·U and U†·X_i·U. Strings expressed in the frame before U are
// conjugated through it by row products; gates and quarter-turn Pauli
// rotations appended to U update the rows in place.
package tableau

import (
	"fmt"

	"github.com/quantforge/qweave/pkg/pauli"
)

// Tableau tracks the Clifford segment at the end of a circuit.
type Tableau struct {
	n     int
	zRows []pauli.String
	xRows []pauli.String
}

// New returns the identity tableau over n qubits.
func New(n int) *Tableau {
	t := &Tableau{
		n:     n,
		zRows: make([]pauli.String, n),
		xRows: make([]pauli.String, n),
	}
	for q := 0; q < n; q++ {
		t.zRows[q] = pauli.NewString(n)
		t.zRows[q].Letters[q] = pauli.Z
		t.xRows[q] = pauli.NewString(n)
		t.xRows[q].Letters[q] = pauli.X
	}
	return t
}

// N returns the qubit count.
func (t *Tableau) N() int { return t.n }

// ZRow returns a copy of the Z row for qubit q.
func (t *Tableau) ZRow(q int) pauli.String { return t.zRows[q].Clone() }

// XRow returns a copy of the X row for qubit q.
func (t *Tableau) XRow(q int) pauli.String { return t.xRows[q].Clone() }

// Clone returns a deep copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	out := &Tableau{
		n:     t.n,
		zRows: make([]pauli.String, t.n),
		xRows: make([]pauli.String, t.n),
	}
	for q := 0; q < t.n; q++ {
		out.zRows[q] = t.zRows[q].Clone()
		out.xRows[q] = t.xRows[q].Clone()
	}
	return out
}

// IsIdentity reports whether the tableau is the identity Clifford.
func (t *Tableau) IsIdentity() bool {
	for q := 0; q < t.n; q++ {
		if t.zRows[q].Negative || t.xRows[q].Negative {
			return false
		}
		for j, l := range t.zRows[q].Letters {
			want := pauli.I
			if j == q {
				want = pauli.Z
			}
			if l != want {
				return false
			}
		}
		for j, l := range t.xRows[q].Letters {
			want := pauli.I
			if j == q {
				want = pauli.X
			}
			if l != want {
				return false
			}
		}
	}
	return true
}

// Conjugate pushes a signed Pauli string from the frame at the end of U
// to the frame before it, i.e. returns U†·p·U, by decomposing p into
// X/Z factors and multiplying the corresponding rows. Each Y letter
// contributes an i from Y = iXZ; the total phase must come out real.
func (t *Tableau) Conjugate(p pauli.String) pauli.String {
	out := pauli.NewString(t.n)
	out.Negative = p.Negative
	phase := 0
	for q, letter := range p.Letters {
		switch letter {
		case pauli.I:
		case pauli.X:
			out, phase = mulAcc(out, t.xRows[q], phase)
		case pauli.Z:
			out, phase = mulAcc(out, t.zRows[q], phase)
		case pauli.Y:
			phase++
			out, phase = mulAcc(out, t.xRows[q], phase)
			out, phase = mulAcc(out, t.zRows[q], phase)
		}
	}
	phase %= 4
	if phase == 2 {
		out.Negative = !out.Negative
	} else if phase != 0 {
		panic(fmt.Sprintf("tableau: imaginary phase i^%d conjugating %v", phase, p))
	}
	return out
}

func mulAcc(acc, row pauli.String, phase int) (pauli.String, int) {
	prod, k := acc.Mul(row)
	return prod, phase + int(k)
}

// rowY returns the Y row for qubit q, the product i·X-row·Z-row.
func (t *Tableau) rowY(q int) pauli.String {
	prod, k := t.xRows[q].Mul(t.zRows[q])
	if k != 1 {
		panic("tableau: X and Z rows commute")
	}
	// i * i = -1
	prod.Negative = !prod.Negative
	return prod
}

func (t *Tableau) rowFor(letter pauli.Pauli, q int) pauli.String {
	switch letter {
	case pauli.X:
		return t.xRows[q].Clone()
	case pauli.Y:
		return t.rowY(q)
	case pauli.Z:
		return t.zRows[q].Clone()
	}
	panic("tableau: identity letter has no row")
}

// AppendLocal appends a single-qubit Clifford gate to the end of U.
func (t *Tableau) AppendLocal(g pauli.LocalClifford, q int) {
	zl, zKeep := pauli.ConjugateClifford(g, pauli.Z)
	xl, xKeep := pauli.ConjugateClifford(g, pauli.X)
	newZ := t.rowFor(zl, q)
	newX := t.rowFor(xl, q)
	if !zKeep {
		newZ.Negative = !newZ.Negative
	}
	if !xKeep {
		newX.Negative = !newX.Negative
	}
	t.zRows[q] = newZ
	t.xRows[q] = newX
}

// pairImage builds the front-frame image of the end-frame string
// ±(n0 at a)·(n1 at b) as a product of current rows.
func (t *Tableau) pairImage(n0, n1 pauli.Pauli, keep bool, a, b int) pauli.String {
	var out pauli.String
	switch {
	case n1 == pauli.I:
		out = t.rowFor(n0, a)
	case n0 == pauli.I:
		out = t.rowFor(n1, b)
	default:
		prod, k := t.rowFor(n0, a).Mul(t.rowFor(n1, b))
		if k != 0 {
			panic("tableau: rows for disjoint qubits anticommute")
		}
		out = prod
	}
	if !keep {
		out.Negative = !out.Negative
	}
	return out
}

// AppendTQE appends a two-qubit entangling basis change to the end of
// U. Only the four rows of the two touched qubits change; each becomes
// a product of old rows selected by the conjugation table.
func (t *Tableau) AppendTQE(e pauli.TQE) {
	zn0a, zn1a, zKeepA := pauli.ConjugateTQE(e.Type, pauli.Z, pauli.I)
	xn0a, xn1a, xKeepA := pauli.ConjugateTQE(e.Type, pauli.X, pauli.I)
	zn0b, zn1b, zKeepB := pauli.ConjugateTQE(e.Type, pauli.I, pauli.Z)
	xn0b, xn1b, xKeepB := pauli.ConjugateTQE(e.Type, pauli.I, pauli.X)
	newZA := t.pairImage(zn0a, zn1a, zKeepA, e.Q0, e.Q1)
	newXA := t.pairImage(xn0a, xn1a, xKeepA, e.Q0, e.Q1)
	newZB := t.pairImage(zn0b, zn1b, zKeepB, e.Q0, e.Q1)
	newXB := t.pairImage(xn0b, xn1b, xKeepB, e.Q0, e.Q1)
	t.zRows[e.Q0] = newZA
	t.xRows[e.Q0] = newXA
	t.zRows[e.Q1] = newZB
	t.xRows[e.Q1] = newXB
}

// AppendSwap appends a SWAP gate to the end of U.
func (t *Tableau) AppendSwap(a, b int) {
	t.zRows[a], t.zRows[b] = t.zRows[b], t.zRows[a]
	t.xRows[a], t.xRows[b] = t.xRows[b], t.xRows[a]
}

// ApplyPauliAtFront folds a quarter-turn Pauli rotation exp(-i·pi/4·
// quarter·p) into the front of U, with p expressed in the frame before
// U. Rows commuting with p are untouched; an anticommuting row R
// becomes -i·R·p per quarter turn.
func (t *Tableau) ApplyPauliAtFront(p pauli.String, quarter int) {
	quarter = ((quarter % 4) + 4) % 4
	if quarter == 0 || p.IsIdentity() {
		return
	}
	for _, rows := range [][]pauli.String{t.zRows, t.xRows} {
		for i := range rows {
			if rows[i].Commutes(p) {
				continue
			}
			if quarter == 2 {
				rows[i].Negative = !rows[i].Negative
				continue
			}
			prod, k := rows[i].Mul(p)
			if k != 1 {
				panic("tableau: real product for anticommuting strings")
			}
			if quarter == 3 {
				prod.Negative = !prod.Negative
			}
			rows[i] = prod
		}
	}
}

// ApplyPauliAtEnd folds a quarter-turn Pauli rotation into the end of
// U, with p expressed in the frame after U.
func (t *Tableau) ApplyPauliAtEnd(p pauli.String, quarter int) {
	t.ApplyPauliAtFront(t.Conjugate(p), quarter)
}
