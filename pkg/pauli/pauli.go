// Package pauli implements the Pauli-letter algebra used throughout the
// synthesis pipeline: signed Pauli strings over a qubit register, phase
// tracked products, commutation tests, and the conjugation lookup tables
// for two-qubit entangling basis changes.
package pauli

import (
	"strings"

	"github.com/quantforge/qweave/pkg/errors"
)

// Pauli is a single-qubit Pauli letter.
type Pauli uint8

const (
	I Pauli = iota
	X
	Y
	Z
)

func (p Pauli) String() string {
	switch p {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return "?"
}

// Commutes reports whether the two letters commute. Identity commutes
// with everything; distinct non-identity letters anticommute.
func (p Pauli) Commutes(q Pauli) bool {
	return p == I || q == I || p == q
}

// letterMul multiplies two letters, returning the resulting letter and
// the power of i picked up, mod 4. XY = iZ, YZ = iX, ZX = iY, and the
// reversed orders pick up i^3.
func letterMul(p, q Pauli) (Pauli, uint8) {
	if p == I {
		return q, 0
	}
	if q == I {
		return p, 0
	}
	if p == q {
		return I, 0
	}
	r := p ^ q // X^Y=Z etc. under the encoding above
	// Cyclic order X -> Y -> Z gains i, the reverse gains -i.
	if q == p%3+1 {
		return r, 1
	}
	return r, 3
}

// String is a signed Pauli operator over a fixed-size qubit register.
// Sign is +1 when Negative is false. The zero value is the identity on
// an empty register.
type String struct {
	Letters  []Pauli
	Negative bool
}

// NewString returns the identity string over n qubits.
func NewString(n int) String {
	return String{Letters: make([]Pauli, n)}
}

// ParseString parses a textual Pauli string such as "XIYZ", "+XIYZ" or
// "-XIYZ" into a signed operator.
func ParseString(s string) (String, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if len(s) == 0 {
		return String{}, errors.New(errors.ErrCodeInvalidPauliString, "empty pauli string")
	}
	letters := make([]Pauli, len(s))
	for i, c := range s {
		switch c {
		case 'I':
			letters[i] = I
		case 'X':
			letters[i] = X
		case 'Y':
			letters[i] = Y
		case 'Z':
			letters[i] = Z
		default:
			return String{}, errors.New(errors.ErrCodeInvalidPauliString, "invalid pauli letter %q", c)
		}
	}
	return String{Letters: letters, Negative: neg}, nil
}

func (s String) String() string {
	var b strings.Builder
	if s.Negative {
		b.WriteByte('-')
	}
	for _, p := range s.Letters {
		b.WriteString(p.String())
	}
	return b.String()
}

// Clone returns a deep copy of the string.
func (s String) Clone() String {
	out := String{Letters: make([]Pauli, len(s.Letters)), Negative: s.Negative}
	copy(out.Letters, s.Letters)
	return out
}

// Len returns the register size the string is defined over.
func (s String) Len() int { return len(s.Letters) }

// Weight counts the non-identity letters.
func (s String) Weight() int {
	w := 0
	for _, p := range s.Letters {
		if p != I {
			w++
		}
	}
	return w
}

// IsIdentity reports whether every letter is I, regardless of sign.
func (s String) IsIdentity() bool {
	for _, p := range s.Letters {
		if p != I {
			return false
		}
	}
	return true
}

// FirstSupport returns the lowest qubit index with a non-identity
// letter, or -1 for the identity string.
func (s String) FirstSupport() int {
	for i, p := range s.Letters {
		if p != I {
			return i
		}
	}
	return -1
}

// Commutes reports whether two strings commute, i.e. whether the number
// of positions where the letters anticommute is even.
func (s String) Commutes(t String) bool {
	n := 0
	for i, p := range s.Letters {
		if !p.Commutes(t.Letters[i]) {
			n++
		}
	}
	return n%2 == 0
}

// Mul computes the product s*t along with the residual power of i mod 4
// after real-sign extraction. Signed strings only ever multiply to an
// overall phase of +-1 or +-i; the caller is responsible for asserting
// which residual phases are legal in its context.
func (s String) Mul(t String) (String, uint8) {
	out := String{Letters: make([]Pauli, len(s.Letters))}
	var phase uint8
	for i, p := range s.Letters {
		r, k := letterMul(p, t.Letters[i])
		out.Letters[i] = r
		phase = (phase + k) % 4
	}
	if s.Negative != t.Negative {
		phase = (phase + 2) % 4
	}
	if phase >= 2 {
		out.Negative = true
		phase -= 2
	}
	return out, phase
}
