package circuit

import (
	"fmt"
	"strings"

	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
)

// Condition makes a command classically controlled: it executes only
// when the given bits, read as a little-endian integer, equal Value.
type Condition struct {
	Bits  []int  `json:"bits"`
	Value uint64 `json:"value"`
}

// Equal reports whether two conditions test the same bits for the same
// value.
func (c *Condition) Equal(o *Condition) bool {
	if (c == nil) != (o == nil) {
		return false
	}
	if c == nil {
		return true
	}
	if c.Value != o.Value || len(c.Bits) != len(o.Bits) {
		return false
	}
	for i, b := range c.Bits {
		if o.Bits[i] != b {
			return false
		}
	}
	return true
}

// Command is a single operation applied to qubits and bits. Angles are
// in half-turns. Paulis carries the generator strings of Pauli
// exponential boxes. ReadBits/WriteBits describe the classical footprint
// of opaque classical operations.
type Command struct {
	Op        OpType         `json:"op"`
	Qubits    []int          `json:"qubits,omitempty"`
	Bits      []int          `json:"bits,omitempty"`
	Angles    []float64      `json:"angles,omitempty"`
	Paulis    []pauli.String `json:"-"`
	ReadBits  []int          `json:"read_bits,omitempty"`
	WriteBits []int          `json:"write_bits,omitempty"`
	Condition *Condition     `json:"condition,omitempty"`
	Name      string         `json:"name,omitempty"` // opaque classical op label
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	if len(c.Angles) > 0 {
		b.WriteByte('(')
		for i, a := range c.Angles {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", a)
		}
		b.WriteByte(')')
	}
	for i, q := range c.Qubits {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "q[%d]", q)
	}
	for i, bit := range c.Bits {
		if i == 0 {
			b.WriteString(" -> ")
		} else {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "c[%d]", bit)
	}
	return b.String()
}

// Clone returns a deep copy of the command.
func (c Command) Clone() Command {
	out := c
	out.Qubits = append([]int(nil), c.Qubits...)
	out.Bits = append([]int(nil), c.Bits...)
	out.Angles = append([]float64(nil), c.Angles...)
	out.ReadBits = append([]int(nil), c.ReadBits...)
	out.WriteBits = append([]int(nil), c.WriteBits...)
	if c.Condition != nil {
		cond := Condition{Bits: append([]int(nil), c.Condition.Bits...), Value: c.Condition.Value}
		out.Condition = &cond
	}
	out.Paulis = make([]pauli.String, len(c.Paulis))
	for i, p := range c.Paulis {
		out.Paulis[i] = p.Clone()
	}
	return out
}

// Circuit is an ordered command stream over dense qubit and bit
// registers. Phase accumulates global phase in half-turns; it carries no
// operational weight but keeps rewrites exactly unitary-equivalent.
type Circuit struct {
	Name     string    `json:"name,omitempty"`
	NQubits  int       `json:"n_qubits"`
	NBits    int       `json:"n_bits"`
	Phase    float64   `json:"phase,omitempty"`
	Commands []Command `json:"commands"`

	// Permutation, when non-nil, maps each wire to the output wire its
	// state ends on after eliminated trailing SWAPs.
	Permutation []int `json:"permutation,omitempty"`
}

// New returns an empty circuit over the given registers.
func New(nQubits, nBits int) *Circuit {
	return &Circuit{NQubits: nQubits, NBits: nBits}
}

// Append adds a command after validating its wires against the
// registers and its angle count against the op type.
func (c *Circuit) Append(cmd Command) error {
	for _, q := range cmd.Qubits {
		if q < 0 || q >= c.NQubits {
			return errors.New(errors.ErrCodeInvalidQubit, "qubit %d out of range [0, %d)", q, c.NQubits)
		}
	}
	bits := make([]int, 0, len(cmd.Bits)+len(cmd.ReadBits)+len(cmd.WriteBits))
	bits = append(bits, cmd.Bits...)
	bits = append(bits, cmd.ReadBits...)
	bits = append(bits, cmd.WriteBits...)
	if cmd.Condition != nil {
		bits = append(bits, cmd.Condition.Bits...)
	}
	for _, b := range bits {
		if b < 0 || b >= c.NBits {
			return errors.New(errors.ErrCodeInvalidInput, "bit %d out of range [0, %d)", b, c.NBits)
		}
	}
	if want := cmd.Op.NumAngles(); len(cmd.Angles) != want &&
		cmd.Op != OpPauliExpCommutingSet && cmd.Op != OpClassical {
		return errors.New(errors.ErrCodeInvalidArity,
			"%s takes %d angles, got %d", cmd.Op, want, len(cmd.Angles))
	}
	for _, a := range cmd.Angles {
		if err := errors.ValidateAngle(a); err != nil {
			return err
		}
	}
	c.Commands = append(c.Commands, cmd)
	return nil
}

// AddGate appends a fixed gate on the given qubits.
func (c *Circuit) AddGate(op OpType, qubits ...int) error {
	return c.Append(Command{Op: op, Qubits: qubits})
}

// AddRotation appends a single-angle rotation on the given qubits.
func (c *Circuit) AddRotation(op OpType, halfTurns float64, qubits ...int) error {
	return c.Append(Command{Op: op, Qubits: qubits, Angles: []float64{halfTurns}})
}

// AddPhase folds a global phase in half-turns into the circuit.
func (c *Circuit) AddPhase(halfTurns float64) {
	c.Phase = NormalizePhase(c.Phase + halfTurns)
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Name: c.Name, NQubits: c.NQubits, NBits: c.NBits, Phase: c.Phase}
	if c.Permutation != nil {
		out.Permutation = append([]int(nil), c.Permutation...)
	}
	out.Commands = make([]Command, len(c.Commands))
	for i, cmd := range c.Commands {
		out.Commands[i] = cmd.Clone()
	}
	return out
}

// Stats summarises gate counts and depths of a circuit.
type Stats struct {
	TotalGates    int `json:"total_gates"`
	TwoQubitGates int `json:"two_qubit_gates"`
	Depth         int `json:"depth"`
	TwoQubitDepth int `json:"two_qubit_depth"`
}

// Stats computes gate counts and depths. Barriers and opaque classical
// operations do not count as gates.
func (c *Circuit) Stats() Stats {
	var s Stats
	depth := make([]int, c.NQubits)
	depth2q := make([]int, c.NQubits)
	for _, cmd := range c.Commands {
		if cmd.Op == OpBarrier || cmd.Op == OpClassical || cmd.Op == OpNoop {
			continue
		}
		s.TotalGates++
		twoQ := len(cmd.Qubits) == 2
		if twoQ {
			s.TwoQubitGates++
		}
		maxD, maxD2 := 0, 0
		for _, q := range cmd.Qubits {
			if depth[q] > maxD {
				maxD = depth[q]
			}
			if depth2q[q] > maxD2 {
				maxD2 = depth2q[q]
			}
		}
		for _, q := range cmd.Qubits {
			depth[q] = maxD + 1
			if twoQ {
				depth2q[q] = maxD2 + 1
			} else {
				depth2q[q] = maxD2
			}
		}
	}
	for q := 0; q < c.NQubits; q++ {
		if depth[q] > s.Depth {
			s.Depth = depth[q]
		}
		if depth2q[q] > s.TwoQubitDepth {
			s.TwoQubitDepth = depth2q[q]
		}
	}
	return s
}
