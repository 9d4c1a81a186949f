package pauligraph

import (
	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
)

// FromCircuit folds a whole circuit into a graph with a single
// left-to-right pass. On error the returned graph is nil and the input
// circuit is untouched.
func FromCircuit(c *circuit.Circuit) (*Graph, error) {
	g := NewGraph(c.NQubits, c.NBits)
	g.phase = c.Phase
	for i, cmd := range c.Commands {
		if err := g.ApplyGateAtEnd(cmd); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "command %d (%v)", i, cmd)
		}
	}
	return g, nil
}

// pauliPattern is a rotation over the qubits of one command.
type pauliPattern struct {
	letters []pauli.Pauli
	angle   float64
}

// ApplyGateAtEnd folds one command into the graph. Clifford gates
// decompose into quarter-turn Pauli rotations absorbed by the tableau;
// non-Clifford rotations are pushed through the tableau and appended as
// nodes; measures, resets and classical ops become nodes of their own
// kind. Conditional gates group their rotations into one block node.
func (g *Graph) ApplyGateAtEnd(cmd circuit.Command) error {
	var rots []pauliPattern

	switch cmd.Op {
	case circuit.OpNoop:
		return nil

	case circuit.OpMeasure:
		if cmd.Condition != nil {
			return errors.New(errors.ErrCodeUnsupportedOp, "conditional measurement")
		}
		if len(cmd.Qubits) != 1 || len(cmd.Bits) != 1 {
			return errors.New(errors.ErrCodeInvalidArity, "measure takes one qubit and one bit")
		}
		node, err := NewMidMeasure(g.tab.ZRow(cmd.Qubits[0]), cmd.Bits[0])
		if err != nil {
			return err
		}
		g.ApplyNodeAtEnd(node)
		return nil

	case circuit.OpReset:
		if cmd.Condition != nil {
			return errors.New(errors.ErrCodeUnsupportedOp, "conditional reset")
		}
		if len(cmd.Qubits) != 1 {
			return errors.New(errors.ErrCodeInvalidArity, "reset takes one qubit")
		}
		q := cmd.Qubits[0]
		node, err := NewReset(g.tab.ZRow(q), g.tab.XRow(q))
		if err != nil {
			return err
		}
		g.ApplyNodeAtEnd(node)
		return nil

	case circuit.OpClassical:
		if cmd.Condition != nil {
			return errors.New(errors.ErrCodeUnsupportedOp, "conditional classical op")
		}
		g.ApplyNodeAtEnd(NewClassical(cmd))
		return nil

	case circuit.OpZ:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, 1})
	case circuit.OpX:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.X}, 1})
	case circuit.OpY:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Y}, 1})
	case circuit.OpS:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, 0.5})
	case circuit.OpV:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.X}, 0.5})
	case circuit.OpSdg:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, 1.5})
	case circuit.OpVdg:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.X}, 1.5})
	case circuit.OpH:
		rots = fixed(cmd, 1,
			pauliPattern{[]pauli.Pauli{pauli.Y}, 0.5},
			pauliPattern{[]pauli.Pauli{pauli.X}, 1})
	case circuit.OpCX, circuit.OpCY, circuit.OpCZ:
		target := pauli.X
		if cmd.Op == circuit.OpCY {
			target = pauli.Y
		} else if cmd.Op == circuit.OpCZ {
			target = pauli.Z
		}
		rots = fixed(cmd, 2,
			pauliPattern{[]pauli.Pauli{pauli.Z, pauli.I}, 1.5},
			pauliPattern{[]pauli.Pauli{pauli.I, target}, 1.5},
			pauliPattern{[]pauli.Pauli{pauli.Z, target}, 0.5})
	case circuit.OpSWAP:
		rots = fixed(cmd, 2,
			pauliPattern{[]pauli.Pauli{pauli.Z, pauli.Z}, 0.5},
			pauliPattern{[]pauli.Pauli{pauli.X, pauli.X}, 0.5},
			pauliPattern{[]pauli.Pauli{pauli.Y, pauli.Y}, 0.5})
	case circuit.OpZZMax:
		rots = fixed(cmd, 2, pauliPattern{[]pauli.Pauli{pauli.Z, pauli.Z}, 0.5})
	case circuit.OpT:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, 0.25})
	case circuit.OpTdg:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, -0.25})
	case circuit.OpRz:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Z}, cmd.Angles[0]})
	case circuit.OpRx:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.X}, cmd.Angles[0]})
	case circuit.OpRy:
		rots = fixed(cmd, 1, pauliPattern{[]pauli.Pauli{pauli.Y}, cmd.Angles[0]})
	case circuit.OpPhasedX:
		alpha, beta := cmd.Angles[0], cmd.Angles[1]
		rots = fixed(cmd, 1,
			pauliPattern{[]pauli.Pauli{pauli.Z}, -beta},
			pauliPattern{[]pauli.Pauli{pauli.X}, alpha},
			pauliPattern{[]pauli.Pauli{pauli.Z}, beta})
	case circuit.OpZZPhase:
		rots = fixed(cmd, 2, pauliPattern{[]pauli.Pauli{pauli.Z, pauli.Z}, cmd.Angles[0]})
	case circuit.OpXXPhase:
		rots = fixed(cmd, 2, pauliPattern{[]pauli.Pauli{pauli.X, pauli.X}, cmd.Angles[0]})
	case circuit.OpYYPhase:
		rots = fixed(cmd, 2, pauliPattern{[]pauli.Pauli{pauli.Y, pauli.Y}, cmd.Angles[0]})
	case circuit.OpPhaseGadget:
		letters := make([]pauli.Pauli, len(cmd.Qubits))
		for i := range letters {
			letters[i] = pauli.Z
		}
		rots = []pauliPattern{{letters, cmd.Angles[0]}}
	case circuit.OpPauliExp, circuit.OpPauliExpPair, circuit.OpPauliExpCommutingSet:
		if len(cmd.Paulis) != len(cmd.Angles) || len(cmd.Paulis) == 0 {
			return errors.New(errors.ErrCodeInvalidArity,
				"%s carries %d strings and %d angles", cmd.Op, len(cmd.Paulis), len(cmd.Angles))
		}
		for i, p := range cmd.Paulis {
			if p.Len() != len(cmd.Qubits) {
				return errors.New(errors.ErrCodeInvalidArity,
					"pauli string %v over %d qubits", p, len(cmd.Qubits))
			}
			angle := cmd.Angles[i]
			if p.Negative {
				angle = -angle
			}
			rots = append(rots, pauliPattern{p.Letters, angle})
		}
	default:
		return errors.New(errors.ErrCodeUnsupportedOp, "cannot add %s to a pauli graph", cmd.Op)
	}

	if rots == nil {
		return errors.New(errors.ErrCodeInvalidArity,
			"%s applied to %d qubits", cmd.Op, len(cmd.Qubits))
	}

	var block *ConditionalBlock
	if cmd.Condition != nil {
		block = NewConditionalBlock(*cmd.Condition)
	}
	for _, r := range rots {
		if err := g.applyPauliAtEnd(r.letters, r.angle, cmd.Qubits, block); err != nil {
			return err
		}
	}
	if block != nil && len(block.Rotations) > 0 {
		g.ApplyNodeAtEnd(block)
	}
	return nil
}

// fixed guards a decomposition against the wrong qubit count.
func fixed(cmd circuit.Command, arity int, patterns ...pauliPattern) []pauliPattern {
	if len(cmd.Qubits) != arity {
		return nil
	}
	return patterns
}

// applyPauliAtEnd folds one rotation exp(-i*pi/2*angle*P) into the
// graph. Identity strings and whole-turn angles only contribute global
// phase. Unconditional Clifford angles fold into the tableau; anything
// else is pushed through the tableau and appended as a node (or added
// to the surrounding conditional block).
func (g *Graph) applyPauliAtEnd(pattern []pauli.Pauli, angle float64, qubits []int, block *ConditionalBlock) error {
	dense := pauli.NewString(g.nQubits)
	identity := true
	for i, q := range qubits {
		dense.Letters[q] = pattern[i]
		if pattern[i] != pauli.I {
			identity = false
		}
	}
	if identity {
		g.phase = circuit.NormalizePhase(g.phase - angle/2)
		return nil
	}
	if circuit.IsCliffordAngle(angle) && block == nil {
		// Quarter-turn reduction sheds an even number of half-turns,
		// a pure sign that must land in the global phase.
		g.phase = circuit.NormalizePhase(g.phase + circuit.CliffordResidualPhase(angle))
		if quarter := circuit.QuarterTurns(angle); quarter != 0 {
			g.tab.ApplyPauliAtEnd(dense, quarter)
		}
		return nil
	}
	pushed := g.tab.Conjugate(dense)
	if block != nil {
		return block.AppendRotation(pushed, angle)
	}
	node, err := NewRotation(pushed, angle)
	if err != nil {
		return err
	}
	g.ApplyNodeAtEnd(node)
	return nil
}
