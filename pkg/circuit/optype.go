// Package circuit provides the gate-level command stream the synthesis
// pipeline consumes and produces: typed operations over named qubit and
// bit registers, rotation angles in half-turns, gate statistics, and
// JSON serialization.
package circuit

// OpType identifies an operation kind.
type OpType uint8

const (
	OpNoop OpType = iota

	// Fixed single-qubit Cliffords
	OpH
	OpS
	OpSdg
	OpV
	OpVdg
	OpX
	OpY
	OpZ

	// Fixed two-qubit Cliffords
	OpCX
	OpCY
	OpCZ
	OpSWAP
	OpZZMax

	// Parameterised rotations
	OpT
	OpTdg
	OpRz
	OpRx
	OpRy
	OpPhasedX
	OpZZPhase
	OpXXPhase
	OpYYPhase
	OpPhaseGadget

	// Pauli exponentials
	OpPauliExp
	OpPauliExpPair
	OpPauliExpCommutingSet

	// Non-unitary and classical
	OpMeasure
	OpReset
	OpClassical
	OpBarrier
)

var opNames = map[OpType]string{
	OpNoop:                 "noop",
	OpH:                    "H",
	OpS:                    "S",
	OpSdg:                  "Sdg",
	OpV:                    "V",
	OpVdg:                  "Vdg",
	OpX:                    "X",
	OpY:                    "Y",
	OpZ:                    "Z",
	OpCX:                   "CX",
	OpCY:                   "CY",
	OpCZ:                   "CZ",
	OpSWAP:                 "SWAP",
	OpZZMax:                "ZZMax",
	OpT:                    "T",
	OpTdg:                  "Tdg",
	OpRz:                   "Rz",
	OpRx:                   "Rx",
	OpRy:                   "Ry",
	OpPhasedX:              "PhasedX",
	OpZZPhase:              "ZZPhase",
	OpXXPhase:              "XXPhase",
	OpYYPhase:              "YYPhase",
	OpPhaseGadget:          "PhaseGadget",
	OpPauliExp:             "PauliExp",
	OpPauliExpPair:         "PauliExpPair",
	OpPauliExpCommutingSet: "PauliExpCommutingSet",
	OpMeasure:              "Measure",
	OpReset:                "Reset",
	OpClassical:            "Classical",
	OpBarrier:              "Barrier",
}

var opByName = func() map[string]OpType {
	m := make(map[string]OpType, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

func (op OpType) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// ParseOpType resolves an operation name. The boolean is false for
// unknown names.
func ParseOpType(s string) (OpType, bool) {
	op, ok := opByName[s]
	return op, ok
}

// IsClifford reports whether the operation is a fixed Clifford gate.
// Parameterised rotations may still be Clifford for particular angles;
// that is a property of the command, not the op type.
func (op OpType) IsClifford() bool {
	return op >= OpH && op <= OpZZMax
}

// NumAngles returns how many angle parameters the operation carries.
func (op OpType) NumAngles() int {
	switch op {
	case OpRz, OpRx, OpRy, OpZZPhase, OpXXPhase, OpYYPhase, OpPhaseGadget,
		OpPauliExp:
		return 1
	case OpPhasedX, OpPauliExpPair:
		return 2
	default:
		return 0
	}
}
