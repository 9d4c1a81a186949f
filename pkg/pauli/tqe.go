package pauli

import "strconv"

// TQEType identifies a two-qubit entangling basis change by the pair of
// Pauli bases it acts in. The declaration order fixes the packed table
// hash, so new entries must only ever be appended.
type TQEType uint8

const (
	TQEXX TQEType = iota
	TQEXY
	TQEXZ
	TQEYX
	TQEYY
	TQEYZ
	TQEZX
	TQEZY
	TQEZZ
)

var tqeTypeNames = [...]string{"XX", "XY", "XZ", "YX", "YY", "YZ", "ZX", "ZY", "ZZ"}

func (t TQEType) String() string {
	if int(t) < len(tqeTypeNames) {
		return tqeTypeNames[t]
	}
	return "??"
}

// AllTQETypes lists every entangling type, in hash order.
func AllTQETypes() []TQEType {
	return []TQEType{TQEXX, TQEXY, TQEXZ, TQEYX, TQEYY, TQEYZ, TQEZX, TQEZY, TQEZZ}
}

// TQE is a two-qubit entangling basis change applied to an ordered pair
// of qubits. The pair is ordered: the first letter of the type acts on
// Q0 and the second on Q1.
type TQE struct {
	Type   TQEType
	Q0, Q1 int
}

func (t TQE) String() string {
	return t.Type.String() + "(" + strconv.Itoa(t.Q0) + "," + strconv.Itoa(t.Q1) + ")"
}

// LocalClifford is a single-qubit Clifford gate used by the lookup
// tables and by tableau cleanup.
type LocalClifford uint8

const (
	CliffH LocalClifford = iota
	CliffS
	CliffSdg
	CliffV
	CliffVdg
	CliffX
	CliffY
	CliffZ
)

var localCliffordNames = [...]string{"H", "S", "Sdg", "V", "Vdg", "X", "Y", "Z"}

func (g LocalClifford) String() string {
	if int(g) < len(localCliffordNames) {
		return localCliffordNames[g]
	}
	return "?"
}

// Dagger returns the inverse gate.
func (g LocalClifford) Dagger() LocalClifford {
	switch g {
	case CliffS:
		return CliffSdg
	case CliffSdg:
		return CliffS
	case CliffV:
		return CliffVdg
	case CliffVdg:
		return CliffV
	}
	return g
}
