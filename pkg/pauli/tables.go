package pauli

// Conjugation tables for the nine two-qubit entangling basis changes.
// The forward table maps (type, letter pair) to the conjugated letter
// pair and whether the sign is kept. The reverse tables answer the
// synthesis question: which types reduce a given letter pair towards
// identity, or move a pair between commutation classes.

const tableSize = 9 * 16

type conjugateRow struct {
	t      TQEType
	p0, p1 Pauli
	n0, n1 Pauli
	keep   bool
}

// hashTQE packs a (type, letter pair) triple into a dense table index.
func hashTQE(t TQEType, p0, p1 Pauli) int {
	return int(t)<<4 | int(p0)<<2 | int(p1)
}

type conjugateEntry struct {
	n0, n1 Pauli
	keep   bool
}

var (
	conjugateTable [tableSize]conjugateEntry
	trivialTable   [tableSize]bool
	costDeltaTable [tableSize]int8

	reductionPairs [16][]TQEType
	ccToReduce     map[uint16][]TQEType
	aaToCC         map[uint16][]TQEType
	acToAI         map[uint16][]TQEType
	aaToZX         map[uint8][]LocalClifford
	cliffordConj   [32]struct {
		np   Pauli
		keep bool
	}
)

func hashQuad(p0, p1, q0, q1 Pauli) uint16 {
	return uint16(p0)<<6 | uint16(p1)<<4 | uint16(q0)<<2 | uint16(q1)
}

func init() {
	for _, r := range conjugateRows {
		conjugateTable[hashTQE(r.t, r.p0, r.p1)] = conjugateEntry{r.n0, r.n1, r.keep}
		trivialTable[hashTQE(r.t, r.p0, r.p1)] = r.n0 == r.p0 && r.n1 == r.p1 && r.keep
		before, after := int8(0), int8(0)
		if r.p0 != I {
			before++
		}
		if r.p1 != I {
			before++
		}
		if r.n0 != I {
			after++
		}
		if r.n1 != I {
			after++
		}
		costDeltaTable[hashTQE(r.t, r.p0, r.p1)] = after - before
	}
	for _, r := range reductionPairRows {
		reductionPairs[int(r.p)<<2|int(r.q)] = r.tqes
	}
	ccToReduce = make(map[uint16][]TQEType, len(ccToReduceRows))
	for _, r := range ccToReduceRows {
		ccToReduce[hashQuad(r.p0, r.p1, r.q0, r.q1)] = r.tqes
	}
	aaToCC = make(map[uint16][]TQEType, len(aaToCCRows))
	for _, r := range aaToCCRows {
		aaToCC[hashQuad(r.p0, r.p1, r.q0, r.q1)] = r.tqes
	}
	acToAI = make(map[uint16][]TQEType, len(acToAIRows))
	for _, r := range acToAIRows {
		acToAI[hashQuad(r.p0, r.p1, r.q0, r.q1)] = r.tqes
	}
	aaToZX = make(map[uint8][]LocalClifford, len(aaToZXRows))
	for _, r := range aaToZXRows {
		aaToZX[uint8(r.p)<<2|uint8(r.q)] = r.gates
	}
	for p := I; p <= Z; p++ {
		for g := CliffH; g <= CliffZ; g++ {
			cliffordConj[int(g)<<2|int(p)] = struct {
				np   Pauli
				keep bool
			}{p, true}
		}
	}
	for _, r := range cliffordConjRows {
		cliffordConj[int(r.g)<<2|int(r.p)] = struct {
			np   Pauli
			keep bool
		}{r.np, r.keep}
	}
}

// ConjugateTQE conjugates a letter pair by an entangling type, returning
// the new pair and whether the sign is preserved.
func ConjugateTQE(t TQEType, p0, p1 Pauli) (Pauli, Pauli, bool) {
	e := conjugateTable[hashTQE(t, p0, p1)]
	return e.n0, e.n1, e.keep
}

// TQETrivial reports whether conjugation by the type leaves the letter
// pair unchanged with its sign kept.
func TQETrivial(t TQEType, p0, p1 Pauli) bool {
	return trivialTable[hashTQE(t, p0, p1)]
}

// TQECostDelta returns the change in the pair's non-identity count under
// conjugation: -1, 0 or +1.
func TQECostDelta(t TQEType, p0, p1 Pauli) int {
	return int(costDeltaTable[hashTQE(t, p0, p1)])
}

// ReductionTQEs lists the four entangling types turning the non-identity
// letter pair (p, q) into (p, I).
func ReductionTQEs(p, q Pauli) []TQEType {
	return reductionPairs[int(p)<<2|int(q)]
}

// CCToReduceTQEs lists the types taking a commuting two-letter pair of
// strings one step closer to single support.
func CCToReduceTQEs(p0, p1, q0, q1 Pauli) []TQEType {
	return ccToReduce[hashQuad(p0, p1, q0, q1)]
}

// AAToCCTQEs lists the types turning a doubly anticommuting letter pair
// of strings into a commuting pair.
func AAToCCTQEs(p0, p1, q0, q1 Pauli) []TQEType {
	return aaToCC[hashQuad(p0, p1, q0, q1)]
}

// ACToAITQEs lists the types clearing the commuting column of a mixed
// anticommuting/commuting letter pair of strings.
func ACToAITQEs(p0, p1, q0, q1 Pauli) []TQEType {
	return acToAI[hashQuad(p0, p1, q0, q1)]
}

// AAToZXGates returns the local Clifford sequence rotating the
// anticommuting letter pair (p, q) onto (Z, X).
func AAToZXGates(p, q Pauli) []LocalClifford {
	return aaToZX[uint8(p)<<2|uint8(q)]
}

// ConjugateClifford conjugates a single letter by a local Clifford gate,
// returning the new letter and whether the sign is preserved.
func ConjugateClifford(g LocalClifford, p Pauli) (Pauli, bool) {
	e := cliffordConj[int(g)<<2|int(p)]
	return e.np, e.keep
}

var conjugateRows = [tableSize]conjugateRow{
	{TQEXX, X, X, X, X, true},
	{TQEXY, X, X, I, X, true},
	{TQEXZ, X, X, I, X, true},
	{TQEYX, X, X, X, I, true},
	{TQEYY, X, X, Z, Z, true},
	{TQEYZ, X, X, Z, Y, false},
	{TQEZX, X, X, X, I, true},
	{TQEZY, X, X, Y, Z, false},
	{TQEZZ, X, X, Y, Y, true},
	{TQEXX, X, Y, I, Y, true},
	{TQEXY, X, Y, X, Y, true},
	{TQEXZ, X, Y, I, Y, true},
	{TQEYX, X, Y, Z, Z, false},
	{TQEYY, X, Y, X, I, true},
	{TQEYZ, X, Y, Z, X, true},
	{TQEZX, X, Y, Y, Z, true},
	{TQEZY, X, Y, X, I, true},
	{TQEZZ, X, Y, Y, X, false},
	{TQEXX, X, Z, I, Z, true},
	{TQEXY, X, Z, I, Z, true},
	{TQEXZ, X, Z, X, Z, true},
	{TQEYX, X, Z, Z, Y, true},
	{TQEYY, X, Z, Z, X, false},
	{TQEYZ, X, Z, X, I, true},
	{TQEZX, X, Z, Y, Y, false},
	{TQEZY, X, Z, Y, X, true},
	{TQEZZ, X, Z, X, I, true},
	{TQEXX, X, I, X, I, true},
	{TQEXY, X, I, X, I, true},
	{TQEXZ, X, I, X, I, true},
	{TQEYX, X, I, X, X, true},
	{TQEYY, X, I, X, Y, true},
	{TQEYZ, X, I, X, Z, true},
	{TQEZX, X, I, X, X, true},
	{TQEZY, X, I, X, Y, true},
	{TQEZZ, X, I, X, Z, true},
	{TQEXX, Y, X, Y, I, true},
	{TQEXY, Y, X, Z, Z, false},
	{TQEXZ, Y, X, Z, Y, true},
	{TQEYX, Y, X, Y, X, true},
	{TQEYY, Y, X, I, X, true},
	{TQEYZ, Y, X, I, X, true},
	{TQEZX, Y, X, Y, I, true},
	{TQEZY, Y, X, X, Z, true},
	{TQEZZ, Y, X, X, Y, false},
	{TQEXX, Y, Y, Z, Z, true},
	{TQEXY, Y, Y, Y, I, true},
	{TQEXZ, Y, Y, Z, X, false},
	{TQEYX, Y, Y, I, Y, true},
	{TQEYY, Y, Y, Y, Y, true},
	{TQEYZ, Y, Y, I, Y, true},
	{TQEZX, Y, Y, X, Z, false},
	{TQEZY, Y, Y, Y, I, true},
	{TQEZZ, Y, Y, X, X, true},
	{TQEXX, Y, Z, Z, Y, false},
	{TQEXY, Y, Z, Z, X, true},
	{TQEXZ, Y, Z, Y, I, true},
	{TQEYX, Y, Z, I, Z, true},
	{TQEYY, Y, Z, I, Z, true},
	{TQEYZ, Y, Z, Y, Z, true},
	{TQEZX, Y, Z, X, Y, true},
	{TQEZY, Y, Z, X, X, false},
	{TQEZZ, Y, Z, Y, I, true},
	{TQEXX, Y, I, Y, X, true},
	{TQEXY, Y, I, Y, Y, true},
	{TQEXZ, Y, I, Y, Z, true},
	{TQEYX, Y, I, Y, I, true},
	{TQEYY, Y, I, Y, I, true},
	{TQEYZ, Y, I, Y, I, true},
	{TQEZX, Y, I, Y, X, true},
	{TQEZY, Y, I, Y, Y, true},
	{TQEZZ, Y, I, Y, Z, true},
	{TQEXX, Z, X, Z, I, true},
	{TQEXY, Z, X, Y, Z, true},
	{TQEXZ, Z, X, Y, Y, false},
	{TQEYX, Z, X, Z, I, true},
	{TQEYY, Z, X, X, Z, false},
	{TQEYZ, Z, X, X, Y, true},
	{TQEZX, Z, X, Z, X, true},
	{TQEZY, Z, X, I, X, true},
	{TQEZZ, Z, X, I, X, true},
	{TQEXX, Z, Y, Y, Z, false},
	{TQEXY, Z, Y, Z, I, true},
	{TQEXZ, Z, Y, Y, X, true},
	{TQEYX, Z, Y, X, Z, true},
	{TQEYY, Z, Y, Z, I, true},
	{TQEYZ, Z, Y, X, X, false},
	{TQEZX, Z, Y, I, Y, true},
	{TQEZY, Z, Y, Z, Y, true},
	{TQEZZ, Z, Y, I, Y, true},
	{TQEXX, Z, Z, Y, Y, true},
	{TQEXY, Z, Z, Y, X, false},
	{TQEXZ, Z, Z, Z, I, true},
	{TQEYX, Z, Z, X, Y, false},
	{TQEYY, Z, Z, X, X, true},
	{TQEYZ, Z, Z, Z, I, true},
	{TQEZX, Z, Z, I, Z, true},
	{TQEZY, Z, Z, I, Z, true},
	{TQEZZ, Z, Z, Z, Z, true},
	{TQEXX, Z, I, Z, X, true},
	{TQEXY, Z, I, Z, Y, true},
	{TQEXZ, Z, I, Z, Z, true},
	{TQEYX, Z, I, Z, X, true},
	{TQEYY, Z, I, Z, Y, true},
	{TQEYZ, Z, I, Z, Z, true},
	{TQEZX, Z, I, Z, I, true},
	{TQEZY, Z, I, Z, I, true},
	{TQEZZ, Z, I, Z, I, true},
	{TQEXX, I, X, I, X, true},
	{TQEXY, I, X, X, X, true},
	{TQEXZ, I, X, X, X, true},
	{TQEYX, I, X, I, X, true},
	{TQEYY, I, X, Y, X, true},
	{TQEYZ, I, X, Y, X, true},
	{TQEZX, I, X, I, X, true},
	{TQEZY, I, X, Z, X, true},
	{TQEZZ, I, X, Z, X, true},
	{TQEXX, I, Y, X, Y, true},
	{TQEXY, I, Y, I, Y, true},
	{TQEXZ, I, Y, X, Y, true},
	{TQEYX, I, Y, Y, Y, true},
	{TQEYY, I, Y, I, Y, true},
	{TQEYZ, I, Y, Y, Y, true},
	{TQEZX, I, Y, Z, Y, true},
	{TQEZY, I, Y, I, Y, true},
	{TQEZZ, I, Y, Z, Y, true},
	{TQEXX, I, Z, X, Z, true},
	{TQEXY, I, Z, X, Z, true},
	{TQEXZ, I, Z, I, Z, true},
	{TQEYX, I, Z, Y, Z, true},
	{TQEYY, I, Z, Y, Z, true},
	{TQEYZ, I, Z, I, Z, true},
	{TQEZX, I, Z, Z, Z, true},
	{TQEZY, I, Z, Z, Z, true},
	{TQEZZ, I, Z, I, Z, true},
	{TQEXX, I, I, I, I, true},
	{TQEXY, I, I, I, I, true},
	{TQEXZ, I, I, I, I, true},
	{TQEYX, I, I, I, I, true},
	{TQEYY, I, I, I, I, true},
	{TQEYZ, I, I, I, I, true},
	{TQEZX, I, I, I, I, true},
	{TQEZY, I, I, I, I, true},
	{TQEZZ, I, I, I, I, true},
}

var reductionPairRows = []struct {
	p, q Pauli
	tqes []TQEType
}{
	{X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEZX}},
	{X, Y, []TQEType{TQEXX, TQEXZ, TQEYY, TQEZY}},
	{X, Z, []TQEType{TQEXX, TQEXY, TQEYZ, TQEZZ}},
	{Y, X, []TQEType{TQEXX, TQEYY, TQEYZ, TQEZX}},
	{Y, Y, []TQEType{TQEXY, TQEYX, TQEYZ, TQEZY}},
	{Y, Z, []TQEType{TQEXZ, TQEYX, TQEYY, TQEZZ}},
	{Z, X, []TQEType{TQEXX, TQEYX, TQEZY, TQEZZ}},
	{Z, Y, []TQEType{TQEXY, TQEYY, TQEZX, TQEZZ}},
	{Z, Z, []TQEType{TQEXZ, TQEYZ, TQEZX, TQEZY}},
}

var ccToReduceRows = []struct {
	p0, p1, q0, q1 Pauli
	tqes           []TQEType
}{
	{X, X, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEZX}},
	{X, X, X, I, nil},
	{X, X, I, X, nil},
	{X, X, I, I, []TQEType{TQEXY, TQEXZ, TQEYX, TQEZX}},
	{X, Y, X, Y, []TQEType{TQEXX, TQEXZ, TQEYY, TQEZY}},
	{X, Y, X, I, nil},
	{X, Y, I, Y, nil},
	{X, Y, I, I, []TQEType{TQEXX, TQEXZ, TQEYY, TQEZY}},
	{X, Z, X, Z, []TQEType{TQEXX, TQEXY, TQEYZ, TQEZZ}},
	{X, Z, X, I, nil},
	{X, Z, I, Z, nil},
	{X, Z, I, I, []TQEType{TQEXX, TQEXY, TQEYZ, TQEZZ}},
	{X, I, X, X, nil},
	{X, I, X, Y, nil},
	{X, I, X, Z, nil},
	{X, I, I, X, nil},
	{X, I, I, Y, nil},
	{X, I, I, Z, nil},
	{Y, X, Y, X, []TQEType{TQEXX, TQEYY, TQEYZ, TQEZX}},
	{Y, X, Y, I, nil},
	{Y, X, I, X, nil},
	{Y, X, I, I, []TQEType{TQEXX, TQEYY, TQEYZ, TQEZX}},
	{Y, Y, Y, Y, []TQEType{TQEXY, TQEYX, TQEYZ, TQEZY}},
	{Y, Y, Y, I, nil},
	{Y, Y, I, Y, nil},
	{Y, Y, I, I, []TQEType{TQEXY, TQEYX, TQEYZ, TQEZY}},
	{Y, Z, Y, Z, []TQEType{TQEXZ, TQEYX, TQEYY, TQEZZ}},
	{Y, Z, Y, I, nil},
	{Y, Z, I, Z, nil},
	{Y, Z, I, I, []TQEType{TQEXZ, TQEYX, TQEYY, TQEZZ}},
	{Y, I, Y, X, nil},
	{Y, I, Y, Y, nil},
	{Y, I, Y, Z, nil},
	{Y, I, I, X, nil},
	{Y, I, I, Y, nil},
	{Y, I, I, Z, nil},
	{Z, X, Z, X, []TQEType{TQEXX, TQEYX, TQEZY, TQEZZ}},
	{Z, X, Z, I, nil},
	{Z, X, I, X, nil},
	{Z, X, I, I, []TQEType{TQEXX, TQEYX, TQEZY, TQEZZ}},
	{Z, Y, Z, Y, []TQEType{TQEXY, TQEYY, TQEZX, TQEZZ}},
	{Z, Y, Z, I, nil},
	{Z, Y, I, Y, nil},
	{Z, Y, I, I, []TQEType{TQEXY, TQEYY, TQEZX, TQEZZ}},
	{Z, Z, Z, Z, []TQEType{TQEXZ, TQEYZ, TQEZX, TQEZY}},
	{Z, Z, Z, I, nil},
	{Z, Z, I, Z, nil},
	{Z, Z, I, I, []TQEType{TQEXZ, TQEYZ, TQEZX, TQEZY}},
	{Z, I, Z, X, nil},
	{Z, I, Z, Y, nil},
	{Z, I, Z, Z, nil},
	{Z, I, I, X, nil},
	{Z, I, I, Y, nil},
	{Z, I, I, Z, nil},
	{I, X, X, X, nil},
	{I, X, X, I, nil},
	{I, X, Y, X, nil},
	{I, X, Y, I, nil},
	{I, X, Z, X, nil},
	{I, X, Z, I, nil},
	{I, Y, X, Y, nil},
	{I, Y, X, I, nil},
	{I, Y, Y, Y, nil},
	{I, Y, Y, I, nil},
	{I, Y, Z, Y, nil},
	{I, Y, Z, I, nil},
	{I, Z, X, Z, nil},
	{I, Z, X, I, nil},
	{I, Z, Y, Z, nil},
	{I, Z, Y, I, nil},
	{I, Z, Z, Z, nil},
	{I, Z, Z, I, nil},
	{I, I, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEZX}},
	{I, I, X, Y, []TQEType{TQEXX, TQEXZ, TQEYY, TQEZY}},
	{I, I, X, Z, []TQEType{TQEXX, TQEXY, TQEYZ, TQEZZ}},
	{I, I, Y, X, []TQEType{TQEXX, TQEYY, TQEYZ, TQEZX}},
	{I, I, Y, Y, []TQEType{TQEXY, TQEYX, TQEYZ, TQEZY}},
	{I, I, Y, Z, []TQEType{TQEXZ, TQEYX, TQEYY, TQEZZ}},
	{I, I, Z, X, []TQEType{TQEXX, TQEYX, TQEZY, TQEZZ}},
	{I, I, Z, Y, []TQEType{TQEXY, TQEYY, TQEZX, TQEZZ}},
	{I, I, Z, Z, []TQEType{TQEXZ, TQEYZ, TQEZX, TQEZY}},
}

var aaToCCRows = []struct {
	p0, p1, q0, q1 Pauli
	tqes           []TQEType
}{
	{X, X, Y, Y, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
	{X, X, Y, Z, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{X, X, Z, Y, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{X, X, Z, Z, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
	{X, Y, Y, X, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{X, Y, Y, Z, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{X, Y, Z, X, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{X, Y, Z, Z, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{X, Z, Y, X, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{X, Z, Y, Y, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{X, Z, Z, X, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{X, Z, Z, Y, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{Y, X, X, Y, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{Y, X, X, Z, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{Y, X, Z, Y, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{Y, X, Z, Z, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{Y, Y, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
	{Y, Y, X, Z, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{Y, Y, Z, X, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{Y, Y, Z, Z, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
	{Y, Z, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{Y, Z, X, Y, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{Y, Z, Z, X, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{Y, Z, Z, Y, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{Z, X, X, Y, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{Z, X, X, Z, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{Z, X, Y, Y, []TQEType{TQEXX, TQEXY, TQEYX, TQEYZ, TQEZY, TQEZZ}},
	{Z, X, Y, Z, []TQEType{TQEXX, TQEXZ, TQEYX, TQEYY, TQEZY, TQEZZ}},
	{Z, Y, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{Z, Y, X, Z, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{Z, Y, Y, X, []TQEType{TQEXX, TQEXY, TQEYY, TQEYZ, TQEZX, TQEZZ}},
	{Z, Y, Y, Z, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYY, TQEZX, TQEZZ}},
	{Z, Z, X, X, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
	{Z, Z, X, Y, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{Z, Z, Y, X, []TQEType{TQEXX, TQEXZ, TQEYY, TQEYZ, TQEZX, TQEZY}},
	{Z, Z, Y, Y, []TQEType{TQEXY, TQEXZ, TQEYX, TQEYZ, TQEZX, TQEZY}},
}

var acToAIRows = []struct {
	p0, p1, q0, q1 Pauli
	tqes           []TQEType
}{
	{X, X, Y, X, []TQEType{TQEZX}},
	{X, X, Y, I, []TQEType{TQEYX}},
	{X, X, Z, X, []TQEType{TQEYX}},
	{X, X, Z, I, []TQEType{TQEZX}},
	{X, Y, Y, Y, []TQEType{TQEZY}},
	{X, Y, Y, I, []TQEType{TQEYY}},
	{X, Y, Z, Y, []TQEType{TQEYY}},
	{X, Y, Z, I, []TQEType{TQEZY}},
	{X, Z, Y, Z, []TQEType{TQEZZ}},
	{X, Z, Y, I, []TQEType{TQEYZ}},
	{X, Z, Z, Z, []TQEType{TQEYZ}},
	{X, Z, Z, I, []TQEType{TQEZZ}},
	{X, I, Y, X, []TQEType{TQEXX}},
	{X, I, Y, Y, []TQEType{TQEXY}},
	{X, I, Y, Z, []TQEType{TQEXZ}},
	{X, I, Z, X, []TQEType{TQEXX}},
	{X, I, Z, Y, []TQEType{TQEXY}},
	{X, I, Z, Z, []TQEType{TQEXZ}},
	{Y, X, X, X, []TQEType{TQEZX}},
	{Y, X, X, I, []TQEType{TQEXX}},
	{Y, X, Z, X, []TQEType{TQEXX}},
	{Y, X, Z, I, []TQEType{TQEZX}},
	{Y, Y, X, Y, []TQEType{TQEZY}},
	{Y, Y, X, I, []TQEType{TQEXY}},
	{Y, Y, Z, Y, []TQEType{TQEXY}},
	{Y, Y, Z, I, []TQEType{TQEZY}},
	{Y, Z, X, Z, []TQEType{TQEZZ}},
	{Y, Z, X, I, []TQEType{TQEXZ}},
	{Y, Z, Z, Z, []TQEType{TQEXZ}},
	{Y, Z, Z, I, []TQEType{TQEZZ}},
	{Y, I, X, X, []TQEType{TQEYX}},
	{Y, I, X, Y, []TQEType{TQEYY}},
	{Y, I, X, Z, []TQEType{TQEYZ}},
	{Y, I, Z, X, []TQEType{TQEYX}},
	{Y, I, Z, Y, []TQEType{TQEYY}},
	{Y, I, Z, Z, []TQEType{TQEYZ}},
	{Z, X, X, X, []TQEType{TQEYX}},
	{Z, X, X, I, []TQEType{TQEXX}},
	{Z, X, Y, X, []TQEType{TQEXX}},
	{Z, X, Y, I, []TQEType{TQEYX}},
	{Z, Y, X, Y, []TQEType{TQEYY}},
	{Z, Y, X, I, []TQEType{TQEXY}},
	{Z, Y, Y, Y, []TQEType{TQEXY}},
	{Z, Y, Y, I, []TQEType{TQEYY}},
	{Z, Z, X, Z, []TQEType{TQEYZ}},
	{Z, Z, X, I, []TQEType{TQEXZ}},
	{Z, Z, Y, Z, []TQEType{TQEXZ}},
	{Z, Z, Y, I, []TQEType{TQEYZ}},
	{Z, I, X, X, []TQEType{TQEZX}},
	{Z, I, X, Y, []TQEType{TQEZY}},
	{Z, I, X, Z, []TQEType{TQEZZ}},
	{Z, I, Y, X, []TQEType{TQEZX}},
	{Z, I, Y, Y, []TQEType{TQEZY}},
	{Z, I, Y, Z, []TQEType{TQEZZ}},
}

var cliffordConjRows = []struct {
	g    LocalClifford
	p    Pauli
	np   Pauli
	keep bool
}{
	{CliffH, X, Z, true},
	{CliffS, X, Y, false},
	{CliffSdg, X, Y, true},
	{CliffV, X, X, true},
	{CliffVdg, X, X, true},
	{CliffX, X, X, true},
	{CliffY, X, X, false},
	{CliffZ, X, X, false},
	{CliffH, Y, Y, false},
	{CliffS, Y, X, true},
	{CliffSdg, Y, X, false},
	{CliffV, Y, Z, false},
	{CliffVdg, Y, Z, true},
	{CliffX, Y, Y, false},
	{CliffY, Y, Y, true},
	{CliffZ, Y, Y, false},
	{CliffH, Z, X, true},
	{CliffS, Z, Z, true},
	{CliffSdg, Z, Z, true},
	{CliffV, Z, Y, true},
	{CliffVdg, Z, Y, false},
	{CliffX, Z, Z, false},
	{CliffY, Z, Z, false},
	{CliffZ, Z, Z, true},
}

var aaToZXRows = []struct {
	p, q  Pauli
	gates []LocalClifford
}{
	{X, Y, []LocalClifford{CliffSdg, CliffH}},
	{X, Z, []LocalClifford{CliffH}},
	{Y, X, []LocalClifford{CliffVdg}},
	{Y, Z, []LocalClifford{CliffH, CliffS}},
	{Z, X, nil},
	{Z, Y, []LocalClifford{CliffS}},
}
