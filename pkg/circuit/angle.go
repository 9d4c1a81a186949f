package circuit

import "math"

// Angles are expressed in half-turns: an angle a denotes the rotation
// exp(-i*pi*a/2 * P) for its Pauli generator P. Angle equality is
// tested against a fixed tolerance since angles arrive as float64.

// AngleEps is the tolerance used when snapping angles to special values.
const AngleEps = 1e-11

// NormalizeAngle reduces an angle into [0, 4) half-turns, the period of
// a Pauli exponential up to global phase conventions tracked separately.
func NormalizeAngle(halfTurns float64) float64 {
	a := math.Mod(halfTurns, 4)
	if a < 0 {
		a += 4
	}
	return a
}

// NormalizePhase reduces a global phase into [0, 2) half-turns, the
// period of exp(i*pi*g).
func NormalizePhase(halfTurns float64) float64 {
	a := math.Mod(halfTurns, 2)
	if a < 0 {
		a += 2
	}
	return a
}

// IsCliffordAngle reports whether the angle is an integer multiple of a
// quarter turn (0.5 half-turns) within tolerance.
func IsCliffordAngle(halfTurns float64) bool {
	q := halfTurns / 0.5
	return math.Abs(q-math.Round(q)) < AngleEps
}

// QuarterTurns converts a Clifford angle to its quarter-turn count in
// {0, 1, 2, 3}. The result is meaningless for non-Clifford angles.
func QuarterTurns(halfTurns float64) int {
	q := int(math.Round(halfTurns/0.5)) % 8
	if q < 0 {
		q += 8
	}
	// Two half-turns is a global phase, not a rotation.
	return q % 4
}

// IsTrivialAngle reports whether the rotation is the identity up to
// global phase, i.e. a whole number of half-turn doublings.
func IsTrivialAngle(halfTurns float64) bool {
	return IsCliffordAngle(halfTurns) && QuarterTurns(halfTurns) == 0
}

// CliffordResidualPhase returns the global phase, in half-turns, shed
// when a Clifford rotation angle is reduced to its quarter-turn count:
// exp(-i*pi/2*a*P) = exp(i*pi*r) * exp(-i*pi/4*q*P) with
// q = QuarterTurns(a) and r the returned value. The remainder a - q/2
// is an even number of half-turns, so the shed factor is a sign.
func CliffordResidualPhase(halfTurns float64) float64 {
	rem := halfTurns - 0.5*float64(QuarterTurns(halfTurns))
	return NormalizePhase(-rem / 2)
}
