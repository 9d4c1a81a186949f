package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateAngle validates a rotation angle given in half-turns. It
// rejects non-finite values, which would otherwise poison every phase
// computation downstream.
func ValidateAngle(halfTurns float64) error {
	if math.IsNaN(halfTurns) {
		return New(ErrCodeInvalidAngle, "angle is NaN")
	}
	if math.IsInf(halfTurns, 0) {
		return New(ErrCodeInvalidAngle, "angle is infinite")
	}
	return nil
}

// ValidateRegisterName validates a qubit or bit register name for safety
// and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace
//   - No index brackets (indices are tracked separately)
//   - Maximum length of 256 characters
func ValidateRegisterName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "register name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "register name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "register name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "[]") {
		return New(ErrCodeInvalidInput, "register name must not contain index brackets")
	}

	return nil
}
