package errors

import (
	"math"
	"testing"
)

func TestValidateAngle(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"half turn", 0.5, false},
		{"negative", -1.75, false},
		{"large", 1e9, false},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAngle(tt.angle)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAngle(%v) error = %v, wantErr %v", tt.angle, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAngle) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidAngle)
			}
		})
	}
}

func TestValidateRegisterName(t *testing.T) {
	tests := []struct {
		name    string
		reg     string
		wantErr bool
	}{
		{"simple", "q", false},
		{"with underscore", "anc_q", false},
		{"unicode", "ψ", false},
		{"empty", "", true},
		{"whitespace", "q reg", true},
		{"control char", "q\x00", true},
		{"brackets", "q[0]", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegisterName(tt.reg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegisterName(%q) error = %v, wantErr %v", tt.reg, err, tt.wantErr)
			}
		})
	}
}
