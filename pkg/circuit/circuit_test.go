package circuit

import (
	"testing"

	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
)

func TestAppendValidation(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Command
		wantCode errors.Code
	}{
		{
			name: "valid gate",
			cmd:  Command{Op: OpCX, Qubits: []int{0, 1}},
		},
		{
			name:     "qubit out of range",
			cmd:      Command{Op: OpH, Qubits: []int{5}},
			wantCode: errors.ErrCodeInvalidQubit,
		},
		{
			name:     "negative qubit",
			cmd:      Command{Op: OpH, Qubits: []int{-1}},
			wantCode: errors.ErrCodeInvalidQubit,
		},
		{
			name:     "bit out of range",
			cmd:      Command{Op: OpMeasure, Qubits: []int{0}, Bits: []int{3}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "condition bit out of range",
			cmd:      Command{Op: OpX, Qubits: []int{0}, Condition: &Condition{Bits: []int{9}, Value: 1}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "missing angle",
			cmd:      Command{Op: OpRz, Qubits: []int{0}},
			wantCode: errors.ErrCodeInvalidArity,
		},
		{
			name:     "extra angle",
			cmd:      Command{Op: OpH, Qubits: []int{0}, Angles: []float64{0.5}},
			wantCode: errors.ErrCodeInvalidArity,
		},
		{
			name: "valid rotation",
			cmd:  Command{Op: OpRz, Qubits: []int{0}, Angles: []float64{0.25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2, 2)
			err := c.Append(tt.cmd)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Append() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Append() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestStats(t *testing.T) {
	c := New(3, 1)
	mustAdd(t, c, Command{Op: OpH, Qubits: []int{0}})
	mustAdd(t, c, Command{Op: OpCX, Qubits: []int{0, 1}})
	mustAdd(t, c, Command{Op: OpCX, Qubits: []int{1, 2}})
	mustAdd(t, c, Command{Op: OpRz, Qubits: []int{2}, Angles: []float64{0.25}})
	mustAdd(t, c, Command{Op: OpBarrier, Qubits: []int{0, 1, 2}})

	s := c.Stats()
	if s.TotalGates != 4 {
		t.Errorf("TotalGates = %d, want 4", s.TotalGates)
	}
	if s.TwoQubitGates != 2 {
		t.Errorf("TwoQubitGates = %d, want 2", s.TwoQubitGates)
	}
	// q0: H, CX; q1: CX, CX; q2: CX, Rz -> depth 3 through the CX chain.
	if s.Depth != 3 {
		t.Errorf("Depth = %d, want 3", s.Depth)
	}
	if s.TwoQubitDepth != 2 {
		t.Errorf("TwoQubitDepth = %d, want 2", s.TwoQubitDepth)
	}
}

func TestAngleHelpers(t *testing.T) {
	tests := []struct {
		angle    float64
		clifford bool
		quarter  int
		trivial  bool
	}{
		{0, true, 0, true},
		{0.5, true, 1, false},
		{1.0, true, 2, false},
		{1.5, true, 3, false},
		{2.0, true, 0, true},
		{2.5, true, 1, false},
		{4.0, true, 0, true},
		{-0.5, true, 3, false},
		{-1.0, true, 2, false},
		{0.25, false, 0, false},
		{0.5000000001, false, 0, false},
	}

	for _, tt := range tests {
		if got := IsCliffordAngle(tt.angle); got != tt.clifford {
			t.Errorf("IsCliffordAngle(%v) = %v, want %v", tt.angle, got, tt.clifford)
		}
		if !tt.clifford {
			continue
		}
		if got := QuarterTurns(tt.angle); got != tt.quarter {
			t.Errorf("QuarterTurns(%v) = %d, want %d", tt.angle, got, tt.quarter)
		}
		if got := IsTrivialAngle(tt.angle); got != tt.trivial {
			t.Errorf("IsTrivialAngle(%v) = %v, want %v", tt.angle, got, tt.trivial)
		}
	}
}

func TestCliffordResidualPhase(t *testing.T) {
	// exp(-i*pi/2*a*P) = exp(i*pi*r) * exp(-i*pi/4*q*P): the table
	// pins r for every branch of the mod-8 reduction, in particular
	// the angles whose remainder is a half-turn pair (r = 1).
	tests := []struct {
		angle float64
		want  float64
	}{
		{0, 0},
		{0.5, 0},
		{1.0, 0},
		{1.5, 0},
		{2.0, 1},
		{2.5, 1},
		{3.0, 1},
		{3.5, 1},
		{4.0, 0},
		{4.5, 0},
		{-0.5, 1},
		{-2.0, 1},
	}
	for _, tt := range tests {
		if got := CliffordResidualPhase(tt.angle); got != tt.want {
			t.Errorf("CliffordResidualPhase(%v) = %g, want %g", tt.angle, got, tt.want)
		}
	}
}

func TestRemoveTrailingSwaps(t *testing.T) {
	c := New(3, 0)
	mustAdd(t, c, Command{Op: OpCX, Qubits: []int{0, 1}})
	mustAdd(t, c, Command{Op: OpSWAP, Qubits: []int{0, 1}})
	mustAdd(t, c, Command{Op: OpSWAP, Qubits: []int{1, 2}})

	c.RemoveTrailingSwaps()

	if len(c.Commands) != 1 || c.Commands[0].Op != OpCX {
		t.Fatalf("Commands = %v, want only the CX", c.Commands)
	}
	// Wire 0 goes to 1 then that content to 2; wire 1 to 0; wire 2 to 1.
	want := []int{2, 0, 1}
	for i, w := range want {
		if got := c.OutputWire(i); got != w {
			t.Errorf("OutputWire(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestRemoveTrailingSwapsStopsAtNonSwap(t *testing.T) {
	c := New(2, 0)
	mustAdd(t, c, Command{Op: OpSWAP, Qubits: []int{0, 1}})
	mustAdd(t, c, Command{Op: OpH, Qubits: []int{0}})

	c.RemoveTrailingSwaps()

	if len(c.Commands) != 2 {
		t.Errorf("Commands = %d, want 2 (interior SWAP kept)", len(c.Commands))
	}
	if c.Permutation != nil {
		t.Errorf("Permutation = %v, want nil", c.Permutation)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	c := New(2, 2)
	c.Name = "bell"
	mustAdd(t, c, Command{Op: OpH, Qubits: []int{0}})
	mustAdd(t, c, Command{Op: OpCX, Qubits: []int{0, 1}})
	mustAdd(t, c, Command{Op: OpRz, Qubits: []int{1}, Angles: []float64{0.3}, Condition: &Condition{Bits: []int{0}, Value: 1}})
	mustAdd(t, c, Command{Op: OpMeasure, Qubits: []int{1}, Bits: []int{1}})
	zz, err := pauli.ParseString("-ZZ")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	mustAdd(t, c, Command{Op: OpPauliExp, Qubits: []int{0, 1}, Angles: []float64{0.7}, Paulis: []pauli.String{zz}})
	c.AddPhase(0.5)

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode(): %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode(): %v", err)
	}
	if got.Name != c.Name || got.NQubits != c.NQubits || got.NBits != c.NBits || got.Phase != c.Phase {
		t.Errorf("header mismatch: %+v vs %+v", got, c)
	}
	if len(got.Commands) != len(c.Commands) {
		t.Fatalf("Commands = %d, want %d", len(got.Commands), len(c.Commands))
	}
	cond := got.Commands[2].Condition
	if cond == nil || cond.Value != 1 || len(cond.Bits) != 1 || cond.Bits[0] != 0 {
		t.Errorf("condition lost in round trip: %+v", cond)
	}
}

func TestDecodeRejectsUnknownOp(t *testing.T) {
	_, err := Decode([]byte(`{"n_qubits":1,"n_bits":0,"commands":[{"op":"Frobnicate","qubits":[0]}]}`))
	if !errors.Is(err, errors.ErrCodeUnsupportedOp) {
		t.Errorf("Decode() error = %v, want UNSUPPORTED_OP", err)
	}
}

func mustAdd(t *testing.T, c *Circuit, cmd Command) {
	t.Helper()
	if err := c.Append(cmd); err != nil {
		t.Fatalf("Append(%v): %v", cmd, err)
	}
}
