package synth

import (
	"context"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantforge/qweave/pkg/cache"
	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/errors"
)

func mustCircuit(t *testing.T, nQubits, nBits int, cmds ...circuit.Command) *circuit.Circuit {
	t.Helper()
	c := circuit.New(nQubits, nBits)
	for _, cmd := range cmds {
		if err := c.Append(cmd); err != nil {
			t.Fatalf("Append(%v) error: %v", cmd, err)
		}
	}
	return c
}

func optimize(t *testing.T, c *circuit.Circuit, opts Options) *Result {
	t.Helper()
	res, err := Optimize(context.Background(), c, opts)
	if err != nil {
		t.Fatalf("Optimize error: %v", err)
	}
	return res
}

func TestOptimizeEmptyCircuit(t *testing.T) {
	c := circuit.New(3, 0)
	res := optimize(t, c, Options{})
	if len(res.Circuit.Commands) != 0 {
		t.Errorf("commands = %v, want none", res.Circuit.Commands)
	}
}

func TestOptimizePushesRotationThroughClifford(t *testing.T) {
	// H; Rz becomes Rx; H: the rotation is emitted in the propagated
	// frame and the Hadamard survives only as tableau cleanup.
	c := mustCircuit(t, 1, 0,
		circuit.Command{Op: circuit.OpH, Qubits: []int{0}},
		circuit.Command{Op: circuit.OpRz, Qubits: []int{0}, Angles: []float64{0.25}},
	)
	res := optimize(t, c, Options{})
	got := res.Circuit.Commands
	if len(got) != 2 {
		t.Fatalf("commands = %v, want 2", got)
	}
	if got[0].Op != circuit.OpRx || got[0].Angles[0] != 0.25 || got[0].Qubits[0] != 0 {
		t.Errorf("commands[0] = %v, want Rx(0.25) q0", got[0])
	}
	if got[1].Op != circuit.OpH {
		t.Errorf("commands[1] = %v, want H", got[1])
	}
}

func TestOptimizeResynthesisesEntangler(t *testing.T) {
	// A bare CX has no interior nodes; row synthesis must reproduce a
	// single CX and cleanup must add nothing.
	c := mustCircuit(t, 2, 0,
		circuit.Command{Op: circuit.OpCX, Qubits: []int{0, 1}},
	)
	res := optimize(t, c, Options{})
	got := res.Circuit.Commands
	if len(got) != 1 {
		t.Fatalf("commands = %v, want a single CX", got)
	}
	if got[0].Op != circuit.OpCX || got[0].Qubits[0] != 0 || got[0].Qubits[1] != 1 {
		t.Errorf("commands[0] = %v, want CX 0 1", got[0])
	}
	if res.Stats.TwoQubitGates != 1 {
		t.Errorf("TwoQubitGates = %d, want 1", res.Stats.TwoQubitGates)
	}
}

func TestOptimizeTwoQubitRotation(t *testing.T) {
	// exp(-i*pi/2*0.3*ZZ) costs one entangling reduction, one local
	// rotation, and one entangler to restore the frame.
	c := mustCircuit(t, 2, 0,
		circuit.Command{Op: circuit.OpZZPhase, Qubits: []int{0, 1}, Angles: []float64{0.3}},
	)
	res := optimize(t, c, Options{})
	if res.Stats.TwoQubitGates != 2 {
		t.Errorf("TwoQubitGates = %d, want 2", res.Stats.TwoQubitGates)
	}
	rotations := 0
	for _, cmd := range res.Circuit.Commands {
		switch cmd.Op {
		case circuit.OpRz, circuit.OpRx, circuit.OpRy:
			rotations++
			if a := cmd.Angles[0]; a != 0.3 && a != -0.3 {
				t.Errorf("rotation angle = %g, want +-0.3", a)
			}
		}
	}
	if rotations != 1 {
		t.Errorf("rotation count = %d, want 1", rotations)
	}
}

func TestOptimizeMeasureInPropagatedBasis(t *testing.T) {
	// H; Measure becomes an X-basis measurement: a Hadamard sandwich
	// around the Z measurement, then tableau cleanup.
	c := mustCircuit(t, 1, 1,
		circuit.Command{Op: circuit.OpH, Qubits: []int{0}},
		circuit.Command{Op: circuit.OpMeasure, Qubits: []int{0}, Bits: []int{0}},
	)
	res := optimize(t, c, Options{})
	got := res.Circuit.Commands
	if len(got) != 4 {
		t.Fatalf("commands = %v, want [H Measure H H]", got)
	}
	want := []circuit.OpType{circuit.OpH, circuit.OpMeasure, circuit.OpH, circuit.OpH}
	for i, op := range want {
		if got[i].Op != op {
			t.Errorf("commands[%d].Op = %v, want %v", i, got[i].Op, op)
		}
	}
	if got[1].Bits[0] != 0 {
		t.Errorf("measure bit = %d, want 0", got[1].Bits[0])
	}
}

func TestOptimizeConditionalRotation(t *testing.T) {
	cond := &circuit.Condition{Bits: []int{0}, Value: 1}
	c := mustCircuit(t, 2, 1,
		circuit.Command{Op: circuit.OpMeasure, Qubits: []int{0}, Bits: []int{0}},
		circuit.Command{Op: circuit.OpRz, Qubits: []int{1}, Angles: []float64{0.25}, Condition: cond},
	)
	res := optimize(t, c, Options{})
	got := res.Circuit.Commands
	if len(got) != 2 {
		t.Fatalf("commands = %v, want [Measure Rz-if]", got)
	}
	if got[0].Op != circuit.OpMeasure {
		t.Errorf("commands[0] = %v, want Measure", got[0])
	}
	rz := got[1]
	if rz.Op != circuit.OpRz || rz.Qubits[0] != 1 || rz.Angles[0] != 0.25 {
		t.Errorf("commands[1] = %v, want Rz(0.25) q1", rz)
	}
	if rz.Condition == nil || !rz.Condition.Equal(cond) {
		t.Errorf("commands[1].Condition = %v, want %v", rz.Condition, cond)
	}
}

func TestOptimizeDeterministicPerSeed(t *testing.T) {
	build := func() *circuit.Circuit {
		return mustCircuit(t, 3, 0,
			circuit.Command{Op: circuit.OpT, Qubits: []int{0}},
			circuit.Command{Op: circuit.OpCX, Qubits: []int{0, 1}},
			circuit.Command{Op: circuit.OpT, Qubits: []int{1}},
			circuit.Command{Op: circuit.OpCX, Qubits: []int{1, 2}},
			circuit.Command{Op: circuit.OpRz, Qubits: []int{2}, Angles: []float64{0.3}},
			circuit.Command{Op: circuit.OpH, Qubits: []int{0}},
			circuit.Command{Op: circuit.OpT, Qubits: []int{0}},
		)
	}
	opts := Options{Seed: 7}
	a := optimize(t, build(), opts)
	opts = Options{Seed: 7}
	b := optimize(t, build(), opts)
	if !reflect.DeepEqual(a.Circuit.Commands, b.Circuit.Commands) {
		t.Errorf("same seed produced different circuits:\n%v\n%v", a.Circuit.Commands, b.Circuit.Commands)
	}
	if a.Stats != b.Stats {
		t.Errorf("same seed produced different stats: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestOptimizeMultipleTrials(t *testing.T) {
	c := mustCircuit(t, 3, 0,
		circuit.Command{Op: circuit.OpT, Qubits: []int{0}},
		circuit.Command{Op: circuit.OpCX, Qubits: []int{0, 1}},
		circuit.Command{Op: circuit.OpT, Qubits: []int{1}},
		circuit.Command{Op: circuit.OpCX, Qubits: []int{0, 2}},
	)
	res := optimize(t, c, Options{Trials: 4, Seed: 11})
	if res.Trial < 0 || res.Trial >= 4 {
		t.Errorf("winning trial = %d, want in [0, 4)", res.Trial)
	}
	if res.Seed != 11+int64(res.Trial) {
		t.Errorf("winning seed = %d, want %d", res.Seed, 11+int64(res.Trial))
	}
}

func TestOptimizeCancelledContext(t *testing.T) {
	c := mustCircuit(t, 1, 0,
		circuit.Command{Op: circuit.OpRz, Qubits: []int{0}, Angles: []float64{0.25}},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Optimize(ctx, c, Options{})
	if errors.GetCode(err) != errors.ErrCodeTimeout {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeTimeout)
	}
}

func TestOptimizeRejectsInvalidOptions(t *testing.T) {
	c := circuit.New(1, 0)
	_, err := Optimize(context.Background(), c, Options{DiscountRate: -1})
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestOptionsValidateFillsDefaults(t *testing.T) {
	var o Options
	if err := o.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	def := DefaultOptions()
	if o.DiscountRate != def.DiscountRate || o.DepthWeight != def.DepthWeight {
		t.Errorf("weights = (%g, %g), want defaults (%g, %g)",
			o.DiscountRate, o.DepthWeight, def.DiscountRate, def.DepthWeight)
	}
	if o.MaxLookahead != def.MaxLookahead || o.MaxTQECandidates != def.MaxTQECandidates {
		t.Errorf("bounds = (%d, %d), want defaults (%d, %d)",
			o.MaxLookahead, o.MaxTQECandidates, def.MaxLookahead, def.MaxTQECandidates)
	}
	if o.Trials != 1 {
		t.Errorf("trials = %d, want 1", o.Trials)
	}
	if o.Logger == nil {
		t.Error("Validate should default the logger")
	}
}

func TestOptionsValidateRejectsNegatives(t *testing.T) {
	cases := []Options{
		{DiscountRate: -0.1},
		{DepthWeight: -0.5},
		{MaxLookahead: -1},
		{MaxTQECandidates: -1},
		{Trials: -2},
		{TrialTimeout: -time.Second},
	}
	for _, o := range cases {
		if err := o.Validate(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
			t.Errorf("Validate(%+v) = %v, want INVALID_INPUT", o, err)
		}
	}
}

func TestRunnerCachesResults(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	r := NewRunner(fc, nil, logger)
	defer r.Close()

	c := mustCircuit(t, 2, 0,
		circuit.Command{Op: circuit.OpT, Qubits: []int{0}},
		circuit.Command{Op: circuit.OpCX, Qubits: []int{0, 1}},
	)

	first, hit, err := r.Execute(context.Background(), c, Options{Seed: 3})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if hit {
		t.Error("first Execute should miss the cache")
	}

	second, hit, err := r.Execute(context.Background(), c, Options{Seed: 3})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !hit {
		t.Error("second Execute should hit the cache")
	}
	if !reflect.DeepEqual(first.Circuit.Commands, second.Circuit.Commands) {
		t.Errorf("cached circuit differs:\n%v\n%v", first.Circuit.Commands, second.Circuit.Commands)
	}

	// Different options partition the cache.
	_, hit, err = r.Execute(context.Background(), c, Options{Seed: 4})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if hit {
		t.Error("different seed should miss the cache")
	}
}

func TestDepthTracker(t *testing.T) {
	d := newDepthTracker(3)
	if got := d.gateDepth(0, 1); got != 1 {
		t.Errorf("gateDepth on empty = %d, want 1", got)
	}
	d.add1q(0)
	d.add1q(0)
	d.add2q(0, 2)
	if got := d.gateDepth(0, 1); got != 4 {
		t.Errorf("gateDepth(0,1) = %d, want 4", got)
	}
	if got := d.gateDepth(1, 2); got != 4 {
		t.Errorf("gateDepth(1,2) = %d, want 4", got)
	}
}
