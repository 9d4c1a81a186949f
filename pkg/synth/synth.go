package synth

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/observability"
	"github.com/quantforge/qweave/pkg/pauligraph"
)

// Result carries the winning circuit of a synthesis run together with
// its gate statistics and the trial that produced it.
type Result struct {
	Circuit  *circuit.Circuit `json:"circuit"`
	Stats    circuit.Stats    `json:"stats"`
	Trial    int              `json:"trial"`
	Seed     int64            `json:"seed"`
	Duration time.Duration    `json:"duration"`
}

// Optimize resynthesises a circuit from its Pauli dependency graph. It
// runs opts.Trials seeded attempts in parallel and returns the one with
// the fewest two-qubit gates, breaking ties on total gates, then depth.
//
// The returned circuit is unitary-equivalent to the input, including
// global phase unless AllowZZPhase is set. A TrialTimeout cancels
// in-flight trials; if every trial was cancelled the run fails with a
// TIMEOUT error.
func Optimize(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	buildStart := time.Now()
	observability.Synthesis().OnBuildStart(ctx, c.NQubits, len(c.Commands))
	g, err := pauligraph.FromCircuit(c)
	if err != nil {
		observability.Synthesis().OnBuildComplete(ctx, c.NQubits, 0, time.Since(buildStart), err)
		return nil, err
	}
	sets, rows, err := g.Sequence()
	nodes := 0
	for _, set := range sets {
		nodes += len(set)
	}
	observability.Synthesis().OnBuildComplete(ctx, c.NQubits, nodes, time.Since(buildStart), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("built pauli graph",
		"qubits", c.NQubits,
		"nodes", nodes,
		"sets", len(sets),
		"duration", time.Since(buildStart))

	if opts.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.TrialTimeout)
		defer cancel()
	}

	results := make([]*Result, opts.Trials)
	var eg errgroup.Group
	for i := 0; i < opts.Trials; i++ {
		i := i
		eg.Go(func() error {
			seed := opts.Seed + int64(i)
			start := time.Now()
			observability.Synthesis().OnTrialStart(ctx, i, seed)
			tr := newTrial(c.NQubits, c.NBits, c.Name, g.Phase(), sets, rows, opts, seed)
			if err := tr.run(ctx); err != nil {
				observability.Synthesis().OnTrialComplete(ctx, i, 0, 0, time.Since(start), err)
				if errors.GetCode(err) == errors.ErrCodeTimeout {
					// Cancelled trials are discarded, not fatal.
					return nil
				}
				return err
			}
			stats := tr.circ.Stats()
			took := time.Since(start)
			observability.Synthesis().OnTrialComplete(ctx, i, stats.TwoQubitGates, stats.TotalGates, took, nil)
			results[i] = &Result{Circuit: tr.circ, Stats: stats, Trial: i, Seed: seed, Duration: took}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var best *Result
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || betterStats(r.Stats, best.Stats) {
			best = r
		}
	}
	if best == nil {
		return nil, errors.New(errors.ErrCodeTimeout, "all %d synthesis trials timed out", opts.Trials)
	}
	opts.Logger.Info("synthesis complete",
		"trial", best.Trial,
		"two_qubit_gates", best.Stats.TwoQubitGates,
		"total_gates", best.Stats.TotalGates,
		"depth", best.Stats.Depth)
	return best, nil
}

// betterStats orders candidate results by two-qubit count, then total
// gate count, then depth.
func betterStats(a, b circuit.Stats) bool {
	if a.TwoQubitGates != b.TwoQubitGates {
		return a.TwoQubitGates < b.TwoQubitGates
	}
	if a.TotalGates != b.TotalGates {
		return a.TotalGates < b.TotalGates
	}
	return a.Depth < b.Depth
}
