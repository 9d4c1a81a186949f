package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/synth"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := synth.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "optimize [circuit.json]",
		Short: "Resynthesise a circuit from its JSON description",
		Long: `Resynthesise a circuit from its JSON description.

The optimize command reads a circuit, converts it into a Pauli dependency
graph and greedily rebuilds it, trading the original gate sequence for one
with fewer two-qubit gates. Pass "-" to read the circuit from stdin.

Results are cached locally for faster subsequent runs. Option defaults can
be set in the config file; flags override them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd.Flags(), &opts, c.Config.Synthesis)
			return c.runOptimize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().Float64Var(&opts.DiscountRate, "discount-rate", opts.DiscountRate, "lookahead discount per commuting set")
	cmd.Flags().Float64Var(&opts.DepthWeight, "depth-weight", opts.DepthWeight, "weight of depth in candidate scoring")
	cmd.Flags().IntVar(&opts.MaxLookahead, "lookahead", opts.MaxLookahead, "max nodes inspected per candidate")
	cmd.Flags().IntVar(&opts.MaxTQECandidates, "tqe-candidates", opts.MaxTQECandidates, "max candidates per selection round")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for trial sampling")
	cmd.Flags().BoolVar(&opts.AllowZZPhase, "allow-zzphase", opts.AllowZZPhase, "emit two-qubit rotations directly (up to global phase)")
	cmd.Flags().IntVar(&opts.Trials, "trials", opts.Trials, "number of parallel synthesis trials")
	cmd.Flags().DurationVar(&opts.TrialTimeout, "timeout", opts.TrialTimeout, "wall clock limit per run (0 = none)")

	return cmd
}

// applyConfigDefaults fills options from the config file for every flag
// the user did not set explicitly.
func applyConfigDefaults(flags *pflag.FlagSet, opts *synth.Options, cfg synth.Options) {
	if !flags.Changed("discount-rate") {
		opts.DiscountRate = cfg.DiscountRate
	}
	if !flags.Changed("depth-weight") {
		opts.DepthWeight = cfg.DepthWeight
	}
	if !flags.Changed("lookahead") {
		opts.MaxLookahead = cfg.MaxLookahead
	}
	if !flags.Changed("tqe-candidates") {
		opts.MaxTQECandidates = cfg.MaxTQECandidates
	}
	if !flags.Changed("seed") {
		opts.Seed = cfg.Seed
	}
	if !flags.Changed("allow-zzphase") {
		opts.AllowZZPhase = cfg.AllowZZPhase
	}
	if !flags.Changed("trials") {
		opts.Trials = cfg.Trials
	}
	if !flags.Changed("timeout") {
		opts.TrialTimeout = cfg.TrialTimeout
	}
}

// runOptimize reads the circuit, runs synthesis and writes the result.
func (c *CLI) runOptimize(ctx context.Context, input string, opts synth.Options, output string, noCache bool) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("load circuit %s: %w", input, err)
	}
	circ, err := circuit.Decode(data)
	if err != nil {
		return err
	}
	before := circ.Stats()

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Synthesising...")
	spinner.Start()

	res, cacheHit, err := runner.Execute(ctx, circ, opts)
	if err != nil {
		spinner.StopWithError("Synthesis failed")
		return err
	}
	spinner.Stop()

	out, err := res.Circuit.Encode()
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if output == "" || output == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Synthesised %s", input)
		printFile(output)
	}

	printSynthStats(before, res.Stats, cacheHit)
	return nil
}

// printSynthStats prints before/after gate counts on a single line.
func printSynthStats(before, after circuit.Stats, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	line := "  " +
		StyleDim.Render(fmt.Sprintf("2q gates %d %s %d", before.TwoQubitGates, iconArrow, after.TwoQubitGates)) +
		StyleDim.Render(" · ") +
		StyleDim.Render(fmt.Sprintf("depth %d %s %d", before.Depth, iconArrow, after.Depth)) +
		StyleDim.Render(" · ") +
		statusStyle.Render(status)
	fmt.Fprintln(os.Stderr, line)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
