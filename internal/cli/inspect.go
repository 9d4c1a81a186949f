package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/pauligraph"
	"github.com/quantforge/qweave/pkg/viz"
)

// inspectCommand creates the inspect command for examining the Pauli
// dependency graph of a circuit.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		output string
		asDOT  bool
		asSVG  bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [circuit.json]",
		Short: "Show the Pauli dependency graph of a circuit",
		Long: `Show the Pauli dependency graph of a circuit.

The inspect command converts a circuit into its Pauli dependency graph
without synthesising it, and prints a summary of the commuting structure.
With --dot or --svg the graph itself is emitted for visual inspection.
Pass "-" to read the circuit from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asDOT && asSVG {
				return fmt.Errorf("--dot and --svg are mutually exclusive")
			}
			return c.runInspect(cmd.Context(), args[0], output, asDOT, asSVG)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&asDOT, "dot", false, "emit the graph in Graphviz DOT format")
	cmd.Flags().BoolVar(&asSVG, "svg", false, "render the graph to SVG")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, output string, asDOT, asSVG bool) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("load circuit %s: %w", input, err)
	}
	circ, err := circuit.Decode(data)
	if err != nil {
		return err
	}
	g, err := pauligraph.FromCircuit(circ)
	if err != nil {
		return err
	}

	switch {
	case asDOT:
		return writeOutput(output, []byte(viz.ToDOT(g)))
	case asSVG:
		spinner := newSpinnerWithContext(ctx, "Rendering graph...")
		spinner.Start()
		svg, err := viz.RenderSVG(ctx, g)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()
		return writeOutput(output, svg)
	default:
		return printGraphSummary(circ, g)
	}
}

// printGraphSummary prints the commuting-set structure of the graph.
func printGraphSummary(circ *circuit.Circuit, g *pauligraph.Graph) error {
	sets, rows, err := g.Sequence()
	if err != nil {
		return err
	}

	stats := circ.Stats()
	printKeyValue("qubits", fmt.Sprintf("%d", circ.NQubits))
	printKeyValue("gates", fmt.Sprintf("%d (%d two-qubit)", stats.TotalGates, stats.TwoQubitGates))
	printKeyValue("nodes", fmt.Sprintf("%d", g.Len()))
	printKeyValue("sets", fmt.Sprintf("%d", len(sets)))
	printNewline()

	for i, set := range sets {
		fmt.Println(StyleHighlight.Render(fmt.Sprintf("set %d", i)))
		for _, n := range set {
			printDetail("%s  %s", n.Kind(), n.String())
		}
	}
	if len(sets) > 0 {
		printNewline()
	}
	fmt.Println(StyleHighlight.Render("tableau"))
	for _, r := range rows {
		printDetail("%s", r.String())
	}
	return nil
}

// writeOutput writes data to a file, or stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
