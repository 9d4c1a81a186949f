package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/synth"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func writeTestCircuit(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.json")
	data := `{
		"n_qubits": 2,
		"commands": [
			{"op": "H", "qubits": [0]},
			{"op": "CX", "qubits": [0, 1]},
			{"op": "Rz", "qubits": [1], "angles": [0.25]}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := testCLI().RootCommand()
	want := []string{"optimize", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestOptimizeCommand(t *testing.T) {
	in := writeTestCircuit(t)
	out := filepath.Join(t.TempDir(), "out.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"optimize", in, "-o", out, "--no-cache", "--seed", "3"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("optimize failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	c, err := circuit.Decode(data)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if c.NQubits != 2 {
		t.Errorf("NQubits = %d, want 2", c.NQubits)
	}
	if len(c.Commands) == 0 {
		t.Error("synthesised circuit has no commands")
	}
}

func TestOptimizeCommandMissingInput(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetArgs([]string{"optimize", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestInspectCommandDOT(t *testing.T) {
	in := writeTestCircuit(t)
	out := filepath.Join(t.TempDir(), "graph.dot")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"inspect", in, "--dot", "-o", out})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("output is not DOT: %q", string(data))
	}
}

func TestClearCacheEntries(t *testing.T) {
	dir := t.TempDir()
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(shard, "entry.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	count, err := clearCacheEntries(dir)
	if err != nil {
		t.Fatalf("clearCacheEntries error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if _, err := os.Stat(shard); !os.IsNotExist(err) {
		t.Error("empty shard directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "README")); err != nil {
		t.Error("unrelated files should survive a clear")
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := synth.DefaultOptions()
	flags.IntVar(&opts.Trials, "trials", opts.Trials, "")
	if err := flags.Parse([]string{"--trials", "5"}); err != nil {
		t.Fatal(err)
	}

	cfg := synth.DefaultOptions()
	cfg.Trials = 9
	cfg.Seed = 4

	applyConfigDefaults(flags, &opts, cfg)

	// Explicit flag wins over the config file.
	if opts.Trials != 5 {
		t.Errorf("Trials = %d, want 5", opts.Trials)
	}
	// Unset flag takes the config value.
	if opts.Seed != 4 {
		t.Errorf("Seed = %d, want 4", opts.Seed)
	}
}
