// Package pkg provides the core libraries for Qweave circuit resynthesis.
//
// # Overview
//
// Qweave rebuilds Clifford+Rz quantum circuits from their Pauli dependency
// structure, trading the original gate sequence for one with fewer two-qubit
// gates. The pkg directory is organized into four main areas:
//
//  1. Circuit model ([circuit], [pauli], [tableau]) - gates, Pauli strings and
//     the stabilizer tableau that tracks Clifford frames
//  2. Graph construction ([pauligraph]) - conversion of a circuit into an
//     ordered dependency graph of Pauli rotations and measurements
//  3. Synthesis ([synth]) - greedy resynthesis with lookahead scoring,
//     parallel seeded trials and result caching
//  4. Infrastructure ([cache], [config], [server], [observability], [viz],
//     [errors], [buildinfo]) - caching backends, configuration, the HTTP API,
//     hooks, graph visualization and shared error codes
//
// # Architecture
//
// The typical data flow through Qweave:
//
//	Circuit JSON
//	     ↓
//	[circuit] package (decode + validate)
//	     ↓
//	[pauligraph] package (Pauli exponentials + commuting sets)
//	     ↓
//	[synth] package (greedy trials, candidate scoring, tableau cleanup)
//	     ↓
//	Optimised circuit JSON
//
// # Quick Start
//
// Decode a circuit and resynthesise it:
//
//	import (
//	    "context"
//	    "github.com/quantforge/qweave/pkg/circuit"
//	    "github.com/quantforge/qweave/pkg/synth"
//	)
//
//	c, _ := circuit.Decode(data)
//	res, _ := synth.Optimize(context.Background(), c, synth.Options{
//	    Trials: 4,
//	    Seed:   7,
//	})
//	out, _ := res.Circuit.Encode()
//
// Run with caching:
//
//	store, _ := cache.NewFileCache(dir)
//	runner := synth.NewRunner(store, nil, logger)
//	res, hit, _ := runner.Execute(ctx, c, opts)
//
// # Main Packages
//
// [pauli] - Pauli letters, signed Pauli strings and the two-qubit entangling
// (TQE) Clifford vocabulary, with the conjugation tables driving every basis
// change in the synthesis.
//
// [circuit] - Gate-level circuit representation with JSON encoding, angle
// normalization, statistics and trailing swap extraction.
//
// [tableau] - Stabilizer rows tracking how Z and X on each qubit propagate
// through the Clifford frame accumulated during graph construction.
//
// [pauligraph] - The dependency graph: rotations, measurements, resets,
// classical commands and conditional blocks as nodes, edges where they fail
// to commute, and the final tableau as propagation rows.
//
// [synth] - The greedy engine. Converts the graph into maximal commuting
// sets, emits nodes as soon as they act on a single qubit, and otherwise
// applies the TQE with the best discounted lookahead score. Runs multiple
// seeded trials in parallel and keeps the cheapest result.
//
// [cache] - Content-addressed result caching with null, file and Redis
// backends plus key scoping for shared deployments.
//
// [config] - TOML configuration layering synthesis defaults under CLI flags.
//
// [server] - HTTP API exposing synthesis with request tracing.
//
// [observability] - Hook interfaces for synthesis, cache and server events.
//
// [viz] - Graphviz DOT and SVG rendering of the dependency graph.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/synth/...        # Specific package
//
// [circuit]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/circuit
// [pauli]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/pauli
// [tableau]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/tableau
// [pauligraph]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/pauligraph
// [synth]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/synth
// [cache]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/cache
// [config]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/config
// [server]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/server
// [observability]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/observability
// [viz]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/viz
// [errors]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/quantforge/qweave/pkg/buildinfo
package pkg
