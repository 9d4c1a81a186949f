package synth

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/quantforge/qweave/pkg/cache"
	"github.com/quantforge/qweave/pkg/circuit"
	"github.com/quantforge/qweave/pkg/observability"
)

// Runner couples synthesis with result caching. Both CLI and API use it
// so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute optimises a circuit with caching. Trials are fully seeded, so
// a result is deterministic for its options and safe to reuse. The bool
// reports whether the result came from the cache.
func (r *Runner) Execute(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, bool, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ResultKey(cache.Hash(data), resultKeyOpts(opts))

	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var res Result
		if err := json.Unmarshal(cached, &res); err == nil && res.Circuit != nil {
			observability.Cache().OnCacheHit(ctx, "result")
			r.Logger.Debug("synthesis result from cache",
				"two_qubit_gates", res.Stats.TwoQubitGates,
				"total_gates", res.Stats.TotalGates)
			return &res, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	res, err := Optimize(ctx, c, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}
	return res, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// resultKeyOpts projects the settings that shape a result onto the
// cache key. The logger and timeout do not affect the output.
func resultKeyOpts(o Options) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		DiscountRate:     o.DiscountRate,
		DepthWeight:      o.DepthWeight,
		MaxLookahead:     o.MaxLookahead,
		MaxTQECandidates: o.MaxTQECandidates,
		Seed:             o.Seed,
		AllowZZPhase:     o.AllowZZPhase,
		Trials:           o.Trials,
	}
}
