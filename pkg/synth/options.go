// Package synth implements greedy resynthesis of a Pauli dependency
// graph: interior nodes are consumed layer by layer, each step either
// emitting a finished node or committing the two-qubit entangling basis
// change that best reduces the remaining cost, with the trailing
// tableau synthesised and cleaned up last. Multiple seeded trials run
// in parallel and the cheapest result wins.
package synth

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quantforge/qweave/pkg/errors"
)

// Options control the greedy synthesis.
type Options struct {
	// DiscountRate sets the geometric discount applied to cost deltas
	// of later commuting sets during candidate lookahead.
	DiscountRate float64 `json:"discount_rate" toml:"discount_rate"`

	// DepthWeight balances the depth cost against the lookahead cost
	// when scoring candidates.
	DepthWeight float64 `json:"depth_weight" toml:"depth_weight"`

	// MaxLookahead bounds how many nodes a single candidate scoring
	// pass may inspect.
	MaxLookahead int `json:"max_lookahead" toml:"max_lookahead"`

	// MaxTQECandidates bounds the candidate pool per selection round;
	// larger pools are down-sampled with the trial's seeded source.
	MaxTQECandidates int `json:"max_tqe_candidates" toml:"max_tqe_candidates"`

	// Seed fixes the random source of trial i to Seed+i. A trial is
	// fully deterministic for a fixed seed.
	Seed int64 `json:"seed" toml:"seed"`

	// AllowZZPhase permits emitting weight-2 rotations directly as
	// conjugated ZZPhase gates. The result is then only guaranteed up
	// to global phase.
	AllowZZPhase bool `json:"allow_zzphase" toml:"allow_zzphase"`

	// Trials is the number of parallel synthesis attempts.
	Trials int `json:"trials" toml:"trials"`

	// TrialTimeout bounds the wall clock per run; zero means no limit.
	TrialTimeout time.Duration `json:"trial_timeout" toml:"trial_timeout"`

	// Logger receives progress events; nil discards them.
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the recommended settings.
func DefaultOptions() Options {
	return Options{
		DiscountRate:     0.7,
		DepthWeight:      0.3,
		MaxLookahead:     500,
		MaxTQECandidates: 500,
		Trials:           1,
	}
}

// Validate checks ranges and fills zero values with defaults.
func (o *Options) Validate() error {
	def := DefaultOptions()
	if o.DiscountRate == 0 {
		o.DiscountRate = def.DiscountRate
	}
	if o.DepthWeight == 0 {
		o.DepthWeight = def.DepthWeight
	}
	if o.MaxLookahead == 0 {
		o.MaxLookahead = def.MaxLookahead
	}
	if o.MaxTQECandidates == 0 {
		o.MaxTQECandidates = def.MaxTQECandidates
	}
	if o.Trials == 0 {
		o.Trials = def.Trials
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.DiscountRate < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "discount rate %g is negative", o.DiscountRate)
	}
	if o.DepthWeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "depth weight %g is negative", o.DepthWeight)
	}
	if o.MaxLookahead < 0 || o.MaxTQECandidates < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "lookahead and candidate bounds must be positive")
	}
	if o.Trials < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "trial count %d is negative", o.Trials)
	}
	if o.TrialTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "trial timeout %v is negative", o.TrialTimeout)
	}
	return nil
}
