// Package cache provides pluggable caching for synthesis results and
// rendered artifacts.
//
// Three backends are provided:
//   - NullCache: disables caching
//   - FileCache: local directory storage, suitable for the CLI
//   - RedisCache: shared storage for server deployments
//
// Keys are derived by a Keyer so that callers never concatenate key
// strings by hand; a ScopedKeyer adds a prefix for tenant isolation.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached value classes.
const (
	// TTLResult is the lifetime of cached synthesis results.
	TTLResult = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ResultKeyOpts are the synthesis settings that shape an optimisation
// result and therefore partition the result cache.
type ResultKeyOpts struct {
	DiscountRate     float64 `json:"discount_rate"`
	DepthWeight      float64 `json:"depth_weight"`
	MaxLookahead     int     `json:"max_lookahead"`
	MaxTQECandidates int     `json:"max_tqe_candidates"`
	Seed             int64   `json:"seed"`
	AllowZZPhase     bool    `json:"allow_zzphase"`
	Trials           int     `json:"trials"`
}

// Keyer derives cache keys for the cached value classes.
type Keyer interface {
	// ResultKey generates a key for a synthesis result from the input
	// circuit hash and the options it was produced with.
	ResultKey(circuitHash string, opts ResultKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact from the
	// circuit hash and output format.
	ArtifactKey(circuitHash, format string) string
}

// DefaultKeyer hashes key components with SHA-256 under fixed prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ResultKey generates a key for synthesis result caching.
func (k *DefaultKeyer) ResultKey(circuitHash string, opts ResultKeyOpts) string {
	return hashKey("result", circuitHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(circuitHash, format string) string {
	return hashKey("artifact", circuitHash, format)
}
