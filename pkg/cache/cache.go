// Package cache provides pluggable caching for solve results and rendered
// artifacts.
//
// Solving a chart is deterministic: the same document and the same options
// always produce the same solved attributes. That makes solve output safe
// to cache keyed by a hash of the input document. Three backends are
// provided:
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared, for the HTTP service
//   - NullCache: disabled caching, for tests and one-shot runs
//
// Keys are produced by a Keyer so key layout can evolve (or be namespaced
// per tenant, see [ScopedKeyer]) without touching call sites.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cache layer. Solve output is cheap to keep and fully
// deterministic; artifacts are larger, so they expire sooner.
const (
	TTLSolve    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second result is false on a miss;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SolveKeyOpts captures every input that changes solve output besides the
// chart document itself. Two solves with equal document hashes and equal
// opts produce identical results.
type SolveKeyOpts struct {
	// Pins are the extra constraints applied on top of the document,
	// serialized canonically by the caller.
	Pins string
}

// ArtifactKeyOpts captures rendering inputs for a cached artifact.
type ArtifactKeyOpts struct {
	// Format is the output format: "json", "dot", "svg", or "png".
	Format string

	// Values reports whether DOT labels include solved values.
	Values bool

	// Scale is the PNG resolution multiplier.
	Scale float64
}

// Keyer generates cache keys for the different cache layers.
type Keyer interface {
	// SolveKey generates a key for cached solve results.
	SolveKey(docHash string, opts SolveKeyOpts) string

	// ArtifactKey generates a key for rendered output derived from one
	// solved chart.
	ArtifactKey(solveHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout: prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for cached solve results.
func (k *DefaultKeyer) SolveKey(docHash string, opts SolveKeyOpts) string {
	return hashKey("solve", docHash, opts)
}

// ArtifactKey generates a key for rendered output.
func (k *DefaultKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solveHash, opts)
}
