package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/MaxCodeXTC/charticulator/pkg/cache"
	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	// Stage 1: Load
	c, docHash, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	result := &Result{
		DocHash:   docHash,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Glyphs = c.GlyphCount()

	r.Logger.Info("loaded chart",
		"glyphs", c.GlyphCount(),
		"constraints", len(c.Constraints()),
		"hash", docHash[:12])

	// Stage 2: Solve
	solved, solveRes, solveHit, err := r.SolveWithCacheInfo(ctx, c, docHash, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Chart = solved
	result.Solve = solveRes
	result.Stats.Variables = solveRes.Variables
	result.Stats.Constraints = solveRes.Constraints
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved chart",
		"variables", solveRes.Variables,
		"constraints", solveRes.Constraints,
		"hints", len(solveRes.Hints),
		"cached", solveHit,
		"duration", solveRes.Duration)

	// Stage 3: Render
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, solved, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit)

	return result, nil
}

// Load decodes the chart document named by opts and returns it together
// with its canonical content hash. The hash is computed over the re-encoded
// document, so formatting differences in the input do not fragment the cache.
func (r *Runner) Load(opts Options) (*chart.Chart, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	var (
		c   *chart.Chart
		err error
	)
	if opts.Path != "" {
		c, err = chartio.ImportChart(opts.Path)
	} else {
		c, err = chartio.ReadChart(bytes.NewReader(opts.Document))
	}
	if err != nil {
		return nil, "", err
	}

	hash, err := chartHash(c)
	if err != nil {
		return nil, "", err
	}
	return c, hash, nil
}

// solveEntry is the cached payload of one solve: the solved document plus
// the solver statistics that produced it.
type solveEntry struct {
	Document json.RawMessage `json:"document"`
	Result   *chart.Result   `json:"result"`
}

// SolveWithCacheInfo applies the pins from opts, solves the chart, and
// returns the solved chart with cache hit info. On a cache hit the returned
// chart is reconstructed from the cached solved document; the input chart is
// left untouched.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, c *chart.Chart, docHash string, opts Options) (*chart.Chart, *chart.Result, bool, error) {
	hooks := observability.Cache()
	cacheKey := r.Keyer.SolveKey(docHash, opts.SolveKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entry solveEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				if cached, err := chartio.ReadChart(bytes.NewReader(entry.Document)); err == nil {
					hooks.OnCacheHit(ctx, "solve")
					return cached, entry.Result, true, nil
				}
			}
			// Corrupt entry - fall through to recompute
		}
		hooks.OnCacheMiss(ctx, "solve")
	}

	for _, pin := range opts.Pins {
		c.AddConstraint(pin)
	}

	res, err := chart.Solve(ctx, c)
	if err != nil {
		return nil, nil, false, err
	}

	// Cache the solved document
	var buf bytes.Buffer
	if err := chartio.WriteChart(c, &buf); err == nil {
		entry := solveEntry{Document: buf.Bytes(), Result: res}
		if data, err := json.Marshal(entry); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSolve)
			hooks.OnCacheSet(ctx, "solve", len(data))
		}
	}

	return c, res, false, nil
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Solve(ctx context.Context, c *chart.Chart, docHash string, opts Options) (*chart.Chart, *chart.Result, error) {
	solved, res, _, err := r.SolveWithCacheInfo(ctx, c, docHash, opts)
	return solved, res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	solveHash, err := chartHash(c)
	if err != nil {
		return nil, false, fmt.Errorf("serialize chart for cache key: %w", err)
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(solveHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		hooks.OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	hooks.OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := renderArtifacts(c, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(solveHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		hooks.OnCacheSet(ctx, format, len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// chartHash returns the content hash of the chart's canonical document form.
func chartHash(c *chart.Chart) (string, error) {
	var buf bytes.Buffer
	if err := chartio.WriteChart(c, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
