// Package pkg provides the core libraries for Charticulator constraint solving.
//
// # Overview
//
// Charticulator models chart glyphs as linear constraint systems: every
// element declares its geometry as attributes related by equations, and a
// staged solver assigns concrete coordinates. The pkg directory is organized
// into four main areas:
//
//  1. [solver] - Staged linear constraint solver (sessions, strengths)
//  2. [attrs] / [element] - Attribute schemas and the element class catalog
//  3. [chart] - The element tree, user constraints, and the solve orchestrator
//  4. [pipeline] - Orchestration (load → solve → render) with caching
//
// # Architecture
//
// The typical data flow through Charticulator:
//
//	Chart Document (JSON)
//	         ↓
//	    [chartio] package (import the element tree)
//	         ↓
//	    [chart] package (build session, solve, write back)
//	         ↓
//	    [render] package (constraint graphs, format conversion)
//	         ↓
//	    JSON/DOT/SVG/PNG output
//
// # Quick Start
//
// Build a chart, pin an attribute, and solve:
//
//	import (
//	    "context"
//	    "github.com/MaxCodeXTC/charticulator/pkg/chart"
//	    "github.com/MaxCodeXTC/charticulator/pkg/element"
//	    "github.com/MaxCodeXTC/charticulator/pkg/solver"
//	)
//
//	// 1. Build the element tree
//	c := chart.New()
//	c.NewGlyph(element.ClassRectGlyph, element.ClassAnchorMark)
//
//	// 2. Pin the width
//	c.AddConstraint(chart.Pin(chart.GlyphAttr(0, "width"), 120, solver.Hard))
//
//	// 3. Solve
//	res, _ := chart.Solve(context.Background(), c)
//
//	// 4. Read back solved geometry
//	g, _ := c.Glyph(0)
//	x1, _ := g.Attrs().Get("x1")
//
// # Main Packages
//
// ## Core Domain Logic
//
// [solver] - Staged linear solver. Hard constraints are satisfied exactly or
// the solve fails as infeasible; soft tiers (Strong, Medium, Weak) are
// relaxed by least squares, strongest first; every variable left free is
// anchored to its seed value for deterministic, idempotent solves.
//
// [attrs] - Attribute schemas (name, kind, role, stay strength, default,
// advisory range) and per-instance attribute maps laid out by schema.
//
// [element] - The element class catalog: glyph and mark classes with
// intrinsic constraints, alignment guides, and drag handles. Built-in
// classes register at init; the catalog seals at the first solve.
//
// [chart] - The element tree plus user-authored constraints addressed by
// tree position. The solve orchestrator allocates variables, emits stays
// and intrinsic constraints, and writes solved values back all-or-nothing.
//
// ## Serialization
//
// [chartio] - Versioned JSON chart documents: export with every attribute
// explicit, import with class and attribute validation.
//
// ## Infrastructure
//
// [pipeline] - Complete solve pipeline (load → solve → render) used by the
// CLI and the HTTP service. Two cache layers: solve results keyed by
// document hash and pins, artifacts keyed by solved chart and format.
//
// [cache] - Cache backends (file, Redis, null) with TTL expiry and
// hash-based keys.
//
// [render] - Constraint-graph rendering via Graphviz ([render/constraintdot])
// and SVG to PDF/PNG conversion.
//
// [observability] - Hook interfaces for solve, catalog, and cache events
// with no-op defaults.
//
// [errors] - Coded errors (INFEASIBLE, UNKNOWN_ATTRIBUTE, ...) shared by
// every package and mapped to HTTP statuses by the service.
//
// # Common Workflows
//
// Import a document and inspect its guides:
//
//	c, _ := chartio.ImportChart("chart.json")
//	_, _ = chart.Solve(ctx, c)
//	for _, eg := range c.Guides() {
//	    fmt.Println(eg.Glyph, eg.Mark, eg.Guides)
//	}
//
// Render the constraint graph of a document:
//
//	sess, _ := chart.BuildSession(c)
//	_ = sess.Solve()
//	vars, cons := sess.Snapshot()
//	dot := constraintdot.ToDOT(vars, cons, constraintdot.Options{Values: true})
//
// Run the full pipeline with caching:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Path:    "chart.json",
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/solver/...   # Specific package
//	go test -run Example       # Examples only
//
// [solver]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/solver
// [attrs]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/attrs
// [element]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/element
// [chart]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/chart
// [chartio]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/chartio
// [pipeline]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/cache
// [render]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/render
// [render/constraintdot]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/render/constraintdot
// [observability]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/observability
// [errors]: https://pkg.go.dev/github.com/MaxCodeXTC/charticulator/pkg/errors
package pkg
