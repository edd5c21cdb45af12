// Package constraintdot renders solve sessions as constraint graphs.
//
// # Overview
//
// This package produces bipartite graph visualizations using Graphviz:
// variables appear as ellipses, constraints as boxes, and an edge connects
// a constraint to every variable it mentions, labeled with the coefficient.
// It exists for debugging chart models - an infeasible system is much
// easier to diagnose when the offending hard constraints are visible.
//
// # Usage
//
// Snapshot a session, convert to DOT, then render to SVG:
//
//	vars, cons := sess.Snapshot()
//	dot := constraintdot.ToDOT(vars, cons, constraintdot.Options{})
//	svg, err := constraintdot.RenderSVG(dot)
//
// For PNG output:
//
//	png, err := constraintdot.RenderPNG(dot, 2.0)  // 2x scale
//
// # Styling
//
// Hard constraints are drawn with solid bold outlines; soft constraints are
// dashed, with the tier name in the label. Unlabeled variables fall back to
// a positional name (v0, v1, ...).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG and PDF conversion requires librsvg (rsvg-convert).
package constraintdot
