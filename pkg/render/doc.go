// Package render provides visualization rendering for solved charts.
//
// # Overview
//
// This package contains the rendering helpers that turn solve output into
// visual artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Constraint graph diagrams (in [constraintdot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := constraintdot.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Constraint Graphs
//
// The [constraintdot] subpackage renders a solve session as a bipartite
// variable/constraint graph using Graphviz. This is the debugging view for
// chart models: it shows exactly which constraints touch which variables
// and at what strength.
//
//	vars, cons := sess.Snapshot()
//	dot := constraintdot.ToDOT(vars, cons, constraintdot.Options{})
//	svg, err := constraintdot.RenderSVG(dot)
//
// [constraintdot]: github.com/MaxCodeXTC/charticulator/pkg/render/constraintdot
package render
