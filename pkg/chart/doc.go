// Package chart provides the chart model and the solve orchestrator.
//
// A Chart is an ownership tree: the chart owns an ordered sequence of
// glyphs, and each glyph owns an ordered sequence of marks. User-authored
// constraints (pins, cross-element alignment) reference attributes by
// position in this tree, never by raw pointer, so charts can be cloned and
// serialized without lifetime ambiguity.
//
// Solve runs one complete constraint pass over the tree: it allocates one
// solver variable per numeric attribute across every live instance, asks
// each instance's class to emit its intrinsic constraints, adds the chart's
// external constraints at their declared strengths, invokes the solver, and
// copies the results back into every attribute map. Application is
// all-or-nothing: an infeasible model leaves every instance at its last
// valid solved state.
//
// Solving is synchronous and single-threaded; one session runs to
// completion before its results are observable. Interactive editing simply
// re-solves per gesture.
package chart
