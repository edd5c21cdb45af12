// Package element provides the element class catalog and element instances.
//
// An element class is a named, immutable singleton describing one kind of
// visual element: its attribute schema, how a fresh instance is initialized,
// which hard constraints define its geometry, and which alignment guides and
// drag handles it exposes. Classes register themselves into a process-wide
// catalog at startup; the catalog is sealed when the first solve runs and is
// read-only afterwards.
//
// An element instance owns one attribute map laid out by its class's schema.
// Glyph instances additionally own an ordered sequence of child mark
// instances; marks do not outlive their glyph.
//
// # Built-in classes
//
//   - glyph/rect: rectangle-shaped glyph with a bounding box and an
//     origin-centered intrinsic frame
//   - mark/anchor: point mark anchoring the glyph's nominal center
//   - mark/rect: rectangle-shaped mark
//   - mark/symbol: point symbol with an advisory size range
//
// # Lifecycle
//
// Instances have exactly two states. A new instance is Uninitialized: it has
// no attribute map and cannot participate in a solve. Initialize transitions
// it to Initialized exactly once by running the class's default-state
// initializer, which assigns every declared attribute a value consistent
// with the class's own constraints. There is no transition back.
package element
