// Package chartio provides JSON import and export for chart documents.
//
// # Overview
//
// A chart document is the serialized form of a [chart.Chart]: the glyph
// tree with every attribute value, plus the user-authored constraints.
// The format is designed for:
//
//   - Persisting authored charts between editing sessions
//   - Feeding the solve pipeline from files or HTTP request bodies
//   - Round-trip preservation: import, solve, export, and re-import
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "glyphs": [
//	    {
//	      "class": "glyph/rect",
//	      "attrs": {"width": 60, "height": 100},
//	      "marks": [
//	        {"class": "mark/anchor"},
//	        {"class": "mark/rect", "attrs": {"width": 40}}
//	      ]
//	    }
//	  ],
//	  "constraints": [
//	    {
//	      "strength": "strong",
//	      "constant": 120,
//	      "lhs": [{"coeff": 1, "glyph": 0, "mark": -1, "attr": "width"}]
//	    }
//	  ]
//	}
//
// # Element Fields
//
// Required:
//   - class: Catalog name of the element class ("glyph/..." or "mark/...")
//
// Optional:
//   - id: Stable element identifier (a fresh one is generated if omitted)
//   - attrs: Numeric attribute overrides applied over the class defaults
//   - text: Text attribute overrides
//   - marks: Child marks, glyphs only, in ownership order
//
// Attributes not listed keep their class defaults, so a document written by
// an older authoring session stays loadable after a class gains attributes.
// Attributes unknown to the class fail the import.
//
// # Constraint Fields
//
// Each constraint is sum(lhs) = sum(rhs) + constant. Terms reference
// attributes by tree position: glyph index, mark index (-1 for the glyph
// itself), attribute name. Strength is one of "weak", "medium", "strong",
// or "hard". References are validated structurally on import; attribute
// existence is checked when the chart is solved.
//
// # Import and Export
//
// Use [ImportChart] to read a document from a file path, or [ReadChart] to
// read from any io.Reader. Use [ExportChart] and [WriteChart] for output.
// Export writes every attribute explicitly, defaults included, so a
// document pinned to one class version stays stable if defaults change.
package chartio
