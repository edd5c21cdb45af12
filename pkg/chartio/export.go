package chartio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// documentVersion is written on export and checked on import.
const documentVersion = 1

var strengthToString = map[solver.Strength]string{
	solver.Weak:   "weak",
	solver.Medium: "medium",
	solver.Strong: "strong",
	solver.Hard:   "hard",
}

type document struct {
	Version     int             `json:"version"`
	Glyphs      []docElement    `json:"glyphs"`
	Constraints []docConstraint `json:"constraints,omitempty"`
}

type docElement struct {
	ID    string             `json:"id,omitempty"`
	Class string             `json:"class"`
	Attrs map[string]float64 `json:"attrs,omitempty"`
	Text  map[string]string  `json:"text,omitempty"`
	Marks []docElement       `json:"marks,omitempty"`
}

type docConstraint struct {
	Strength string    `json:"strength"`
	Constant float64   `json:"constant,omitempty"`
	LHS      []docTerm `json:"lhs"`
	RHS      []docTerm `json:"rhs,omitempty"`
}

type docTerm struct {
	Coeff float64 `json:"coeff"`
	Glyph int     `json:"glyph"`
	Mark  int     `json:"mark"`
	Attr  string  `json:"attr"`
}

// WriteChart encodes a chart as a JSON document and writes it to w.
// Every attribute is written explicitly, defaults included, so the document
// can be re-imported with [ReadChart] for round-trip processing.
func WriteChart(c *chart.Chart, w io.Writer) error {
	doc := document{
		Version: documentVersion,
		Glyphs:  make([]docElement, 0, c.GlyphCount()),
	}

	for _, g := range c.Glyphs() {
		doc.Glyphs = append(doc.Glyphs, exportElement(g))
	}
	for _, cons := range c.Constraints() {
		doc.Constraints = append(doc.Constraints, docConstraint{
			Strength: strengthToString[cons.Strength],
			Constant: cons.Constant,
			LHS:      exportTerms(cons.LHS),
			RHS:      exportTerms(cons.RHS),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportChart writes a chart to a JSON file at path.
// This is a convenience wrapper around [WriteChart] for file-based output.
func ExportChart(c *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteChart(c, f)
}

func exportElement(inst *element.Instance) docElement {
	el := docElement{ID: inst.ID(), Class: inst.Class().Name()}
	if inst.Initialized() {
		for _, sp := range inst.Class().Schema().Specs() {
			switch sp.Kind {
			case attrs.Number:
				if el.Attrs == nil {
					el.Attrs = make(map[string]float64)
				}
				el.Attrs[sp.Name], _ = inst.Attrs().Get(sp.Name)
			case attrs.Text:
				if el.Text == nil {
					el.Text = make(map[string]string)
				}
				el.Text[sp.Name], _ = inst.Attrs().GetText(sp.Name)
			}
		}
	}
	for _, m := range inst.Marks() {
		el.Marks = append(el.Marks, exportElement(m))
	}
	return el
}

func exportTerms(terms []chart.Term) []docTerm {
	out := make([]docTerm, len(terms))
	for i, t := range terms {
		out[i] = docTerm{Coeff: t.Coeff, Glyph: t.Ref.Glyph, Mark: t.Ref.Mark, Attr: t.Ref.Attr}
	}
	return out
}
