package chartio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

var strengthFromString = map[string]solver.Strength{
	"weak":   solver.Weak,
	"medium": solver.Medium,
	"strong": solver.Strong,
	"hard":   solver.Hard,
}

// ReadChart decodes a JSON chart document from r.
//
// Every element's class must exist in the catalog and every attribute
// override must be declared by that class's schema; violations fail the
// import with a coded error. Constraint attribute references are kept as
// written and validated when the chart is solved.
//
// The returned chart is independent of r and can be modified safely after
// ReadChart returns. ReadChart does not close r.
func ReadChart(r io.Reader) (*chart.Chart, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart document")
	}
	if doc.Version != documentVersion {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document version %d", doc.Version)
	}

	c := chart.New()
	for i, el := range doc.Glyphs {
		g, err := importElement(el)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "glyph %d", i)
		}
		if err := c.AddGlyph(g); err != nil {
			return nil, err
		}
	}
	for i, dc := range doc.Constraints {
		cons, err := importConstraint(dc)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "constraint %d", i)
		}
		c.AddConstraint(cons)
	}
	return c, nil
}

// ImportChart reads a JSON chart document at path.
//
// ImportChart opens the file, decodes it using [ReadChart], and closes the
// file. It returns the same validation errors as [ReadChart] for malformed
// documents.
func ImportChart(path string) (*chart.Chart, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadChart(f)
}

func importElement(el docElement) (*element.Instance, error) {
	cls, ok := element.Lookup(el.Class)
	if !ok {
		return nil, errors.New(errors.ErrCodeClassNotFound, "no class %q in catalog", el.Class)
	}
	inst := element.NewInitialized(cls)
	inst.SetID(el.ID)

	// Overlay the document's values on top of the class defaults.
	for name, v := range el.Attrs {
		if err := inst.Attrs().Set(name, v); err != nil {
			return nil, err
		}
	}
	for name, v := range el.Text {
		if err := inst.Attrs().SetText(name, v); err != nil {
			return nil, err
		}
	}

	for i, mel := range el.Marks {
		m, err := importElement(mel)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "mark %d", i)
		}
		if err := inst.AddMark(m); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func importConstraint(dc docConstraint) (chart.Constraint, error) {
	strength, ok := strengthFromString[dc.Strength]
	if !ok {
		return chart.Constraint{}, errors.New(errors.ErrCodeInvalidConstraint, "unknown strength %q", dc.Strength)
	}
	if len(dc.LHS) == 0 && len(dc.RHS) == 0 {
		return chart.Constraint{}, errors.New(errors.ErrCodeInvalidConstraint, "constraint has no terms")
	}
	return chart.Constraint{
		Strength: strength,
		Constant: dc.Constant,
		LHS:      importTerms(dc.LHS),
		RHS:      importTerms(dc.RHS),
	}, nil
}

func importTerms(terms []docTerm) []chart.Term {
	if len(terms) == 0 {
		return nil
	}
	out := make([]chart.Term, len(terms))
	for i, t := range terms {
		out[i] = chart.Term{
			Coeff: t.Coeff,
			Ref:   chart.AttrRef{Glyph: t.Glyph, Mark: t.Mark, Attr: t.Attr},
		}
	}
	return out
}
