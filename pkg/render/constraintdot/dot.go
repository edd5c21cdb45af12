package constraintdot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/MaxCodeXTC/charticulator/pkg/render"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// Options configures constraint graph rendering.
type Options struct {
	// Values includes the solved value in each variable label.
	Values bool
}

// ToDOT converts a session snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
//
// Variables are ellipses, constraints are boxes, and each edge carries the
// coefficient binding the pair. Hard constraints are bold; soft constraints
// are dashed and labeled with their tier.
func ToDOT(vars []solver.VariableInfo, cons []solver.ConstraintInfo, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph constraints {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for i, v := range vars {
		fmt.Fprintf(&buf, "  v%d [shape=ellipse, label=%q];\n", i, varLabel(i, v, opts.Values))
	}

	buf.WriteString("\n")
	for i, c := range cons {
		fmt.Fprintf(&buf, "  c%d [shape=box, label=%q%s];\n", i, consLabel(c), consStyle(c.Strength))
		for j, vi := range c.Vars {
			fmt.Fprintf(&buf, "  c%d -- v%d [label=%q];\n", i, vi, strconv.FormatFloat(c.Coeffs[j], 'g', -1, 64))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func varLabel(i int, v solver.VariableInfo, values bool) string {
	name := v.Label
	if name == "" {
		name = fmt.Sprintf("v%d", i)
	}
	if values {
		return fmt.Sprintf("%s = %.4g", name, v.Value)
	}
	return name
}

func consLabel(c solver.ConstraintInfo) string {
	parts := make([]string, len(c.Coeffs))
	for i, coeff := range c.Coeffs {
		parts[i] = fmt.Sprintf("%gv%d", coeff, c.Vars[i])
	}
	return fmt.Sprintf("%s\n%s = %g", c.Strength, strings.Join(parts, " + "), c.RHS)
}

func consStyle(s solver.Strength) string {
	if s == solver.Hard {
		return ", style=bold"
	}
	return ", style=dashed"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
