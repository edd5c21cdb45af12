package pipeline

import (
	"bytes"
	"fmt"

	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/render/constraintdot"
)

// renderArtifacts produces every requested output format for a solved chart.
//
// The JSON artifact is the solved document, re-importable with chartio. The
// DOT, SVG, and PNG artifacts are constraint-graph views built from a fresh
// session over the solved chart; since solving is idempotent, the session
// reproduces the solved values exactly.
func renderArtifacts(c *chart.Chart, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	needsDOT := false
	for _, f := range opts.Formats {
		if f == FormatDOT || f == FormatSVG || f == FormatPNG {
			needsDOT = true
		}
	}
	if needsDOT {
		sess, err := chart.BuildSession(c)
		if err != nil {
			return nil, fmt.Errorf("build session: %w", err)
		}
		if err := sess.Solve(); err != nil {
			return nil, fmt.Errorf("solve session: %w", err)
		}
		vars, cons := sess.Snapshot()
		dot = constraintdot.ToDOT(vars, cons, constraintdot.Options{Values: opts.Values})
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := chartio.WriteChart(c, &buf); err != nil {
				return nil, fmt.Errorf("encode document: %w", err)
			}
			artifacts[format] = buf.Bytes()
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, err := constraintdot.RenderSVG(dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		case FormatPNG:
			png, err := constraintdot.RenderPNG(dot, opts.Scale)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}

	return artifacts, nil
}
