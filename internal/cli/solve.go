package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/pipeline"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// solveCommand creates the solve command for running the constraint pipeline.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		pins       []string
		noCache    bool
		refresh    bool
		values     bool
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "solve [chart.json]",
		Short: "Solve a chart document and write the results",
		Long: `Solve a chart document and write the results.

The solve command loads a chart document, runs the constraint solver over
every glyph and mark, and writes the solved document (or a constraint-graph
rendering) to disk. Pins applied with --pin override document attributes as
hard constraints, e.g. --pin g0.width=120 or --pin g0.m1.x=-4.5.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Path:    args[0],
				Refresh: refresh,
				Formats: c.parseFormats(formatsStr),
				Values:  values,
				Scale:   scale,
			}
			for _, p := range pins {
				pin, err := parsePin(p)
				if err != nil {
					return err
				}
				opts.Pins = append(opts.Pins, pin)
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().StringArrayVar(&pins, "pin", nil, "pin an attribute, e.g. g0.width=120 (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the solve cache and recompute")
	cmd.Flags().BoolVar(&values, "values", false, "include solved values in DOT labels")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")

	return cmd
}

// runSolve executes the pipeline and writes the artifacts.
func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Solving chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	printSuccess("Solved %s", opts.Path)
	printStats(result.Stats.Variables, result.Stats.Constraints, result.CacheInfo.SolveHit)
	for _, hint := range result.Solve.Hints {
		printWarning("%s %s = %.4g outside [%g, %g]", hint.Class, hint.Attribute, hint.Value, hint.Min, hint.Max)
	}

	return writeArtifacts(result.Artifacts, opts.Formats, opts.Path, output)
}

// writeArtifacts writes each rendered format to disk.
//
// With a single format, output names the file directly (default: the input
// base name with ".solved.<ext>"). With multiple formats, output (or the
// input base name) is used as a base path and the extension is appended.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + ".solved"
	}

	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := writeFile(path, artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// parsePin parses "g<glyph>[.m<mark>].<attr>=<value>" into a hard pin.
func parsePin(s string) (chart.Constraint, error) {
	lhs, value, ok := strings.Cut(s, "=")
	if !ok {
		return chart.Constraint{}, fmt.Errorf("invalid pin %q: expected attr=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return chart.Constraint{}, fmt.Errorf("invalid pin %q: %w", s, err)
	}

	ref, err := parseAttrRef(strings.TrimSpace(lhs))
	if err != nil {
		return chart.Constraint{}, fmt.Errorf("invalid pin %q: %w", s, err)
	}
	return chart.Pin(ref, v, solver.Hard), nil
}

// parseAttrRef parses "g<glyph>[.m<mark>].<attr>" into an attribute reference.
func parseAttrRef(s string) (chart.AttrRef, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 || !strings.HasPrefix(parts[0], "g") {
		return chart.AttrRef{}, fmt.Errorf("expected g<n>.<attr> or g<n>.m<n>.<attr>")
	}

	glyph, err := strconv.Atoi(parts[0][1:])
	if err != nil {
		return chart.AttrRef{}, fmt.Errorf("bad glyph index %q", parts[0])
	}
	if len(parts) == 2 {
		return chart.GlyphAttr(glyph, parts[1]), nil
	}

	if !strings.HasPrefix(parts[1], "m") {
		return chart.AttrRef{}, fmt.Errorf("bad mark index %q", parts[1])
	}
	mark, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return chart.AttrRef{}, fmt.Errorf("bad mark index %q", parts[1])
	}
	return chart.MarkAttr(glyph, mark, parts[2]), nil
}
