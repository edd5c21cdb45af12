package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/pipeline"
	"github.com/MaxCodeXTC/charticulator/pkg/render/constraintdot"
)

// debugCommand creates the debug command for constraint-graph rendering.
func (c *CLI) debugCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		values     bool
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "debug [chart.json]",
		Short: "Render the constraint graph of a chart",
		Long: `Render the constraint graph of a chart.

The debug command builds the full solve session for a document - every
variable, every stay, every intrinsic and user constraint - and renders it
as a bipartite graph. This is the tool for diagnosing infeasible models:
the session is rendered even when solving fails, with seed values in place
of solved ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := c.parseFormats(formatsStr)
			if formatsStr == "" {
				formats = []string{pipeline.FormatDOT}
			}
			for _, f := range formats {
				if f == pipeline.FormatJSON {
					return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", f)
				}
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return c.runDebug(args[0], formats, output, values, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png (comma-separated)")
	cmd.Flags().BoolVar(&values, "values", false, "include solved values in labels")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")

	return cmd
}

// runDebug builds the session and writes the requested graph renderings.
func (c *CLI) runDebug(path string, formats []string, output string, values bool, scale float64) error {
	ch, err := chartio.ImportChart(path)
	if err != nil {
		return err
	}

	sess, err := chart.BuildSession(ch)
	if err != nil {
		return err
	}
	if err := sess.Solve(); err != nil {
		// Render the unsolved session anyway - that is the point of debug.
		printWarning("solve failed: %v", err)
	}

	vars, cons := sess.Snapshot()
	dot := constraintdot.ToDOT(vars, cons, constraintdot.Options{Values: values})

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		switch format {
		case pipeline.FormatDOT:
			artifacts[format] = []byte(dot)
		case pipeline.FormatSVG:
			svg, err := constraintdot.RenderSVG(dot)
			if err != nil {
				return err
			}
			artifacts[format] = svg
		case pipeline.FormatPNG:
			png, err := constraintdot.RenderPNG(dot, scale)
			if err != nil {
				return err
			}
			artifacts[format] = png
		}
	}

	printSuccess("Constraint graph for %s", path)
	printStats(sess.VariableCount(), sess.ConstraintCount(), false)
	return writeArtifacts(artifacts, formats, path, output)
}
