package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MaxCodeXTC/charticulator/pkg/attrs"
	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
)

// inspectCommand creates the inspect command for examining solved charts.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		showGuides  bool
		showHandles bool
		classes     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [chart.json]",
		Short: "Solve a chart and display its attributes, guides, and handles",
		Long: `Solve a chart and display its attributes, guides, and handles.

The inspect command solves the document in memory and prints one table per
element with the solved value of every attribute. Alignment guides and drag
handles are shown with --guides and --handles.

With --classes (and no document), inspect lists the element class catalog
instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if classes {
				return runInspectClasses()
			}
			if len(args) != 1 {
				return fmt.Errorf("chart document is required (or use --classes)")
			}
			return c.runInspect(cmd.Context(), args[0], showGuides, showHandles)
		},
	}

	cmd.Flags().BoolVar(&showGuides, "guides", false, "show alignment guides")
	cmd.Flags().BoolVar(&showHandles, "handles", false, "show drag handles")
	cmd.Flags().BoolVar(&classes, "classes", false, "list the element class catalog")

	return cmd
}

// runInspect solves the document and prints the element tables.
func (c *CLI) runInspect(ctx context.Context, path string, showGuides, showHandles bool) error {
	prog := newProgress(loggerFromContext(ctx))

	ch, err := chartio.ImportChart(path)
	if err != nil {
		return err
	}

	result, err := chart.Solve(ctx, ch)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %d variables", result.Variables))

	printSuccess("Solved %s", path)
	printStats(result.Variables, result.Constraints, false)
	printNewline()

	for gi, g := range ch.Glyphs() {
		printElement(fmt.Sprintf("g%d", gi), g)
		for mi, m := range g.Marks() {
			printElement(fmt.Sprintf("g%d.m%d", gi, mi), m)
		}
	}

	for _, hint := range result.Hints {
		printWarning("%s %s = %.4g outside [%g, %g]", hint.Class, hint.Attribute, hint.Value, hint.Min, hint.Max)
	}

	if showGuides {
		printNewline()
		fmt.Println(StyleTitle.Render("Guides"))
		for _, eg := range ch.Guides() {
			for _, guide := range eg.Guides {
				printDetail("%s %s %s = %.4g", refName(eg.Glyph, eg.Mark), guide.Axis, guide.Attribute, guide.Value)
			}
		}
	}

	if showHandles {
		printNewline()
		fmt.Println(StyleTitle.Render("Handles"))
		for _, eh := range ch.Handles() {
			for _, h := range eh.Handles {
				printDetail("%s %s %s at %.4g", refName(eh.Glyph, eh.Mark), h.Axis, h.Attribute, h.Position)
			}
		}
	}

	return nil
}

// printElement renders one element's attributes as a table.
func printElement(name string, inst *element.Instance) {
	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(inst.Class().Name()))

	rows := [][]string{}
	for _, sp := range inst.Class().Schema().Specs() {
		var value string
		switch sp.Kind {
		case attrs.Number:
			v, _ := inst.Attrs().Get(sp.Name)
			value = fmt.Sprintf("%.4g", v)
		case attrs.Text:
			value, _ = inst.Attrs().GetText(sp.Name)
		}
		rows = append(rows, []string{sp.Name, sp.Role.String(), value})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Attribute", "Role", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Println(t.Render())
}

// runInspectClasses lists the registered element classes.
func runInspectClasses() error {
	fmt.Println(StyleTitle.Render("Element Classes"))

	rows := [][]string{}
	for _, name := range element.Names() {
		cls, _ := element.Lookup(name)
		attrNames := make([]string, 0, cls.Schema().Len())
		for _, sp := range cls.Schema().Specs() {
			attrNames = append(attrNames, sp.Name)
		}
		rows = append(rows, []string{name, fmt.Sprintf("%d", cls.Schema().Len()), strings.Join(attrNames, ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Class", "Attrs", "Schema").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}

// refName formats a tree position for display.
func refName(glyph, mark int) string {
	if mark < 0 {
		return fmt.Sprintf("g%d", glyph)
	}
	return fmt.Sprintf("g%d.m%d", glyph, mark)
}
