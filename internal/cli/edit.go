package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MaxCodeXTC/charticulator/pkg/chart"
	"github.com/MaxCodeXTC/charticulator/pkg/chartio"
	"github.com/MaxCodeXTC/charticulator/pkg/element"
	"github.com/MaxCodeXTC/charticulator/pkg/errors"
	"github.com/MaxCodeXTC/charticulator/pkg/solver"
)

// editNudge is the attribute delta applied per arrow-key press.
const editNudge = 5.0

// editCommand creates the edit command for interactive handle dragging.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [chart.json]",
		Short: "Edit a chart interactively by dragging handles",
		Long: `Edit a chart interactively by dragging handles.

The edit command opens a terminal UI listing every drag handle of the chart.
Arrow keys nudge the selected handle; each nudge pins the handle's attribute
at its new position and re-solves the whole chart, so every dependent
attribute follows. Infeasible edits are rejected without changing the chart.

Press s to save the solved document back to the file, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0])
		},
	}
}

// runEdit loads the document and runs the interactive editor.
func (c *CLI) runEdit(ctx context.Context, path string) error {
	ch, err := chartio.ImportChart(path)
	if err != nil {
		return err
	}
	if _, err := chart.Solve(ctx, ch); err != nil {
		return err
	}

	model := newEditModel(ctx, ch, path)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if m, ok := final.(editModel); ok && m.saved {
		printSuccess("Saved %s", path)
	}
	return nil
}

// handleRef pairs a drag handle with its owner's tree position.
type handleRef struct {
	glyph  int
	mark   int // -1 for the glyph itself
	handle element.Handle
}

// editModel is the bubbletea model for the interactive editor.
type editModel struct {
	ctx     context.Context
	chart   *chart.Chart
	path    string
	base    []chart.Constraint // document constraints, kept across gestures
	handles []handleRef
	cursor  int
	status  string
	saved   bool
}

func newEditModel(ctx context.Context, ch *chart.Chart, path string) editModel {
	base := make([]chart.Constraint, len(ch.Constraints()))
	copy(base, ch.Constraints())
	m := editModel{
		ctx:   ctx,
		chart: ch,
		path:  path,
		base:  base,
	}
	m.refreshHandles()
	return m
}

// refreshHandles re-reads handle positions from the solved chart.
func (m *editModel) refreshHandles() {
	m.handles = m.handles[:0]
	for _, eh := range m.chart.Handles() {
		for _, h := range eh.Handles {
			m.handles = append(m.handles, handleRef{glyph: eh.Glyph, mark: eh.Mark, handle: h})
		}
	}
	if m.cursor >= len(m.handles) {
		m.cursor = 0
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.handles)-1 {
			m.cursor++
		}
	case "left", "h", "-":
		m.nudge(-editNudge)
	case "right", "l", "+":
		m.nudge(editNudge)
	case "s":
		if err := chartio.ExportChart(m.chart, m.path); err != nil {
			m.status = StyleWarning.Render(fmt.Sprintf("save failed: %v", errors.UserMessage(err)))
		} else {
			m.saved = true
			m.status = StyleSuccess.Render("saved")
		}
	}
	return m, nil
}

// nudge pins the selected handle's attribute at its shifted position and
// re-solves. The pin is strong, not hard, so document hard constraints win
// if the gesture fights them.
func (m *editModel) nudge(delta float64) {
	if len(m.handles) == 0 {
		return
	}
	ref := m.handles[m.cursor]

	target := ref.handle.Position + delta
	attrRef := chart.AttrRef{Glyph: ref.glyph, Mark: ref.mark, Attr: ref.handle.Attribute}

	m.chart.ClearConstraints()
	for _, cons := range m.base {
		m.chart.AddConstraint(cons)
	}
	m.chart.AddConstraint(chart.Pin(attrRef, target, solver.Strong))

	if _, err := chart.Solve(m.ctx, m.chart); err != nil {
		m.status = StyleWarning.Render(errors.UserMessage(err))
		return
	}
	m.status = StyleDim.Render(fmt.Sprintf("%s.%s pinned at %.4g", refName(ref.glyph, ref.mark), ref.handle.Attribute, target))
	m.refreshHandles()
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.path))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select handle  ←/→ nudge  s save  q quit"))
	b.WriteString("\n\n")

	for i, ref := range m.handles {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-8s %s %-6s %10.4g", cursor,
			refName(ref.glyph, ref.mark), ref.handle.Axis, ref.handle.Attribute, ref.handle.Position)
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	return b.String()
}
