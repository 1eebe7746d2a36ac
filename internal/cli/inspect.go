package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mpld3/matplotlylib/pkg/pipeline"
	"github.com/mpld3/matplotlylib/pkg/plotly"
)

// inspectCommand creates the inspect command for browsing exported traces.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "inspect [figure.json]",
		Short: "Browse the traces a figure converts to",
		Long: `Convert a figure and browse the resulting plotly traces interactively.

The inspect command shows what each matplotlib artist became: trace
types, point counts, and axis references. Select a trace to see its
full key set. Use --plain for non-interactive output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runInspect(cmd.Context(), opts, plain, noCache)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a summary instead of the interactive browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the export cache")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options, plain, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	fig, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load figure %s: %w", opts.Input, err)
	}
	doc, err := runner.Export(ctx, fig, opts)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if len(doc.Data) == 0 {
		printInfo("No traces produced for %s", opts.Input)
		return nil
	}

	if plain {
		printTraceSummary(opts.Input, doc)
		return nil
	}

	model := NewTraceListModel(opts.Input, doc.Data)
	_, err = tea.NewProgram(model).Run()
	return err
}

// printTraceSummary prints one line per trace without the TUI.
func printTraceSummary(input string, doc *plotly.Figure) {
	printInfo("%s converts to %d trace(s)", input, len(doc.Data))
	for i, trace := range doc.Data {
		printDetail("%d: %s  %s  %d points  %s",
			i+1, traceType(trace), traceName(trace), pointCount(trace), axisRefs(trace))
	}
}

// =============================================================================
// TraceListModel - Interactive trace browser
// =============================================================================

// TraceListModel is the bubbletea model for browsing exported traces.
type TraceListModel struct {
	Input  string
	Traces plotly.ObjectList
	Cursor int
	Height int
	Offset int
	Detail bool
}

// NewTraceListModel creates a new trace list model.
func NewTraceListModel(input string, traces plotly.ObjectList) TraceListModel {
	return TraceListModel{
		Input:  input,
		Traces: traces,
		Height: 15,
	}
}

func (m TraceListModel) Init() tea.Cmd {
	return nil
}

func (m TraceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Traces)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TraceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Traces: " + m.Input))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ toggle detail  q quit"))
	b.WriteString("\n\n")

	if m.Detail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Traces))))
	return b.String()
}

func (m TraceListModel) listView() string {
	end := m.Offset + m.Height
	if end > len(m.Traces) {
		end = len(m.Traces)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		trace := m.Traces[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			traceType(trace),
			traceName(trace),
			fmt.Sprintf("%d", pointCount(trace)),
			axisRefs(trace),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Type", "Name", "Points", "Axes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func (m TraceListModel) detailView() string {
	trace := m.Traces[m.Cursor]

	keys := make([]string, 0, len(trace))
	for k := range trace {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("Trace %d (%s)", m.Cursor+1, traceType(trace))))
	b.WriteString("\n\n")
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(StyleValue.Render(fmt.Sprintf("%-12s", k)))
		b.WriteString(" ")
		b.WriteString(StyleDim.Render(compactValue(trace[k])))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func traceType(trace plotly.Object) string {
	if t, ok := trace["type"].(string); ok {
		return t
	}
	return "scatter"
}

func traceName(trace plotly.Object) string {
	if n, ok := trace["name"].(string); ok {
		return n
	}
	return "—"
}

func axisRefs(trace plotly.Object) string {
	x, _ := trace["xaxis"].(string)
	y, _ := trace["yaxis"].(string)
	if x == "" && y == "" {
		return "x/y"
	}
	if x == "" {
		x = "x"
	}
	if y == "" {
		y = "y"
	}
	return x + "/" + y
}

// pointCount handles both freshly built documents ([]float64) and documents
// that went through a JSON round trip ([]any).
func pointCount(trace plotly.Object) int {
	switch v := trace["x"].(type) {
	case []float64:
		return len(v)
	case []any:
		return len(v)
	}
	return 0
}

// compactValue renders a value on one line, truncated for display.
func compactValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	const maxLen = 60
	s := string(data)
	if len(s) > maxLen {
		return s[:maxLen] + "…"
	}
	return s
}
