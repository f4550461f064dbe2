// Package tui is a terminal inspector for a built chart page.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"flightplots/internal/plot"
	"flightplots/internal/session"
	"flightplots/internal/ui"
)

const seriesColWidth = 48

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type model struct {
	sess   *session.Session
	table  table.Model
	width  int
	wrap   bool
	status string
}

// NewModel returns the bubbletea model inspecting sess.
func NewModel(sess *session.Session) tea.Model {
	return newModel(sess)
}

func newModel(sess *session.Session) model {
	cols := []table.Column{
		{Title: "Chart", Width: 40},
		{Title: "Series", Width: 6},
		{Title: "Labels", Width: seriesColWidth},
		{Title: "Anchor", Width: 40},
	}
	rows := chartRows(sess.Page().Charts())
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1), table.WithFocused(true))
	return model{sess: sess, table: t, wrap: true}
}

func chartRows(charts []*plot.Chart) []table.Row {
	rows := make([]table.Row, 0, len(charts))
	for _, c := range charts {
		rows = append(rows, table.Row{
			c.Title,
			fmt.Sprintf("%d", len(c.Series)),
			runewidth.Truncate(seriesLabels(c), seriesColWidth, "…"),
			ui.Anchor(c.Title),
		})
	}
	return rows
}

func seriesLabels(c *plot.Chart) string {
	labels := make([]string, len(c.Series))
	for i, s := range c.Series {
		labels[i] = s.Label
	}
	return strings.Join(labels, ", ")
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			st, err := m.sess.ToggleParamChanges()
			if err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("parameter changes %s (%d labels)", st.State, len(st.Labels))
			}
			return m, nil
		case "w":
			m.wrap = !m.wrap
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	sections := []string{
		titleStyle.Render("Flight log " + m.sess.LogID),
		m.table.View(),
		m.renderOmitted(),
		m.renderToggle(),
	}
	if m.status != "" {
		sections = append(sections, dimStyle.Render(m.status))
	}
	sections = append(sections, dimStyle.Render("p: toggle parameter changes  w: wrap  q: quit"))
	return strings.Join(sections, "\n")
}

func (m model) renderOmitted() string {
	res := m.sess.Result
	var b strings.Builder
	if len(res.Empty) > 0 {
		b.WriteString("No data: " + strings.Join(res.Empty, ", ") + "\n")
	}
	for _, s := range res.Skipped {
		verb := "Skipped"
		if s.Unexpected {
			verb = "Failed"
		}
		fmt.Fprintf(&b, "%s: %s (%v)\n", verb, s.Title, s.Err)
	}
	out := strings.TrimRight(b.String(), "\n")
	if m.wrap && m.width > 0 {
		out = wordwrap.String(out, m.width)
	}
	return out
}

func (m model) renderToggle() string {
	t := m.sess.Page().Toggle
	if t == nil {
		return dimStyle.Render("● no parameter changes")
	}
	if t.State() == ui.Visible {
		return visibleStyle.Render("●") + " " + t.Caption()
	}
	return hiddenStyle.Render("●") + " " + t.Caption()
}

// Run starts the inspector on the terminal.
func Run(sess *session.Session) error {
	_, err := tea.NewProgram(newModel(sess), tea.WithAltScreen()).Run()
	return err
}

// WritePlain prints the page summary without terminal control sequences.
func WritePlain(w io.Writer, sess *session.Session) error {
	fmt.Fprintf(w, "log %s (session %s)\n", sess.LogID, sess.ID)
	for _, n := range sess.Nav() {
		c, _ := sess.Page().Chart(n.ModelID)
		fmt.Fprintf(w, "  #%-45s %2d series  %s\n", n.Fragment, len(c.Series), seriesLabels(c))
	}
	for _, e := range sess.Result.Empty {
		fmt.Fprintf(w, "  empty    %s\n", e)
	}
	for _, s := range sess.Result.Skipped {
		verb := "skipped"
		if s.Unexpected {
			verb = "failed "
		}
		fmt.Fprintf(w, "  %s  %s: %v\n", verb, s.Title, s.Err)
	}
	if t := sess.Page().Toggle; t != nil {
		fmt.Fprintf(w, "parameter toggle: %s\n", t.Caption())
	}
	return nil
}
