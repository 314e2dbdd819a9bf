package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meshackyaro/Sanctifier/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	detailStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	sevStyles   = map[model.Severity]lipgloss.Style{
		model.SeverityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		model.SeverityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		model.SeverityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.SeverityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

// Model is the findings browser: a table on top and the selected finding below.
type Model struct {
	findings []model.Finding
	table    table.Model
	quitting bool
}

func New(findings []model.Finding) Model {
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, table.Row{
			string(f.Severity),
			f.RuleID,
			fmt.Sprintf("%s:%d", f.File, f.StartLine),
			f.Message,
		})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Severity", Width: 9},
			{Title: "Rule", Width: 18},
			{Title: "Location", Width: 36},
			{Title: "Message", Width: 60},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(max(len(rows), 1), 15)),
	)
	return Model{findings: findings, table: t}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the finding under the cursor.
func (m Model) Selected() (model.Finding, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.findings) {
		return model.Finding{}, false
	}
	return m.findings[i], true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Sanctifier findings (%d)", len(m.findings))))
	b.WriteString("\n\n")
	if len(m.findings) == 0 {
		b.WriteString("No findings.\n")
		b.WriteString(helpStyle.Render("q: quit"))
		return b.String()
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if f, ok := m.Selected(); ok {
		b.WriteString(detailStyle.Render(detail(f)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("up/down: move  q: quit"))
	return b.String()
}

func detail(f model.Finding) string {
	sev := string(f.Severity)
	if st, ok := sevStyles[f.Severity]; ok {
		sev = st.Render(sev)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s:%d-%d\n", sev, f.RuleID, f.File, f.StartLine, f.EndLine)
	b.WriteString(f.Message)
	if f.Remediation != "" {
		b.WriteString("\nFix: " + f.Remediation)
	}
	if f.Snippet != "" {
		b.WriteString("\n\n" + strings.TrimRight(f.Snippet, "\n"))
	}
	return b.String()
}

// Run blocks until the user quits the browser.
func Run(findings []model.Finding) error {
	_, err := tea.NewProgram(New(findings), tea.WithAltScreen()).Run()
	return err
}
