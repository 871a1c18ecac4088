package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spentcli/spent/internal/model"
	"github.com/spentcli/spent/internal/stats"
	"github.com/spentcli/spent/internal/toast"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F87171"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(1, 2)

	toastStyles = map[toast.Severity]lipgloss.Style{
		toast.SeveritySuccess: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1),
		toast.SeverityError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 1),
		toast.SeverityWarning: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1),
	}
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("💸 Expenses"))
	b.WriteString("  ")
	b.WriteString(m.filterSummary())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading expenses...\n", m.spinner.View()))
	case m.state == StateSearch:
		b.WriteString("  Search: " + m.searchInput.View() + "\n\n")
		b.WriteString(m.renderTable())
	case len(m.expenses) == 0:
		b.WriteString(m.renderEmptyState())
	default:
		b.WriteString(m.renderTable())
	}

	if m.state == StateConfirmDelete && m.cursor < len(m.expenses) {
		e := m.expenses[m.cursor]
		b.WriteString("\n")
		b.WriteString(dialogStyle.Render(fmt.Sprintf(
			"Delete expense of %.2f on %s?\n\n[y/Enter] delete    [Esc/n] keep",
			e.Amount, e.Date.String())))
		b.WriteString("\n")
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// filterSummary describes the active filters, or nothing when unfiltered.
func (m Model) filterSummary() string {
	var parts []string
	if m.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", m.filter.Search))
	}
	if m.filter.Category != "" {
		parts = append(parts, "category="+model.CategoryByValue(m.filter.Category).Label)
	}
	if m.filter.StartDate != "" || m.filter.EndDate != "" {
		parts = append(parts, fmt.Sprintf("dates=%s..%s", m.filter.StartDate, m.filter.EndDate))
	}
	if len(parts) == 0 {
		return ""
	}
	return subtleStyle.Render("filters: " + strings.Join(parts, " "))
}

func (m Model) renderEmptyState() string {
	if m.filter.IsZero() {
		return subtleStyle.Render("  No expenses yet. Get started with 'spent add'.\n")
	}
	return subtleStyle.Render("  No expenses match your filters. Press x to clear them.\n")
}

func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString("  ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-16s %10s  %s", "DATE", "CATEGORY", "AMOUNT", "NOTES")))
	b.WriteString("\n")

	for i, e := range m.expenses {
		cat := model.CategoryByValue(e.Category)
		notes := e.Notes
		if notes == "" {
			notes = "-"
		}
		if len(notes) > 40 {
			notes = notes[:37] + "..."
		}

		line := fmt.Sprintf("%-12s %-16s %10.2f  %s", e.Date.String(), cat.Label, e.Amount, notes)
		if i == m.cursor {
			b.WriteString("▸ " + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(amountStyle.Render(fmt.Sprintf("Total: %.2f", stats.Total(m.expenses))))
	b.WriteString(subtleStyle.Render(fmt.Sprintf("  (%d expenses)", len(m.expenses))))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style, ok := toastStyles[t.Severity]
		if !ok {
			style = toastStyles[toast.SeverityWarning]
		}
		lines = append(lines, style.Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFooter() string {
	if m.showHelp {
		help := []string{
			"↑/k up    ↓/j down    g/G first/last",
			"/ search    c cycle category    x clear filters    r refresh",
			"d delete    ? close help    q quit",
		}
		return subtleStyle.Render(strings.Join(help, "\n"))
	}
	return subtleStyle.Render("/ search · c category · x clear · r refresh · d delete · ? help · q quit")
}
