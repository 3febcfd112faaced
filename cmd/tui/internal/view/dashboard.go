package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/report"
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(24)

	cardTitleStyle = lipgloss.NewStyle().Faint(true)
	goodStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DashboardModel shows the current month at a glance: totals, the
// month-over-month trend and the expense breakdown by category.
type DashboardModel struct {
	CommonModel
	store *store.Store

	snap       finance.Snapshot
	summary    report.Summary
	comparison report.Comparison
	spending   map[string]float64
}

func NewDashboardModel(st *store.Store) DashboardModel {
	m := DashboardModel{store: st}
	m.refresh()

	return m
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) refresh() {
	now := time.Now()

	m.snap = m.store.Snapshot()
	m.summary = report.MonthSummary(m.snap.Transactions, now)
	m.comparison = report.MonthComparison(m.snap.Transactions, now)
	m.spending = report.MonthlySpending(m.snap.Transactions, now)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Balance", FormatAmount(m.summary.Balance), ""),
		m.card("Income", FormatAmount(m.summary.Income), m.trend(m.comparison.IncomeChange, m.comparison.IncomeImproved)),
		m.card("Expenses", FormatAmount(m.summary.Expenses), m.trend(m.comparison.ExpenseChange, m.comparison.ExpenseImproved)),
		m.card("Savings Rate", fmt.Sprintf("%.1f%%", m.summary.SavingsRate), ""),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		lipgloss.NewStyle().Bold(true).Render("Expenses by Category (this month)"),
		m.breakdown(),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) card(title, value, trend string) string {
	body := cardTitleStyle.Render(title) + "\n" + lipgloss.NewStyle().Bold(true).Render(value)
	if trend != "" {
		body += "\n" + trend
	}

	return cardStyle.Render(body)
}

func (m DashboardModel) trend(change float64, improved bool) string {
	if change == 0 {
		return cardTitleStyle.Render("vs last month: n/a")
	}

	style := badStyle
	if improved {
		style = goodStyle
	}

	return style.Render(fmt.Sprintf("%+.1f%% vs last month", change))
}

func (m DashboardModel) breakdown() string {
	if len(m.spending) == 0 {
		return cardTitleStyle.Render("No expenses recorded this month.")
	}

	names := make([]string, 0, len(m.spending))
	total := 0.0

	for name, amount := range m.spending {
		names = append(names, name)
		total += amount
	}

	// Largest spenders first.
	sort.Slice(names, func(i, j int) bool { return m.spending[names[i]] > m.spending[names[j]] })

	var sb strings.Builder

	for _, name := range names {
		amount := m.spending[name]

		width := 0
		if total > 0 {
			width = int(amount / total * 30)
		}

		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.snap.CategoryColor(name))).
			Render(strings.Repeat("█", width) + strings.Repeat("░", 30-width))

		sb.WriteString(fmt.Sprintf("%s %-16s %s %10s\n", CategoryDot(m.snap, name), name, bar, FormatAmount(amount)))
	}

	return sb.String()
}
