package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/insight"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/report"
)

type insightMode int

const (
	modeInsights insightMode = iota
	modeSuggestions
)

// InsightsModel requests AI analysis of recent transactions and shows
// the result. The last successful response is kept on the store so it
// survives switching views.
type InsightsModel struct {
	CommonModel
	store  *store.Store
	client *insight.Client

	mode    insightMode
	window  report.Window
	loading bool
	spin    spinner.Model
	content string
	errText string
}

func NewInsightsModel(st *store.Store, client *insight.Client) InsightsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return InsightsModel{
		store:   st,
		client:  client,
		window:  report.WindowMonth,
		spin:    sp,
		content: st.Insights(),
	}
}

func (m InsightsModel) Title() string { return "AI Insights" }
func (m InsightsModel) ShortHelp() string {
	return "Esc: back | g: generate | s: suggestions | w: window"
}

func (m InsightsModel) Init() tea.Cmd {
	return nil
}

func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "g":
			m.mode = modeInsights
			m.loading = true
			m.errText = ""

			return m, tea.Batch(m.spin.Tick, m.generateCmd())
		case "s":
			m.mode = modeSuggestions
			m.loading = true
			m.errText = ""

			return m, tea.Batch(m.spin.Tick, m.generateCmd())
		case "w":
			m.window = nextWindow(m.window)
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case insightResultMsg:
		m.loading = false

		if msg.err != nil {
			m.errText = msg.err.Error()

			return m, nil
		}

		m.content = msg.text
		m.store.SetInsights(msg.text)
	}

	return m, nil
}

func (m InsightsModel) generateCmd() tea.Cmd {
	snap := m.store.Snapshot()
	mode := m.mode
	window := m.window
	client := m.client

	return func() tea.Msg {
		ctx, cancel := AiCtx()
		defer cancel()

		txs := report.FilterByWindow(snap.Transactions, time.Now(), window)

		var (
			text string
			err  error
		)

		switch mode {
		case modeSuggestions:
			text, err = client.FinanceSuggestions(ctx, txs, snap.Budgets)
		default:
			text, err = client.SpendingInsights(ctx, txs, string(window))
		}

		return insightResultMsg{text: text, err: err}
	}
}

func nextWindow(w report.Window) report.Window {
	switch w {
	case report.WindowWeek:
		return report.WindowMonth
	case report.WindowMonth:
		return report.WindowYear
	default:
		return report.WindowWeek
	}
}

func (m InsightsModel) View() string {
	var sb strings.Builder

	mode := "Spending Insights"
	if m.mode == modeSuggestions {
		mode = "Finance Suggestions"
	}

	sb.WriteString(fmt.Sprintf("%s | %s",
		lipgloss.NewStyle().Bold(true).Render(mode),
		m.window.String(),
	))

	if m.client.Offline() {
		sb.WriteString(lipgloss.NewStyle().Faint(true).Render("  (offline mode)"))
	}

	sb.WriteString("\n\n")

	switch {
	case m.loading:
		sb.WriteString(fmt.Sprintf("%s Analyzing your transactions...", m.spin.View()))
	case m.errText != "":
		sb.WriteString(errStyle.Render(m.errText))
	case m.content == "":
		sb.WriteString("Press 'g' to generate spending insights or 's' for finance suggestions.")
	default:
		sb.WriteString(lipgloss.NewStyle().Width(72).Render(m.content))
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

type insightResultMsg struct {
	text string
	err  error
}
