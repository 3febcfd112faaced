package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/report"
)

type budgetState int

const (
	budgetStateBrowse budgetState = iota
	budgetStateForm
)

const budgetBarWidth = 24

// BudgetsModel manages budgets and shows how much of each is spent this
// month.
type BudgetsModel struct {
	CommonModel
	store *store.Store

	state    budgetState
	snap     finance.Snapshot
	spending map[string]float64
	cursor   int
	status   string

	form      *huh.Form
	editingID string

	formCategory string
	formAmount   string
	formPeriod   string
}

func NewBudgetsModel(st *store.Store) BudgetsModel {
	m := BudgetsModel{store: st}
	m.reload()

	return m
}

func (m BudgetsModel) Title() string { return "Budgets" }
func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | d: delete | up/down: select"
}

func (m BudgetsModel) Init() tea.Cmd {
	return nil
}

func (m *BudgetsModel) reload() {
	m.snap = m.store.Snapshot()
	m.spending = report.MonthlySpending(m.snap.Transactions, time.Now())

	if m.cursor >= len(m.snap.Budgets) {
		m.cursor = len(m.snap.Budgets) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case budgetStateBrowse:
		return m.updateBrowse(msg)
	case budgetStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BudgetsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Budgets)-1 {
			m.cursor++
		}
	case "a":
		return m.enterForm(nil)
	case "e":
		if b := m.selected(); b != nil {
			return m.enterForm(b)
		}
	case "d":
		if b := m.selected(); b != nil {
			m.store.DeleteBudget(b.ID)
			m.status = fmt.Sprintf("Deleted budget for %s", b.Category)
			m.reload()
		}
	}

	return m, nil
}

func (m *BudgetsModel) selected() *finance.Budget {
	if m.cursor < 0 || m.cursor >= len(m.snap.Budgets) {
		return nil
	}

	return &m.snap.Budgets[m.cursor]
}

func (m BudgetsModel) enterForm(b *finance.Budget) (tea.Model, tea.Cmd) {
	if b != nil {
		m.editingID = b.ID
		m.formCategory = b.Category
		m.formAmount = strconv.FormatFloat(b.Amount, 'f', 2, 64)
		m.formPeriod = string(b.Period)
	} else {
		m.editingID = ""
		m.formCategory = ""
		m.formAmount = ""
		m.formPeriod = string(finance.PeriodMonthly)
	}

	var categoryOptions []huh.Option[string]

	for _, c := range m.snap.Categories {
		if c.Kind == finance.KindIncome {
			continue
		}

		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.Name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("period").
				Title("Period").
				Options(
					huh.NewOption("Weekly", string(finance.PeriodWeekly)),
					huh.NewOption("Monthly", string(finance.PeriodMonthly)),
					huh.NewOption("Yearly", string(finance.PeriodYearly)),
				).
				Value(&m.formPeriod),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = budgetStateForm

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetStateBrowse
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formAmount), 64)

	if m.editingID == "" {
		m.store.AddBudget(store.CreateBudgetParams{
			Category: m.formCategory,
			Amount:   amount,
			Period:   finance.Period(m.formPeriod),
		})
		m.status = fmt.Sprintf("Added budget for %s", m.formCategory)
	} else {
		m.store.UpdateBudget(finance.Budget{
			ID:       m.editingID,
			Category: m.formCategory,
			Amount:   amount,
			Period:   finance.Period(m.formPeriod),
		})
		m.status = fmt.Sprintf("Updated budget for %s", m.formCategory)
	}

	m.state = budgetStateBrowse
	m.form = nil
	m.reload()

	return m, nil
}

func (m BudgetsModel) View() string {
	if m.state == budgetStateForm && m.form != nil {
		title := "Add Budget"
		if m.editingID != "" {
			title = "Edit Budget"
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render(fmt.Sprintf("%s\n\n%s", title, m.form.View())),
		)
	}

	if len(m.snap.Budgets) == 0 {
		return lipgloss.NewStyle().Padding(1).Render(
			"No budgets set yet. Press 'a' to add one.",
		)
	}

	var sb strings.Builder

	for i, b := range m.snap.Budgets {
		usage := report.BudgetUsage(b, m.spending[b.Category])

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		spentStyle := lipgloss.NewStyle()
		if usage.Over {
			spentStyle = badStyle
		}

		sb.WriteString(fmt.Sprintf("%s%s %-16s %s  %s of %s (%s)\n",
			cursor,
			CategoryDot(m.snap, b.Category),
			b.Category,
			m.bar(usage),
			spentStyle.Render(FormatAmount(usage.Spent)),
			FormatAmount(b.Amount),
			b.Period,
		))

		if usage.Over {
			sb.WriteString(fmt.Sprintf("      %s\n", badStyle.Render(
				fmt.Sprintf("Over budget by %s", FormatAmount(-usage.Remaining)))))
		}
	}

	content := sb.String()
	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BudgetsModel) bar(usage report.Usage) string {
	filled := int(usage.Percent / 100 * budgetBarWidth)
	if filled > budgetBarWidth {
		filled = budgetBarWidth
	}

	color := lipgloss.Color("42")
	if usage.Over {
		color = lipgloss.Color("196")
	} else if usage.Percent >= 80 {
		color = lipgloss.Color("214")
	}

	return lipgloss.NewStyle().Foreground(color).
		Render(strings.Repeat("█", filled) + strings.Repeat("░", budgetBarWidth-filled))
}
