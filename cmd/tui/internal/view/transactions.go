package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/insight"
)

// autoCategory is the sentinel option that defers the category choice to
// the insight client.
const autoCategory = "Auto-detect (AI)"

type txState int

const (
	txStateBrowse txState = iota
	txStateForm
)

// TransactionsModel lists, adds, edits and deletes transactions.
type TransactionsModel struct {
	CommonModel
	store   *store.Store
	insight *insight.Client

	state txState
	table table.Model
	txs   []finance.Transaction
	snap  finance.Snapshot

	form      *huh.Form
	editingID string // empty while adding

	typeFilterIdx int
	status        string

	// Form bindings
	formDesc        string
	formAmount      string
	formDate        string
	formType        string
	formCategory    string
	formSubcategory string
	formNotes       string
}

// categoryOptions lists the categories available to a transaction of the
// given type, the auto-detect sentinel first.
func categoryOptions(cats []finance.Category, t finance.Type) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(autoCategory, autoCategory)}

	for _, c := range cats {
		if !c.Offered(t) {
			continue
		}

		opts = append(opts, huh.NewOption(c.Name, c.Name))
	}

	return opts
}

func NewTransactionsModel(st *store.Store, ai *insight.Client) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 30},
		{Title: "Category", Width: 16},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := TransactionsModel{store: st, insight: ai, table: t}
	m.reload()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }
func (m TransactionsModel) ShortHelp() string {
	if m.state == txStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | d: delete | t: type filter"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m *TransactionsModel) reload() {
	m.snap = m.store.Snapshot()

	m.txs = m.txs[:0]

	for _, tx := range m.snap.Transactions {
		switch m.typeFilterIdx {
		case 1:
			if tx.Type != finance.TypeIncome {
				continue
			}
		case 2:
			if tx.Type != finance.TypeExpense {
				continue
			}
		}

		m.txs = append(m.txs, tx)
	}

	// Newest first.
	sort.SliceStable(m.txs, func(i, j int) bool {
		return m.txs[i].Date.After(m.txs[j].Date.Time)
	})

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			tx.Category,
			string(tx.Type),
			FormatSigned(tx),
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txSavedMsg:
		m.status = msg.status
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		m.reload()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterForm(nil)
		case "e":
			if tx := m.selected(); tx != nil {
				return m.enterForm(tx)
			}

			return m, nil
		case "d":
			if tx := m.selected(); tx != nil {
				m.store.DeleteTransaction(tx.ID)
				m.status = fmt.Sprintf("Deleted %q", tx.Description)
				m.reload()
			}

			return m, nil
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % 3
			m.reload()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *TransactionsModel) selected() *finance.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return &m.txs[idx]
}

func (m TransactionsModel) enterForm(tx *finance.Transaction) (tea.Model, tea.Cmd) {
	if tx != nil {
		m.editingID = tx.ID
		m.formDesc = tx.Description
		m.formAmount = strconv.FormatFloat(tx.Amount, 'f', 2, 64)
		m.formDate = FormatDate(tx.Date)
		m.formType = string(tx.Type)
		m.formCategory = tx.Category
		m.formSubcategory = tx.Subcategory
		m.formNotes = tx.Notes
	} else {
		m.editingID = ""
		m.formDesc = ""
		m.formAmount = ""
		m.formDate = ""
		m.formType = string(finance.TypeExpense)
		m.formCategory = autoCategory
		m.formSubcategory = ""
		m.formNotes = ""
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

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

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := finance.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("invalid date (YYYY-MM-DD)")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(finance.TypeExpense)),
					huh.NewOption("Income", string(finance.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return categoryOptions(m.snap.Categories, finance.Type(m.formType))
				}, &m.formType).
				Value(&m.formCategory),

			huh.NewInput().
				Key("subcategory").
				Title("Subcategory").
				Value(&m.formSubcategory),

			huh.NewInput().
				Key("notes").
				Title("Notes").
				Value(&m.formNotes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
			m.form = nil
			m.table.Focus()

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

	return m, m.saveCmd()
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.formAmount), 64)
	date, _ := finance.ParseDate(strings.TrimSpace(m.formDate))

	params := store.CreateTransactionParams{
		Description: strings.TrimSpace(m.formDesc),
		Amount:      amount,
		Date:        date,
		Category:    m.formCategory,
		Subcategory: strings.TrimSpace(m.formSubcategory),
		Type:        finance.Type(m.formType),
		Notes:       strings.TrimSpace(m.formNotes),
	}
	editingID := m.editingID

	return func() tea.Msg {
		if params.Category == autoCategory {
			ctx, cancel := AiCtx()
			defer cancel()

			params.Category = m.insight.Categorize(ctx, params.Description, params.Amount)
		}

		if editingID == "" {
			m.store.AddTransaction(params)
			return txSavedMsg{status: fmt.Sprintf("Added %q (%s)", params.Description, params.Category)}
		}

		m.store.UpdateTransaction(finance.Transaction{
			ID:          editingID,
			Amount:      params.Amount,
			Category:    params.Category,
			Subcategory: params.Subcategory,
			Date:        params.Date,
			Description: params.Description,
			Type:        params.Type,
			Notes:       params.Notes,
		})

		return txSavedMsg{status: fmt.Sprintf("Updated %q", params.Description)}
	}
}

func (m TransactionsModel) View() string {
	typeLabels := []string{"All", "Income", "Expense"}

	header := fmt.Sprintf("Filter: [t] Type: %s | %d transactions",
		lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(typeLabels[m.typeFilterIdx]),
		len(m.txs),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == txStateForm && m.form != nil {
		title := "Add Transaction"
		if m.editingID != "" {
			title = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type txSavedMsg struct {
	status string
}
