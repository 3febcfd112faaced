package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/backup"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
)

type dataState int

const (
	dataStateBrowse dataState = iota
	dataStateForm
)

type dataAction int

const (
	actionExport dataAction = iota
	actionImport
)

// DataModel exports transactions to CSV files and imports them back.
type DataModel struct {
	CommonModel
	store *store.Store

	state  dataState
	action dataAction
	form   *huh.Form
	path   string
	status string
	errs   []string
}

func NewDataModel(st *store.Store) DataModel {
	return DataModel{store: st}
}

func (m DataModel) Title() string { return "Import / Export" }
func (m DataModel) ShortHelp() string {
	if m.state == dataStateForm {
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | e: export CSV | i: import CSV"
}

func (m DataModel) Init() tea.Cmd {
	return nil
}

func (m DataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == dataStateForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "e":
		return m.enterForm(actionExport, "transactions.csv")
	case "i":
		return m.enterForm(actionImport, "")
	}

	return m, nil
}

func (m DataModel) enterForm(action dataAction, defaultPath string) (tea.Model, tea.Cmd) {
	m.action = action
	m.path = defaultPath
	m.errs = nil

	title := "Export to file"
	if action == actionImport {
		title = "Import from file"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title(title).
				Placeholder("transactions.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a file path")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = dataStateForm

	return m, m.form.Init()
}

func (m DataModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = dataStateBrowse
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

	path := strings.TrimSpace(m.path)
	m.state = dataStateBrowse
	m.form = nil

	switch m.action {
	case actionExport:
		m.runExport(path)
	case actionImport:
		m.runImport(path)
	}

	return m, nil
}

func (m *DataModel) runExport(path string) {
	snap := m.store.Snapshot()

	if err := backup.ExportFile(path, snap.Transactions); err != nil {
		m.status = ""
		m.errs = []string{fmt.Sprintf("Export failed: %v", err)}

		return
	}

	m.errs = nil
	m.status = fmt.Sprintf("Exported %d transactions to %s", len(snap.Transactions), path)
}

func (m *DataModel) runImport(path string) {
	result, err := backup.ImportFile(path)
	if err != nil {
		m.status = ""
		m.errs = []string{fmt.Sprintf("Import failed: %v", err)}

		return
	}

	for _, params := range result.Params {
		m.store.AddTransaction(params)
	}

	m.status = fmt.Sprintf("Imported %d transactions from %s", len(result.Params), path)

	m.errs = nil
	for _, rowErr := range result.Skipped {
		m.errs = append(m.errs, rowErr.Error())
	}
}

func (m DataModel) View() string {
	if m.state == dataStateForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	count := len(m.store.Snapshot().Transactions)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d transactions in the local database.\n\n", count))
	sb.WriteString("Press 'e' to export them to a CSV file, or 'i' to import from one.\n")

	if m.status != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status) + "\n")
	}

	if len(m.errs) > 0 {
		sb.WriteString("\n" + errStyle.Render(fmt.Sprintf("%d rows skipped:", len(m.errs))) + "\n")

		shown := m.errs
		if len(shown) > 5 {
			shown = shown[:5]
		}

		for _, e := range shown {
			sb.WriteString(errStyle.Render("  "+e) + "\n")
		}

		if len(m.errs) > 5 {
			sb.WriteString(errStyle.Render(fmt.Sprintf("  ... and %d more", len(m.errs)-5)) + "\n")
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}
