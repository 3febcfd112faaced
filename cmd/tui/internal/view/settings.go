package view

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/config"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/insight"
)

type settingsState int

const (
	settingsStateBrowse settingsState = iota
	settingsStateForm
)

// defaultCategoryColor pre-fills the color field of the add form.
const defaultCategoryColor = "#6366f1"

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// SettingsModel manages categories and shows the active AI configuration,
// with a runtime offline-mode toggle.
type SettingsModel struct {
	CommonModel
	store  *store.Store
	cfg    *config.Config
	client *insight.Client

	state  settingsState
	snap   finance.Snapshot
	cursor int
	status string

	form *huh.Form

	formName  string
	formKind  string
	formColor string
}

func NewSettingsModel(st *store.Store, cfg *config.Config, client *insight.Client) SettingsModel {
	m := SettingsModel{store: st, cfg: cfg, client: client}
	m.reload()

	return m
}

func (m SettingsModel) Title() string { return "Settings" }
func (m SettingsModel) ShortHelp() string {
	if m.state == settingsStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add category | d: delete category | o: toggle offline | up/down: select"
}

func (m SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) reload() {
	m.snap = m.store.Snapshot()

	if m.cursor >= len(m.snap.Categories) {
		m.cursor = len(m.snap.Categories) - 1
	}

	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == settingsStateForm {
		return m.updateForm(msg)
	}

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
		if m.cursor < len(m.snap.Categories)-1 {
			m.cursor++
		}
	case "a":
		return m.enterForm()
	case "d":
		if m.cursor < len(m.snap.Categories) {
			c := m.snap.Categories[m.cursor]
			m.store.DeleteCategory(c.ID)
			m.status = fmt.Sprintf("Deleted category %q", c.Name)
			m.reload()
		}
	case "o":
		m.client.SetOffline(!m.client.Offline())
	}

	return m, nil
}

func (m SettingsModel) enterForm() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formKind = string(finance.KindExpense)
	m.formColor = defaultCategoryColor

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(finance.KindExpense)),
					huh.NewOption("Income", string(finance.KindIncome)),
					huh.NewOption("Both", string(finance.KindBoth)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("color").
				Title("Color").
				Placeholder(defaultCategoryColor).
				Value(&m.formColor).
				Validate(func(s string) error {
					if !hexColorRe.MatchString(strings.TrimSpace(s)) {
						return fmt.Errorf("enter a hex color like #6366f1")
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = settingsStateForm

	return m, m.form.Init()
}

func (m SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateBrowse
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

	m.saveCategory()
	m.state = settingsStateBrowse
	m.form = nil
	m.reload()

	return m, nil
}

func (m *SettingsModel) saveCategory() {
	c := m.store.AddCategory(store.CreateCategoryParams{
		Name:  strings.TrimSpace(m.formName),
		Kind:  finance.CategoryKind(m.formKind),
		Color: strings.TrimSpace(m.formColor),
	})
	m.status = fmt.Sprintf("Added category %q", c.Name)
}

func (m SettingsModel) View() string {
	if m.state == settingsStateForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Render("Add Category\n\n" + m.form.View()),
		)
	}

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Categories") + "\n\n")

	for i, c := range m.snap.Categories {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		sb.WriteString(fmt.Sprintf("%s%s %-16s %s\n",
			cursor,
			CategoryDot(m.snap, c.Name),
			c.Name,
			lipgloss.NewStyle().Faint(true).Render(string(c.Kind)),
		))
	}

	sb.WriteString("\n" + m.aiSection())

	if m.status != "" {
		sb.WriteString("\n\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

func (m SettingsModel) aiSection() string {
	label := lipgloss.NewStyle().Faint(true).Width(14)

	apiKey := "not set"
	if m.cfg.AI.APIKey != "" {
		apiKey = "set (" + maskKey(m.cfg.AI.APIKey) + ")"
	}

	mode := "online"
	if m.client.Offline() {
		mode = "offline (built-in mock responses)"
	}

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("AI Provider") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", label.Render("API key:"), apiKey))
	sb.WriteString(fmt.Sprintf("%s %s\n", label.Render("Base URL:"), m.cfg.AI.BaseURL))
	sb.WriteString(fmt.Sprintf("%s %s\n", label.Render("Model:"), m.cfg.AI.Model))
	sb.WriteString(fmt.Sprintf("%s %s", label.Render("Mode:"), mode))

	if m.cfg.AI.APIKey == "" && !m.client.Offline() {
		sb.WriteString("\n\n" + errStyle.Render(
			"No API key configured. Set OPENROUTER_API_KEY or press 'o' to use offline mode."))
	}

	return sb.String()
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}

	return key[:4] + "..." + key[len(key)-4:]
}
