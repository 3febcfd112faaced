package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/cmd/tui/internal/view"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/config"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/insight"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/persist"
)

type model struct {
	store  *store.Store
	client *insight.Client
	cfg    *config.Config

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	budgetsView      view.BudgetsModel
	insightsView     view.InsightsModel
	dataView         view.DataModel
	settingsView     view.SettingsModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewBudgets      View = 3
	ViewInsights     View = 4
	ViewData         View = 5
	ViewSettings     View = 6
)

func initialModel(st *store.Store, client *insight.Client, cfg *config.Config) model {
	return model{
		store:         st,
		client:        client,
		cfg:           cfg,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(st),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.store)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.store, m.client)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.store)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewInsights
				m.insightsView = view.NewInsightsModel(m.store, m.client)

				return m, m.insightsView.Init()
			case "5":
				m.currentView = ViewData
				m.dataView = view.NewDataModel(m.store)

				return m, m.dataView.Init()
			case "6":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.store, m.cfg, m.client)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewInsights:
		var newModel tea.Model
		newModel, cmd = m.insightsView.Update(msg)
		m.insightsView = newModel.(view.InsightsModel)
	case ViewData:
		var newModel tea.Model
		newModel, cmd = m.dataView.Update(msg)
		m.dataView = newModel.(view.DataModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + "\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Budgets\n" +
				"4. AI Insights\n" +
				"5. Import / Export\n" +
				"6. Settings\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewInsights:
		return m.insightsView.View()
	case ViewData:
		return m.dataView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		slog.Error("failed to resolve data directory", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file instead.
	logFile, err := os.OpenFile(filepath.Join(dataDir, "tracker.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))

	kv, err := persist.OpenBadger(filepath.Join(dataDir, "db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	adapter := persist.New(kv)
	st := store.New(adapter)

	if snap, ok := adapter.Load(); ok {
		st.ReplaceAll(snap.Transactions, snap.Categories, snap.Budgets)
	}

	client := insight.New(insight.Options{
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		Offline: cfg.AI.Mock || cfg.AI.APIKey == "",
	})

	p := tea.NewProgram(initialModel(st, client, cfg))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
