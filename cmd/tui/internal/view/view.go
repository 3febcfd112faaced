// Package view holds the interactive screens of the finance tracker:
// dashboard, transactions, budgets, AI insights, import/export and
// settings.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a routable screen. The menu shows Title and ShortHelp; the
// rest is the usual Bubble Tea model contract.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel carries state shared by every screen.
type CommonModel struct{}

// BackMsg tells the root model to return to the menu.
type BackMsg struct{}

// Back is used as a tea.Cmd by screens that want to close themselves.
func Back() tea.Msg {
	return BackMsg{}
}
