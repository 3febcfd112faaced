package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

const aiTimeout = 60 * time.Second

// FormatAmount formats a currency amount for display.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatSigned prefixes the amount with its transaction direction.
func FormatSigned(tx finance.Transaction) string {
	sign := "-"
	if tx.Type == finance.TypeIncome {
		sign = "+"
	}

	return sign + FormatAmount(tx.Amount)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(d finance.Date) string {
	return d.String()
}

// AiCtx returns a context with a standard timeout for remote insight calls.
func AiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), aiTimeout)
}

// CategoryDot renders a colored marker in the category's display color.
func CategoryDot(snap finance.Snapshot, category string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(snap.CategoryColor(category))).
		Render("●")
}

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
