// Package report computes read-only aggregates over a snapshot's
// transactions. Everything here is a pure function recomputed on demand;
// the collections are small enough that caching would be noise.
package report

import (
	"time"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

// Window is a relative reporting period ending at a reference instant.
type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

func (w Window) String() string {
	switch w {
	case WindowWeek:
		return "Last Week"
	case WindowMonth:
		return "Last Month"
	case WindowYear:
		return "Last Year"
	}

	return "Unknown"
}

// start returns the beginning of the window relative to ref.
func (w Window) start(ref time.Time) time.Time {
	switch w {
	case WindowWeek:
		return ref.AddDate(0, 0, -7)
	case WindowYear:
		return ref.AddDate(-1, 0, 0)
	default:
		return ref.AddDate(0, -1, 0)
	}
}

// FilterByWindow returns the transactions whose date falls within
// [ref - window, ref], inclusive of both ends.
func FilterByWindow(txs []finance.Transaction, ref time.Time, w Window) []finance.Transaction {
	start := w.start(ref)

	var out []finance.Transaction

	for _, tx := range txs {
		d := tx.Date.Time
		if !d.Before(start) && !d.After(ref) {
			out = append(out, tx)
		}
	}

	return out
}

// ExpensesByCategory sums expense amounts per category name. Names that
// no longer resolve to a Category entity still appear under their literal
// string.
func ExpensesByCategory(txs []finance.Transaction) map[string]float64 {
	out := make(map[string]float64)

	for _, tx := range txs {
		if tx.Type != finance.TypeExpense {
			continue
		}

		out[tx.Category] += tx.Amount
	}

	return out
}

// MonthlySpending sums expenses per category for the calendar month
// containing now.
func MonthlySpending(txs []finance.Transaction, now time.Time) map[string]float64 {
	return ExpensesByCategory(monthOf(txs, now.Year(), now.Month()))
}

// Usage describes how far a budget has been consumed.
type Usage struct {
	Spent     float64
	Percent   float64 // capped at 100
	Remaining float64 // negative when over budget
	Over      bool
}

// BudgetUsage computes utilization of a budget given the spent total for
// its category in the current month.
func BudgetUsage(b finance.Budget, spent float64) Usage {
	u := Usage{
		Spent:     spent,
		Remaining: b.Amount - spent,
		Over:      spent > b.Amount,
	}

	if b.Amount > 0 {
		u.Percent = spent / b.Amount * 100
		if u.Percent > 100 {
			u.Percent = 100
		}
	}

	return u
}

// Summary is the current calendar month at a glance.
type Summary struct {
	Income      float64
	Expenses    float64
	Balance     float64
	SavingsRate float64 // percent of income kept, 0 when income is 0
}

// MonthSummary totals income and expenses for the calendar month
// containing now.
func MonthSummary(txs []finance.Transaction, now time.Time) Summary {
	income, expenses := totals(monthOf(txs, now.Year(), now.Month()))

	s := Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income - expenses,
	}

	if income > 0 {
		s.SavingsRate = (income - expenses) / income * 100
	}

	return s
}

// Comparison holds month-over-month totals and their percentage changes.
// A change is 0 when the previous month's total is 0. Improvement runs in
// opposite directions for the two series: more income is better, less
// expense is better.
type Comparison struct {
	CurrentIncome    float64
	CurrentExpenses  float64
	PreviousIncome   float64
	PreviousExpenses float64

	IncomeChange  float64
	ExpenseChange float64

	IncomeImproved  bool
	ExpenseImproved bool
}

// MonthComparison compares the calendar month containing now against the
// immediately preceding one, handling the December to January rollover.
func MonthComparison(txs []finance.Transaction, now time.Time) Comparison {
	curYear, curMonth := now.Year(), now.Month()

	prevYear, prevMonth := curYear, curMonth-1
	if curMonth == time.January {
		prevYear, prevMonth = curYear-1, time.December
	}

	curIncome, curExpenses := totals(monthOf(txs, curYear, curMonth))
	prevIncome, prevExpenses := totals(monthOf(txs, prevYear, prevMonth))

	c := Comparison{
		CurrentIncome:    curIncome,
		CurrentExpenses:  curExpenses,
		PreviousIncome:   prevIncome,
		PreviousExpenses: prevExpenses,
		IncomeImproved:   curIncome >= prevIncome,
		ExpenseImproved:  curExpenses <= prevExpenses,
	}

	if prevIncome > 0 {
		c.IncomeChange = (curIncome - prevIncome) / prevIncome * 100
	}

	if prevExpenses > 0 {
		c.ExpenseChange = (curExpenses - prevExpenses) / prevExpenses * 100
	}

	return c
}

func monthOf(txs []finance.Transaction, year int, month time.Month) []finance.Transaction {
	var out []finance.Transaction

	for _, tx := range txs {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			out = append(out, tx)
		}
	}

	return out
}

func totals(txs []finance.Transaction) (income, expenses float64) {
	for _, tx := range txs {
		switch tx.Type {
		case finance.TypeIncome:
			income += tx.Amount
		case finance.TypeExpense:
			expenses += tx.Amount
		}
	}

	return income, expenses
}
