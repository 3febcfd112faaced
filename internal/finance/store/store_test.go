package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
)

// fakeSaver records every snapshot handed to Save.
type fakeSaver struct {
	saves []finance.Snapshot
	err   error
}

func (f *fakeSaver) Save(snap finance.Snapshot) error {
	f.saves = append(f.saves, snap)
	return f.err
}

func txParams(desc, category string, amount float64) store.CreateTransactionParams {
	return store.CreateTransactionParams{
		Description: desc,
		Amount:      amount,
		Date:        finance.NewDate(2025, time.March, 10),
		Category:    category,
		Type:        finance.TypeExpense,
	}
}

func TestStore_AddTransaction(t *testing.T) {
	saver := &fakeSaver{}
	s := store.New(saver)

	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		before := len(s.Snapshot().Transactions)
		tx := s.AddTransaction(txParams("Groceries", "Food", 42))

		require.NotEmpty(t, tx.ID)
		assert.False(t, seen[tx.ID], "identifier reused: %s", tx.ID)
		seen[tx.ID] = true

		assert.Len(t, s.Snapshot().Transactions, before+1)
	}

	// Every mutation triggered a save.
	assert.Len(t, saver.saves, 50)
}

func TestStore_AddTransaction_Invalid(t *testing.T) {
	saver := &fakeSaver{}
	s := store.New(saver)

	tests := []struct {
		name   string
		params store.CreateTransactionParams
	}{
		{"EmptyDescription", txParams("", "Food", 10)},
		{"EmptyCategory", txParams("Groceries", "", 10)},
		{"NegativeAmount", txParams("Groceries", "Food", -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := s.AddTransaction(tt.params)
			assert.Empty(t, tx.ID)
			assert.Empty(t, s.Snapshot().Transactions)
			assert.Empty(t, saver.saves)
		})
	}
}

func TestStore_DeleteTransaction_Idempotent(t *testing.T) {
	saver := &fakeSaver{}
	s := store.New(saver)

	tx := s.AddTransaction(txParams("Groceries", "Food", 42))
	keep := s.AddTransaction(txParams("Rent", "Housing", 800))

	s.DeleteTransaction(tx.ID)
	afterFirst := s.Snapshot()

	// Second delete of the same ID is a silent no-op.
	s.DeleteTransaction(tx.ID)
	afterSecond := s.Snapshot()

	assert.Equal(t, afterFirst, afterSecond)
	require.Len(t, afterSecond.Transactions, 1)
	assert.Equal(t, keep.ID, afterSecond.Transactions[0].ID)
}

func TestStore_UpdateTransaction(t *testing.T) {
	s := store.New(&fakeSaver{})

	tx := s.AddTransaction(txParams("Groceries", "Food", 42))
	tx.Amount = 55
	tx.Description = "Weekly groceries"
	s.UpdateTransaction(tx)

	got := s.Snapshot().Transactions
	require.Len(t, got, 1)
	assert.Equal(t, 55.0, got[0].Amount)
	assert.Equal(t, "Weekly groceries", got[0].Description)

	// Unknown ID is a no-op.
	missing := tx
	missing.ID = "nope"
	missing.Amount = 999
	s.UpdateTransaction(missing)
	assert.Equal(t, got, s.Snapshot().Transactions)
}

func TestStore_DeleteCategory_NoCascade(t *testing.T) {
	s := store.New(&fakeSaver{})

	cat := s.AddCategory(store.CreateCategoryParams{Name: "Gadgets", Kind: finance.KindExpense, Color: "#111111"})
	s.AddTransaction(txParams("Keyboard", "Gadgets", 120))

	s.DeleteCategory(cat.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 1)

	// The transaction keeps its dangling category name; views resolve it
	// to the fallback color.
	assert.Equal(t, "Gadgets", snap.Transactions[0].Category)
	assert.Equal(t, finance.FallbackColor, snap.CategoryColor("Gadgets"))
}

func TestStore_Budgets(t *testing.T) {
	s := store.New(&fakeSaver{})

	b := s.AddBudget(store.CreateBudgetParams{Category: "Food", Amount: 500, Period: finance.PeriodMonthly})
	require.NotEmpty(t, b.ID)

	b.Amount = 600
	s.UpdateBudget(b)

	defaults := len(finance.DefaultSnapshot().Budgets)
	snap := s.Snapshot()
	require.Len(t, snap.Budgets, defaults+1)
	assert.Equal(t, 600.0, snap.Budgets[defaults].Amount)

	s.DeleteBudget(b.ID)
	assert.Len(t, s.Snapshot().Budgets, defaults)

	// Duplicate budgets for one category are permitted.
	s.AddBudget(store.CreateBudgetParams{Category: "Food", Amount: 100, Period: finance.PeriodMonthly})
	s.AddBudget(store.CreateBudgetParams{Category: "Food", Amount: 200, Period: finance.PeriodMonthly})
	assert.Len(t, s.Snapshot().Budgets, defaults+2)
}

func TestStore_ReplaceAll_Partial(t *testing.T) {
	s := store.New(&fakeSaver{})

	txs := []finance.Transaction{{
		ID:          "t1",
		Amount:      12,
		Category:    "Food",
		Date:        finance.NewDate(2025, time.March, 1),
		Description: "Lunch",
		Type:        finance.TypeExpense,
	}}

	s.ReplaceAll(txs, nil, nil)

	snap := s.Snapshot()
	assert.Equal(t, txs, snap.Transactions)

	// nil arguments leave the default collections alone.
	defaults := finance.DefaultSnapshot()
	assert.Equal(t, defaults.Categories, snap.Categories)
	assert.Equal(t, defaults.Budgets, snap.Budgets)
}

func TestStore_Insights_NotPersisted(t *testing.T) {
	saver := &fakeSaver{}
	s := store.New(saver)

	s.SetInsights("spend less on coffee")
	assert.Equal(t, "spend less on coffee", s.Insights())
	assert.Empty(t, saver.saves)
}

func TestStore_SaveFailureDoesNotSurface(t *testing.T) {
	saver := &fakeSaver{err: assert.AnError}
	s := store.New(saver)

	tx := s.AddTransaction(txParams("Groceries", "Food", 42))
	assert.NotEmpty(t, tx.ID)
	assert.Len(t, s.Snapshot().Transactions, 1)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := store.New(&fakeSaver{})
	s.AddTransaction(txParams("Groceries", "Food", 42))

	snap := s.Snapshot()
	snap.Transactions[0].Amount = 9999

	assert.Equal(t, 42.0, s.Snapshot().Transactions[0].Amount)
}
