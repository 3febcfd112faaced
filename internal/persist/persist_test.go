package persist_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/persist"
)

func newTestKV(t *testing.T) *persist.BadgerKV {
	t.Helper()

	kv, err := persist.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	return kv
}

func TestAdapter_RoundTrip(t *testing.T) {
	adapter := persist.New(newTestKV(t))

	snap := finance.Snapshot{
		Transactions: []finance.Transaction{
			{
				ID:          "t1",
				Amount:      800,
				Category:    "Housing",
				Subcategory: "Rent",
				Date:        finance.NewDate(2025, time.March, 10),
				Description: "Monthly rent",
				Type:        finance.TypeExpense,
			},
			{
				ID:          "t2",
				Amount:      2500,
				Category:    "Income",
				Date:        finance.NewDate(2025, time.March, 15),
				Description: "Monthly salary",
				Type:        finance.TypeIncome,
				Notes:       "net",
			},
		},
		Categories: []finance.Category{
			{ID: "c1", Name: "Housing", Kind: finance.KindExpense, Color: "#f43f5e"},
		},
		Budgets: []finance.Budget{
			{ID: "b1", Category: "Housing", Amount: 1000, Period: finance.PeriodMonthly},
		},
	}

	require.NoError(t, adapter.Save(snap))

	got, ok := adapter.Load()
	require.True(t, ok)
	assert.Equal(t, snap, got)
}

func TestAdapter_LoadMissing(t *testing.T) {
	adapter := persist.New(newTestKV(t))

	got, ok := adapter.Load()
	assert.False(t, ok)
	assert.Empty(t, got.Transactions)
}

func TestAdapter_LoadMalformed(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.Set(persist.SnapshotKey, "{not json"))

	adapter := persist.New(kv)

	_, ok := adapter.Load()
	assert.False(t, ok)
}

func TestAdapter_SaveOverwrites(t *testing.T) {
	adapter := persist.New(newTestKV(t))

	require.NoError(t, adapter.Save(finance.Snapshot{
		Budgets: []finance.Budget{{ID: "b1", Category: "Food", Amount: 100, Period: finance.PeriodMonthly}},
	}))
	require.NoError(t, adapter.Save(finance.Snapshot{
		Budgets: []finance.Budget{{ID: "b1", Category: "Food", Amount: 250, Period: finance.PeriodMonthly}},
	}))

	got, ok := adapter.Load()
	require.True(t, ok)
	require.Len(t, got.Budgets, 1)
	assert.Equal(t, 250.0, got.Budgets[0].Amount)
}
