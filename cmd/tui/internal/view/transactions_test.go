package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance/store"
	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/insight"
)

type nopSaver struct{}

func (nopSaver) Save(finance.Snapshot) error { return nil }

func TestCategoryOptions_FilteredByType(t *testing.T) {
	cats := []finance.Category{
		{ID: "1", Name: "Income", Kind: finance.KindIncome, Color: "#4ade80"},
		{ID: "2", Name: "Food", Kind: finance.KindExpense, Color: "#fb923c"},
		{ID: "3", Name: "Gifts", Kind: finance.KindBoth, Color: "#a78bfa"},
	}

	tests := []struct {
		name string
		txT  finance.Type
		want []string
	}{
		{
			name: "expense offers expense and both",
			txT:  finance.TypeExpense,
			want: []string{autoCategory, "Food", "Gifts"},
		},
		{
			name: "income offers income and both",
			txT:  finance.TypeIncome,
			want: []string{autoCategory, "Income", "Gifts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := categoryOptions(cats, tt.txT)

			got := make([]string, 0, len(opts))
			for _, o := range opts {
				got = append(got, o.Value)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEditTransaction_KeepsSubcategory(t *testing.T) {
	st := store.New(nopSaver{})
	tx := st.AddTransaction(store.CreateTransactionParams{
		Description: "Rent",
		Amount:      800,
		Date:        finance.NewDate(2025, time.March, 1),
		Category:    "Housing",
		Subcategory: "Apartment",
		Type:        finance.TypeExpense,
	})

	m := NewTransactionsModel(st, insight.New(insight.Options{Offline: true}))

	model, _ := m.enterForm(&tx)
	tm, ok := model.(TransactionsModel)
	require.True(t, ok)

	assert.Equal(t, "Apartment", tm.formSubcategory)

	tm.formDesc = "Rent (March)"

	msg := tm.saveCmd()()
	saved, ok := msg.(txSavedMsg)
	require.True(t, ok)
	assert.Contains(t, saved.status, "Rent (March)")

	snap := st.Snapshot()
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, tx.ID, snap.Transactions[0].ID)
	assert.Equal(t, "Rent (March)", snap.Transactions[0].Description)
	assert.Equal(t, "Apartment", snap.Transactions[0].Subcategory)
}
