package finance

import (
	"encoding/json"
	"strings"
	"time"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// CategoryKind governs which transaction types a category is offered for.
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
	KindBoth    CategoryKind = "both"
)

// Period is the budgeting window. Only monthly aggregation is implemented;
// the other values are advisory labels on the budget record.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Date is a calendar date with no time component. It marshals to and from
// the YYYY-MM-DD form used in the persisted snapshot.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}

	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		*d = Date{}
		return nil
	}

	// Dates written by older snapshots may carry a time component.
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}

	*d = Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}

	return nil
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Date        Date    `json:"date"`
	Description string  `json:"description"`
	Type        Type    `json:"type"`
	Notes       string  `json:"notes,omitempty"`
}

// Category is a named bucket transactions refer to. The join from
// transactions is by Name, not ID, and deleting a category does not
// touch transactions that reference it.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Kind  CategoryKind `json:"type"`
	Color string       `json:"color"`
}

// Offered reports whether the category should be offered when entering
// a transaction of the given type.
func (c Category) Offered(t Type) bool {
	return c.Kind == KindBoth || string(c.Kind) == string(t)
}

// Budget is a spending ceiling for a category, matched by name.
type Budget struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Period   Period  `json:"period"`
}

// Snapshot is the unit of persistence: the three collections at an instant.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Transactions: make([]Transaction, len(s.Transactions)),
		Categories:   make([]Category, len(s.Categories)),
		Budgets:      make([]Budget, len(s.Budgets)),
	}

	copy(out.Transactions, s.Transactions)
	copy(out.Categories, s.Categories)
	copy(out.Budgets, s.Budgets)

	return out
}

// CategoryColor resolves the display color for a category name.
// Unknown names get a neutral fallback so views can render transactions
// whose category has since been deleted.
func (s Snapshot) CategoryColor(name string) string {
	for _, c := range s.Categories {
		if strings.EqualFold(c.Name, name) {
			return c.Color
		}
	}

	return FallbackColor
}

// FallbackColor is used for category references that no longer resolve.
const FallbackColor = "#cbd5e1"

// DefaultSnapshot returns the built-in starting data used when no prior
// snapshot exists: the stock category set and monthly budgets.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Categories: []Category{
			{ID: "1", Name: "Income", Kind: KindIncome, Color: "#4ade80"},
			{ID: "2", Name: "Housing", Kind: KindExpense, Color: "#f43f5e"},
			{ID: "3", Name: "Food", Kind: KindExpense, Color: "#fb923c"},
			{ID: "4", Name: "Transportation", Kind: KindExpense, Color: "#60a5fa"},
			{ID: "5", Name: "Entertainment", Kind: KindExpense, Color: "#a78bfa"},
			{ID: "6", Name: "Healthcare", Kind: KindExpense, Color: "#34d399"},
			{ID: "7", Name: "Education", Kind: KindExpense, Color: "#fbbf24"},
		},
		Budgets: []Budget{
			{ID: "1", Category: "Housing", Amount: 1000, Period: PeriodMonthly},
			{ID: "2", Category: "Food", Amount: 500, Period: PeriodMonthly},
			{ID: "3", Category: "Transportation", Amount: 200, Period: PeriodMonthly},
			{ID: "4", Category: "Entertainment", Amount: 150, Period: PeriodMonthly},
		},
	}
}
