package store

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skyline-GTRr32/AI-Finance-Tracker/internal/finance"
)

// Saver receives the full snapshot after every committed mutation.
type Saver interface {
	Save(snap finance.Snapshot) error
}

// Store owns the three core collections and an insights cache slot.
// All mutation operations are total: unknown IDs are silent no-ops and
// nothing is ever reported as an error to the caller. Persistence is
// write-through and best-effort; save failures are logged only.
type Store struct {
	mu sync.RWMutex

	snap     finance.Snapshot
	insights string

	saver Saver
}

// New creates a store seeded with the built-in defaults. Hydrate with
// ReplaceAll to restore a previously persisted snapshot.
func New(saver Saver) *Store {
	return &Store{
		snap:  finance.DefaultSnapshot(),
		saver: saver,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() finance.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone()
}

// CreateTransactionParams holds the caller-supplied fields for a new
// transaction. Validation beyond non-empty description/category and a
// non-negative amount is a view-layer concern.
type CreateTransactionParams struct {
	Description string
	Amount      float64
	Date        finance.Date
	Category    string
	Subcategory string
	Type        finance.Type
	Notes       string
}

func (p CreateTransactionParams) valid() bool {
	return strings.TrimSpace(p.Description) != "" &&
		strings.TrimSpace(p.Category) != "" &&
		p.Amount >= 0
}

// AddTransaction appends a new transaction with a freshly generated ID
// and returns it. Invalid input returns a zero Transaction without
// touching the collections.
func (s *Store) AddTransaction(p CreateTransactionParams) finance.Transaction {
	if !p.valid() {
		return finance.Transaction{}
	}

	tx := finance.Transaction{
		ID:          uuid.NewString(),
		Amount:      p.Amount,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Date:        p.Date,
		Description: p.Description,
		Type:        p.Type,
		Notes:       p.Notes,
	}

	s.mu.Lock()
	s.snap.Transactions = append(s.snap.Transactions, tx)
	s.mu.Unlock()

	s.persist()

	return tx
}

// UpdateTransaction replaces the transaction whose ID matches. No-op if
// there is no match.
func (s *Store) UpdateTransaction(tx finance.Transaction) {
	s.mu.Lock()

	changed := false

	for i := range s.snap.Transactions {
		if s.snap.Transactions[i].ID == tx.ID {
			s.snap.Transactions[i] = tx
			changed = true

			break
		}
	}

	s.mu.Unlock()

	if changed {
		s.persist()
	}
}

// DeleteTransaction removes the matching transaction. No-op if absent.
func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()

	before := len(s.snap.Transactions)
	s.snap.Transactions = deleteByID(s.snap.Transactions, id, func(t finance.Transaction) string { return t.ID })
	changed := len(s.snap.Transactions) != before

	s.mu.Unlock()

	if changed {
		s.persist()
	}
}

// CreateCategoryParams holds the caller-supplied fields for a new category.
type CreateCategoryParams struct {
	Name  string
	Kind  finance.CategoryKind
	Color string
}

// AddCategory appends a new category with a generated ID.
func (s *Store) AddCategory(p CreateCategoryParams) finance.Category {
	if strings.TrimSpace(p.Name) == "" {
		return finance.Category{}
	}

	c := finance.Category{
		ID:    uuid.NewString(),
		Name:  p.Name,
		Kind:  p.Kind,
		Color: p.Color,
	}

	s.mu.Lock()
	s.snap.Categories = append(s.snap.Categories, c)
	s.mu.Unlock()

	s.persist()

	return c
}

// DeleteCategory removes the category by ID. Transactions referencing the
// category by name are left untouched; views fall back to a neutral
// color/label for unresolved names.
func (s *Store) DeleteCategory(id string) {
	s.mu.Lock()

	before := len(s.snap.Categories)
	s.snap.Categories = deleteByID(s.snap.Categories, id, func(c finance.Category) string { return c.ID })
	changed := len(s.snap.Categories) != before

	s.mu.Unlock()

	if changed {
		s.persist()
	}
}

// CreateBudgetParams holds the caller-supplied fields for a new budget.
// One budget per category is a convention, not enforced.
type CreateBudgetParams struct {
	Category string
	Amount   float64
	Period   finance.Period
}

// AddBudget appends a new budget with a generated ID.
func (s *Store) AddBudget(p CreateBudgetParams) finance.Budget {
	if strings.TrimSpace(p.Category) == "" {
		return finance.Budget{}
	}

	b := finance.Budget{
		ID:       uuid.NewString(),
		Category: p.Category,
		Amount:   p.Amount,
		Period:   p.Period,
	}

	s.mu.Lock()
	s.snap.Budgets = append(s.snap.Budgets, b)
	s.mu.Unlock()

	s.persist()

	return b
}

// UpdateBudget replaces the budget whose ID matches. No-op if absent.
func (s *Store) UpdateBudget(b finance.Budget) {
	s.mu.Lock()

	changed := false

	for i := range s.snap.Budgets {
		if s.snap.Budgets[i].ID == b.ID {
			s.snap.Budgets[i] = b
			changed = true

			break
		}
	}

	s.mu.Unlock()

	if changed {
		s.persist()
	}
}

// DeleteBudget removes the budget by ID. No-op if absent.
func (s *Store) DeleteBudget(id string) {
	s.mu.Lock()

	before := len(s.snap.Budgets)
	s.snap.Budgets = deleteByID(s.snap.Budgets, id, func(b finance.Budget) string { return b.ID })
	changed := len(s.snap.Budgets) != before

	s.mu.Unlock()

	if changed {
		s.persist()
	}
}

// ReplaceAll bulk-sets collections during startup hydration. A nil slice
// leaves the corresponding collection untouched, so a partial snapshot
// keeps the defaults for whatever it is missing.
func (s *Store) ReplaceAll(transactions []finance.Transaction, categories []finance.Category, budgets []finance.Budget) {
	s.mu.Lock()

	if transactions != nil {
		s.snap.Transactions = transactions
	}

	if categories != nil {
		s.snap.Categories = categories
	}

	if budgets != nil {
		s.snap.Budgets = budgets
	}

	s.mu.Unlock()

	s.persist()
}

// SetInsights caches the most recent AI insight text. The cache is not
// part of the persisted snapshot.
func (s *Store) SetInsights(text string) {
	s.mu.Lock()
	s.insights = text
	s.mu.Unlock()
}

// Insights returns the cached AI insight text, empty if none was fetched.
func (s *Store) Insights() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.insights
}

func (s *Store) persist() {
	if s.saver == nil {
		return
	}

	if err := s.saver.Save(s.Snapshot()); err != nil {
		slog.Error("failed to persist snapshot", "error", err)
	}
}

func deleteByID[T any](items []T, id string, idOf func(T) string) []T {
	out := items[:0]

	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}

	return out
}
