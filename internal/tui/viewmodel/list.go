// Package viewmodel derives display projections from client state. Every
// transform here is pure: same inputs, same output, no side effects.
package viewmodel

import (
	"sort"
	"strings"

	"github.com/ledgerline/ledgerline/internal/model"
)

// TypeFilter narrows the list by transaction type.
type TypeFilter string

const (
	// TypeAll disables type filtering.
	TypeAll TypeFilter = "all"
	// TypeExpenses shows only expenses.
	TypeExpenses TypeFilter = "expense"
	// TypeIncome shows only income.
	TypeIncome TypeFilter = "income"
)

// SortField selects the ordering key for the list.
type SortField int

const (
	// SortByDate orders by calendar date.
	SortByDate SortField = iota
	// SortByAmount orders by amount.
	SortByAmount
	// SortByCategory orders by category name.
	SortByCategory
)

// SortOrder is the ordering direction.
type SortOrder int

const (
	// SortAscending orders smallest first.
	SortAscending SortOrder = iota
	// SortDescending orders largest first.
	SortDescending
)

// CategoryAll is the category filter value that disables category
// filtering.
const CategoryAll = "all"

// Filters holds the three list predicates. A transaction is shown only
// when it passes all of them.
type Filters struct {
	Type     TypeFilter
	Category string
	Search   string
}

// NewFilters returns the neutral filter state that shows everything.
func NewFilters() Filters {
	return Filters{Type: TypeAll, Category: CategoryAll}
}

// ListState is the client-local filter/sort state for the expense list.
// It is never persisted.
type ListState struct {
	Filters   Filters
	SortField SortField
	SortOrder SortOrder
}

// NewListState returns the default projection: everything visible, newest
// first.
func NewListState() ListState {
	return ListState{
		Filters:   NewFilters(),
		SortField: SortByDate,
		SortOrder: SortDescending,
	}
}

// ToggleSort switches to the given sort field, or flips the direction when
// the field is already active. A fresh field always starts ascending.
func (l *ListState) ToggleSort(field SortField) {
	if l.SortField == field {
		if l.SortOrder == SortAscending {
			l.SortOrder = SortDescending
		} else {
			l.SortOrder = SortAscending
		}
		return
	}
	l.SortField = field
	l.SortOrder = SortAscending
}

// Apply projects the source list through the filters and sort settings.
// The source slice is left untouched; ordering ties keep source order.
func (l ListState) Apply(transactions []model.Transaction) []model.Transaction {
	result := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if l.Filters.matches(txn) {
			result = append(result, txn)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if l.SortOrder == SortDescending {
			return l.less(result[j], result[i])
		}
		return l.less(result[i], result[j])
	})

	return result
}

// matches reports whether one transaction passes every active predicate.
func (f Filters) matches(txn model.Transaction) bool {
	if f.Type != TypeAll && string(txn.Type) != string(f.Type) {
		return false
	}

	if f.Category != CategoryAll && f.Category != "" && txn.Category != f.Category {
		return false
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(txn.Description), term) &&
			!strings.Contains(strings.ToLower(txn.Category), term) {
			return false
		}
	}

	return true
}

// less compares two transactions under the active sort field in ascending
// direction.
func (l ListState) less(a, b model.Transaction) bool {
	switch l.SortField {
	case SortByAmount:
		return a.Amount < b.Amount
	case SortByCategory:
		return a.Category < b.Category
	case SortByDate:
		return a.Date.Before(b.Date)
	default:
		return false
	}
}

// CategoriesSeen returns the distinct categories present in the list, in
// first-seen order, for populating the category filter.
func CategoriesSeen(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, txn := range transactions {
		if txn.Category == "" || seen[txn.Category] {
			continue
		}
		seen[txn.Category] = true
		categories = append(categories, txn.Category)
	}
	return categories
}
