package model

import (
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeExpense marks a transaction that reduces the balance.
	TypeExpense TransactionType = "expense"
	// TypeIncome marks a transaction that increases the balance.
	TypeIncome TransactionType = "income"
)

// Transaction represents a single income or expense event. The server owns
// the record; the local copy is a per-session cache for the selected month.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"_id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// DisplayDate renders the calendar date the way list views show it.
func (t Transaction) DisplayDate() string {
	return t.Date.Format("Jan 2, 2006")
}
