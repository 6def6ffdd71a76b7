package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type Transaction struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Type     string    `json:"type"`
	Amount   float64   `json:"amount"`
	Comment  string    `json:"comment,omitempty"`
	Category string    `json:"category,omitempty"`
	Date     time.Time `json:"date"`
}

// ValidType reports whether t is one of the two accepted transaction kinds.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
