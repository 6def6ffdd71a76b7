package db

import (
	"time"

	"github.com/fabiorvs/controleConta/models"
)

// CreateTransaction inserts a transaction and fills in the server-assigned id
// and timestamp. A zero Date defaults to the current time.
func (s *Storage) CreateTransaction(t *models.Transaction) error {
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return s.DB.QueryRow(
		"INSERT INTO transactions (user_id, type, amount, comment, category, date) VALUES (?, ?, ?, ?, ?, ?) RETURNING id",
		t.UserID, t.Type, t.Amount, t.Comment, t.Category, t.Date,
	).Scan(&t.ID)
}

// GetTransactions returns all transactions owned by userID, most recent first.
// The result is an empty slice, not nil, when the user has none.
func (s *Storage) GetTransactions(userID int) ([]models.Transaction, error) {
	rows, err := s.DB.Query(
		"SELECT id, user_id, type, amount, comment, category, date FROM transactions WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Comment, &t.Category, &t.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// DeleteTransaction removes the transaction only when it belongs to userID.
// It reports whether a row was actually deleted; deleting a missing or
// foreign transaction is not an error.
func (s *Storage) DeleteTransaction(id, userID int) (bool, error) {
	res, err := s.DB.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
