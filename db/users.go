package db

import (
	"database/sql"
	"time"

	"github.com/fabiorvs/controleConta/models"
)

// CreateUser inserts a new user row and returns the stored record.
// ErrDuplicate is returned when the username or email is already taken.
func (s *Storage) CreateUser(username, email, passwordHash string, initialBalance float64) (*models.User, error) {
	u := models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   passwordHash,
		InitialBalance: initialBalance,
	}
	err := s.DB.QueryRow(
		"INSERT INTO users (username, email, password_hash, initial_balance) VALUES (?, ?, ?, ?) RETURNING id, created_at",
		username, email, passwordHash, initialBalance,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID retrieves a user by id. Returns (nil, nil) when no row exists.
func (s *Storage) GetUserByID(id int) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(
		"SELECT id, username, email, password_hash, initial_balance, created_at, last_login FROM users WHERE id = ?",
		id,
	))
}

// GetUserByLogin retrieves a user whose username or email matches login.
// Returns (nil, nil) when no row exists.
func (s *Storage) GetUserByLogin(login string) (*models.User, error) {
	return s.scanUser(s.DB.QueryRow(
		"SELECT id, username, email, password_hash, initial_balance, created_at, last_login FROM users WHERE username = ? OR email = ?",
		login, login,
	))
}

// UpdateLastLogin stamps the user's last successful login time.
func (s *Storage) UpdateLastLogin(id int, at time.Time) error {
	_, err := s.DB.Exec("UPDATE users SET last_login = ? WHERE id = ?", at, id)
	return err
}

// UpdateInitialBalance sets the user's starting balance.
func (s *Storage) UpdateInitialBalance(id int, balance float64) error {
	_, err := s.DB.Exec("UPDATE users SET initial_balance = ? WHERE id = ?", balance, id)
	return err
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.InitialBalance, &u.CreatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return &u, nil
}
