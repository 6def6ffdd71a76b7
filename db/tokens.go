package db

import (
	"database/sql"
	"time"

	"github.com/fabiorvs/controleConta/models"
)

// CreateRefreshToken persists a refresh token issued at login or registration.
func (s *Storage) CreateRefreshToken(userID int, token string, expiresAt time.Time) error {
	_, err := s.DB.Exec(
		"INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES (?, ?, ?)",
		userID, token, expiresAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetRefreshToken looks a refresh token up by exact string match.
// Returns (nil, nil) when no row exists.
func (s *Storage) GetRefreshToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := s.DB.QueryRow(
		"SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = ?",
		token,
	).Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &rt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteRefreshToken removes the matching token row. Idempotent: deleting a
// token that is already gone is not an error.
func (s *Storage) DeleteRefreshToken(token string) error {
	_, err := s.DB.Exec("DELETE FROM refresh_tokens WHERE token = ?", token)
	return err
}

// DeleteExpiredRefreshTokens sweeps tokens whose stored expiry has passed and
// returns how many were removed.
func (s *Storage) DeleteExpiredRefreshTokens(now time.Time) (int64, error) {
	res, err := s.DB.Exec("DELETE FROM refresh_tokens WHERE expires_at <= ?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
