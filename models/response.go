package models

import "time"

type AuthResponse struct {
	Token        string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       int    `json:"userId" example:"1"`
	Username     string `json:"username" example:"john_doe"`
}

type RefreshResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type BackupFile struct {
	Filename string    `json:"filename" example:"backup-20250101-120000.db"`
	Date     time.Time `json:"date"`
	Size     int64     `json:"size" example:"32768"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}
