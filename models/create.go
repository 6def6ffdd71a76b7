package models

type RegisterRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	InitialBalance float64 `json:"initialBalance"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateBalanceRequest struct {
	InitialBalance *float64 `json:"initialBalance"`
}

type CreateTransaction struct {
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount"`
	Comment  string   `json:"comment"`
	Category string   `json:"category"`
}
