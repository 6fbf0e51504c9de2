package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
}

type RegisterResponse struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
