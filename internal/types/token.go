package types

import "time"

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
